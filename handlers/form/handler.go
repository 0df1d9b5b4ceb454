package form

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"moderation-bot/commands"
	"moderation-bot/model"
	"moderation-bot/utils"
	"moderation-bot/workflow"

	"github.com/bwmarrin/discordgo"
)

// HandlePunishCommand processes /mute, /warn and /ban messages: it creates
// a pending form and posts it back with review controls. Any member may
// submit; the review step enforces authorization.
func HandlePunishCommand(s *discordgo.Session, m *discordgo.MessageCreate, b model.Bot, wf *workflow.Workflow) {
	text := strings.TrimSpace(m.Content)
	_, err := wf.Create(m.ChannelID, m.Author.ID, text)
	if err == nil {
		return
	}

	if isParseError(err) {
		utils.SendReply(s, m, commands.ParseHint(err)+"\n\n"+commands.UsageExample)
		return
	}

	log.Printf("Error creating form in chat %s: %v", m.ChannelID, err)
	utils.LogError(b.GetConfig().LogWebhookURL, "Workflow", "Create", err.Error())
	utils.SendReply(s, m, "Произошла ошибка при обработке команды.")
}

// HandleShowForm processes the form-display aliases (/ф, /a, .ф, .a).
func HandleShowForm(s *discordgo.Session, m *discordgo.MessageCreate, wf *workflow.Workflow, arg string) {
	formID, ok := parseFormID(arg)
	if !ok {
		utils.SendReply(s, m, "Укажите номер формы, например: /ф 12")
		return
	}

	f, err := wf.Lookup(m.ChannelID, formID)
	if err != nil {
		utils.SendReply(s, m, "Форма не найдена.")
		return
	}
	utils.SendReply(s, m, RenderForm(f))
}

// HandleAcceptCommand processes the form-accept aliases (/в, /d, .в, .d).
func HandleAcceptCommand(s *discordgo.Session, m *discordgo.MessageCreate, b model.Bot, wf *workflow.Workflow, arg string) {
	formID, ok := parseFormID(arg)
	if !ok {
		utils.SendReply(s, m, "Укажите номер формы, например: /в 12")
		return
	}

	f, err := wf.Accept(m.ChannelID, m.Author.ID, formID)
	if err != nil {
		utils.SendReply(s, m, decisionErrorText(b, m.Author.ID, formID, err))
		return
	}
	utils.SendReply(s, m, fmt.Sprintf("Форма #%d принята.", f.ID))
}

// HandlePendingList processes the list-pending aliases (/формы, /ajhvs).
func HandlePendingList(s *discordgo.Session, m *discordgo.MessageCreate, wf *workflow.Workflow) {
	pending, err := wf.Pending(m.ChannelID)
	if err != nil {
		log.Printf("Error listing pending forms in chat %s: %v", m.ChannelID, err)
		utils.SendReply(s, m, "Произошла ошибка при обработке команды.")
		return
	}
	if len(pending) == 0 {
		utils.SendReply(s, m, "Форм на рассмотрении нет.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Формы на рассмотрении:\n")
	for _, f := range pending {
		fmt.Fprintf(&sb, "#%d [%s] от <@%s>\n", f.ID, f.Type, f.SenderID)
	}
	utils.SendReply(s, m, sb.String())
}

func isParseError(err error) bool {
	return errors.Is(err, commands.ErrMalformedCommand) ||
		errors.Is(err, commands.ErrInvalidNickname) ||
		errors.Is(err, commands.ErrInvalidDuration) ||
		errors.Is(err, commands.ErrMissingSignature)
}

func parseFormID(arg string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decisionErrorText maps a failed review to the user-facing reply and
// pushes forbidden attempts to the audit webhook.
func decisionErrorText(b model.Bot, userID string, formID int64, err error) string {
	switch {
	case errors.Is(err, workflow.ErrForbidden):
		utils.LogWarn(b.GetConfig().LogWebhookURL, "Workflow", "Forbidden",
			fmt.Sprintf("User %s tried to review form %d", userID, formID))
		return "У вас нет прав на проверку форм."
	case errors.Is(err, workflow.ErrAlreadyDecided):
		return "Форма уже обработана."
	default:
		log.Printf("Error reviewing form %d: %v", formID, err)
		utils.LogError(b.GetConfig().LogWebhookURL, "Workflow", "Review", err.Error())
		return "Произошла ошибка при обработке команды."
	}
}
