package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"moderation-bot/bot"
	"moderation-bot/handlers/form"
	"moderation-bot/utils"
	"moderation-bot/utils/database/forms"
	"moderation-bot/workflow"

	"github.com/bwmarrin/discordgo"
)

// handleDirectMessage is the admin side channel. Messages from anyone
// outside the admin set are dropped without any response, so the bot's
// capabilities leak nothing to strangers.
func handleDirectMessage(s *discordgo.Session, m *discordgo.MessageCreate, b *bot.Bot, wf *workflow.Workflow) {
	if !utils.IsAdmin(b.GetConfig().AdminIDs, m.Author.ID) {
		return
	}

	parts := strings.Fields(m.Content)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "status":
		handleStatusReport(s, m, b)
	case "help":
		utils.SendMessage(s, m.ChannelID, dmHelpText)
	case "форма", "form":
		handleDMShowForm(s, m, wf, parts[1:])
	case "принять", "accept":
		handleDMAccept(s, m, wf, parts[1:])
	case "отклонить", "reject":
		handleDMReject(s, m, wf, parts[1:])
	case "формы", "forms":
		handleDMPendingList(s, m, wf)
	}
}

const dmHelpText = "Команды проверяющего:\n" +
	"форма <номер> — показать форму из любого чата\n" +
	"принять <номер> — принять форму\n" +
	"отклонить <номер> <причина> — отклонить форму с произвольной причиной\n" +
	"формы — все формы на рассмотрении\n" +
	"status — состояние бота"

func handleDMShowForm(s *discordgo.Session, m *discordgo.MessageCreate, wf *workflow.Workflow, args []string) {
	formID, ok := dmFormID(args)
	if !ok {
		utils.SendMessage(s, m.ChannelID, "Укажите номер формы.")
		return
	}

	// Admin DM lookups are deliberately unscoped: reviewers may inspect
	// forms from any chat.
	f, err := wf.Lookup("", formID)
	if errors.Is(err, forms.ErrNotFound) {
		utils.SendMessage(s, m.ChannelID, "Форма не найдена.")
		return
	}
	if err != nil {
		log.Printf("Error looking up form %d: %v", formID, err)
		utils.SendMessage(s, m.ChannelID, "Произошла ошибка при обработке команды.")
		return
	}
	utils.SendMessage(s, m.ChannelID, form.RenderForm(f))
}

func handleDMAccept(s *discordgo.Session, m *discordgo.MessageCreate, wf *workflow.Workflow, args []string) {
	formID, ok := dmFormID(args)
	if !ok {
		utils.SendMessage(s, m.ChannelID, "Укажите номер формы.")
		return
	}

	f, err := wf.Accept("", m.Author.ID, formID)
	if err != nil {
		utils.SendMessage(s, m.ChannelID, dmDecisionErrorText(formID, err))
		return
	}
	utils.SendMessage(s, m.ChannelID, fmt.Sprintf("Форма #%d принята.", f.ID))
}

// handleDMReject is the free-text override for the constrained reason
// list: everything after the form number becomes the stored result.
func handleDMReject(s *discordgo.Session, m *discordgo.MessageCreate, wf *workflow.Workflow, args []string) {
	formID, ok := dmFormID(args)
	if !ok || len(args) < 2 {
		utils.SendMessage(s, m.ChannelID, "Укажите номер формы и причину отклонения.")
		return
	}
	reason := strings.Join(args[1:], " ")

	f, err := wf.Reject("", m.Author.ID, formID, reason)
	if err != nil {
		utils.SendMessage(s, m.ChannelID, dmDecisionErrorText(formID, err))
		return
	}
	utils.SendMessage(s, m.ChannelID, fmt.Sprintf("Форма #%d отклонена.", f.ID))
}

func handleDMPendingList(s *discordgo.Session, m *discordgo.MessageCreate, wf *workflow.Workflow) {
	pending, err := wf.Pending("")
	if err != nil {
		log.Printf("Error listing pending forms: %v", err)
		utils.SendMessage(s, m.ChannelID, "Произошла ошибка при обработке команды.")
		return
	}
	if len(pending) == 0 {
		utils.SendMessage(s, m.ChannelID, "Форм на рассмотрении нет.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Формы на рассмотрении:\n")
	for _, f := range pending {
		fmt.Fprintf(&sb, "#%d [%s] в <#%s> от <@%s>\n", f.ID, f.Type, f.ChatID, f.SenderID)
	}
	utils.SendMessage(s, m.ChannelID, sb.String())
}

func dmFormID(args []string) (int64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func dmDecisionErrorText(formID int64, err error) string {
	switch {
	case errors.Is(err, workflow.ErrForbidden):
		return "У вас нет прав на проверку форм."
	case errors.Is(err, workflow.ErrAlreadyDecided):
		return "Форма уже обработана."
	default:
		log.Printf("Error reviewing form %d: %v", formID, err)
		return "Произошла ошибка при обработке команды."
	}
}
