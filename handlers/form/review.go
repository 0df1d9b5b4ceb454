package form

import (
	"fmt"
	"strconv"
	"strings"

	"moderation-bot/model"
	"moderation-bot/utils"
	"moderation-bot/workflow"

	"github.com/bwmarrin/discordgo"
)

// HandleAcceptButton processes a press of the "Принять" control.
// A second press after a decision reads "already handled" and changes nothing.
func HandleAcceptButton(s *discordgo.Session, i *discordgo.InteractionCreate, b model.Bot, wf *workflow.Workflow, customID string) {
	formID, ok := formIDFromCustomID(customID, AcceptCustomID)
	if !ok {
		return
	}

	userID := interactionUserID(i)
	f, err := wf.Accept(i.ChannelID, userID, formID)
	if err != nil {
		utils.SendEphemeralResponse(s, i, decisionErrorText(b, userID, formID, err))
		return
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("Форма #%d принята.", f.ID))
}

// HandleCancelButton processes a press of the "Отклонить" control by
// offering the configured reason list. Authorization is checked up front
// so non-admins never see the menu.
func HandleCancelButton(s *discordgo.Session, i *discordgo.InteractionCreate, b model.Bot, wf *workflow.Workflow, customID string) {
	formID, ok := formIDFromCustomID(customID, CancelCustomID)
	if !ok {
		return
	}

	cfg := b.GetConfig()
	userID := interactionUserID(i)
	if !utils.IsAdmin(cfg.AdminIDs, userID) {
		utils.LogWarn(cfg.LogWebhookURL, "Workflow", "Forbidden",
			fmt.Sprintf("User %s tried to review form %d", userID, formID))
		utils.SendEphemeralResponse(s, i, "У вас нет прав на проверку форм.")
		return
	}

	f, err := wf.Lookup(i.ChannelID, formID)
	if err != nil || f.Decided() {
		utils.SendEphemeralResponse(s, i, "Форма уже обработана.")
		return
	}

	utils.SendComponentResponse(s, i,
		fmt.Sprintf("Отклонение формы #%d:", formID),
		buildRejectMenu(formID, cfg.CancelReasons))
}

// HandleRejectSelect processes the reason choice. The final option in the
// configured list is the re-issue variant; everything else is a plain
// rejection with the chosen text as the result.
func HandleRejectSelect(s *discordgo.Session, i *discordgo.InteractionCreate, b model.Bot, wf *workflow.Workflow, customID string) {
	formID, ok := formIDFromCustomID(customID, RejectCustomID)
	if !ok {
		return
	}

	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return
	}
	cfg := b.GetConfig()
	idx, err := strconv.Atoi(values[0])
	if err != nil || idx < 0 || idx >= len(cfg.CancelReasons) {
		return
	}

	userID := interactionUserID(i)
	if idx == len(cfg.CancelReasons)-1 {
		f, err := wf.Reissue(i.ChannelID, userID, formID)
		if err != nil {
			utils.SendEphemeralResponse(s, i, decisionErrorText(b, userID, formID, err))
			return
		}
		utils.SendEphemeralResponse(s, i, fmt.Sprintf("Форма #%d перевыдана.", f.ID))
		return
	}

	f, err := wf.Reject(i.ChannelID, userID, formID, cfg.CancelReasons[idx])
	if err != nil {
		utils.SendEphemeralResponse(s, i, decisionErrorText(b, userID, formID, err))
		return
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("Форма #%d отклонена.", f.ID))
}

func formIDFromCustomID(customID, prefix string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimPrefix(customID, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// interactionUserID returns the pressing user's ID for both guild and DM
// interactions.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
