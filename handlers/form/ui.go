package form

import (
	"fmt"
	"strconv"
	"strings"

	"moderation-bot/model"

	"github.com/bwmarrin/discordgo"
)

// Custom ID prefixes for the review controls. Each carries the form ID so
// a later button event can be correlated back to the exact record.
const (
	AcceptCustomID = "form_accept:"
	CancelCustomID = "form_cancel:"
	RejectCustomID = "form_reject:"
)

// buildFormMessage creates the announcement for a newly created form with
// its accept/cancel controls.
func buildFormMessage(f *model.Form) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content: fmt.Sprintf("Форма #%d от <@%s>:\n%s", f.ID, f.SenderID, f.Context),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Принять",
						Style:    discordgo.SuccessButton,
						CustomID: AcceptCustomID + strconv.FormatInt(f.ID, 10),
					},
					discordgo.Button{
						Label:    "Отклонить",
						Style:    discordgo.DangerButton,
						CustomID: CancelCustomID + strconv.FormatInt(f.ID, 10),
					},
				},
			},
		},
	}
}

// verdictLine names the completed action in the reviewer's voice.
func verdictLine(f *model.Form) string {
	switch f.Status {
	case model.FormStatusAccepted:
		return fmt.Sprintf("✅ Проверяющий <@%s> принял форму #%d.", f.ReviewerID, f.ID)
	case model.FormStatusRejected:
		return fmt.Sprintf("❌ Проверяющий <@%s> отклонил форму #%d.\nПричина: %s", f.ReviewerID, f.ID, f.Result)
	case model.FormStatusReissued:
		return fmt.Sprintf("🔁 Проверяющий <@%s> перевыдал форму #%d.", f.ReviewerID, f.ID)
	default:
		return fmt.Sprintf("Форма #%d на рассмотрении.", f.ID)
	}
}

func statusText(status model.FormStatus) string {
	switch status {
	case model.FormStatusPending:
		return "на рассмотрении"
	case model.FormStatusAccepted:
		return "принята"
	case model.FormStatusRejected:
		return "отклонена"
	case model.FormStatusReissued:
		return "перевыдана"
	}
	return string(status)
}

// RenderForm formats a form for the display and list commands.
func RenderForm(f *model.Form) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Форма #%d [%s] — %s\n", f.ID, f.Type, statusText(f.Status))
	fmt.Fprintf(&sb, "От: <@%s>\n", f.SenderID)
	sb.WriteString(f.Context)
	if f.Decided() {
		fmt.Fprintf(&sb, "\nПроверяющий: <@%s>", f.ReviewerID)
	}
	if f.Result != "" {
		fmt.Fprintf(&sb, "\nПричина: %s", f.Result)
	}
	return sb.String()
}

// buildRejectMenu builds the reason select shown after the cancel button.
// Option values are indexes into the configured reason list.
func buildRejectMenu(formID int64, reasons []string) []discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, len(reasons))
	for idx, reason := range reasons {
		options = append(options, discordgo.SelectMenuOption{
			Label: reason,
			Value: strconv.Itoa(idx),
		})
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    RejectCustomID + strconv.FormatInt(formID, 10),
					Placeholder: "Выберите причину отклонения",
					Options:     options,
				},
			},
		},
	}
}
