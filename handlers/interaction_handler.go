package handlers

import (
	"strings"

	"moderation-bot/bot"
	"moderation-bot/handlers/form"
	"moderation-bot/workflow"

	"github.com/bwmarrin/discordgo"
)

func handleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, wf *workflow.Workflow) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	if strings.HasPrefix(customID, form.AcceptCustomID) {
		form.HandleAcceptButton(s, i, b, wf, customID)
	} else if strings.HasPrefix(customID, form.CancelCustomID) {
		form.HandleCancelButton(s, i, b, wf, customID)
	} else if strings.HasPrefix(customID, form.RejectCustomID) {
		form.HandleRejectSelect(s, i, b, wf, customID)
	}
}
