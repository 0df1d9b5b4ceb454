package handlers

import (
	"log"
	"strings"

	"moderation-bot/bot"
	"moderation-bot/commands"
	"moderation-bot/handlers/form"
	"moderation-bot/utils"
	"moderation-bot/utils/database/forms"
	"moderation-bot/workflow"

	"github.com/bwmarrin/discordgo"
)

// Register wires the workflow and attaches the event handlers. Event kinds
// without a handler here are dropped by discordgo, which keeps the bot
// forward-compatible with platform additions.
func Register(b *bot.Bot) {
	store := forms.NewStore(b.DB)
	notifier := form.NewNotifier(b.Session)
	wf := workflow.New(store, notifier, b.GetConfig())

	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		defer recoverEvent("MessageCreate")
		handleMessageCreate(s, m, b, wf)
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		defer recoverEvent("InteractionCreate")
		handleInteractionCreate(s, i, b, wf)
	})
	b.Session.AddHandler(func(s *discordgo.Session, g *discordgo.GuildMemberAdd) {
		defer recoverEvent("GuildMemberAdd")
		handleMemberJoin(s, g, b)
	})
}

// recoverEvent keeps a failure in one event from taking down the listener.
func recoverEvent(event string) {
	if r := recover(); r != nil {
		log.Printf("Recovered from panic in %s handler: %v", event, r)
	}
}

func handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate, b *bot.Bot, wf *workflow.Workflow) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	text := strings.TrimSpace(m.Content)
	if text == "" {
		return
	}

	// Direct messages go to the admin-only side channel.
	if m.GuildID == "" {
		handleDirectMessage(s, m, b, wf)
		return
	}

	switch {
	case text == "/help":
		utils.SendReply(s, m, commands.HelpText())
	case commands.IsPunishment(text):
		form.HandlePunishCommand(s, m, b, wf)
	default:
		if arg, ok := commands.ShowFormArg(text); ok {
			form.HandleShowForm(s, m, wf, arg)
			return
		}
		if arg, ok := commands.AcceptFormArg(text); ok {
			form.HandleAcceptCommand(s, m, b, wf, arg)
			return
		}
		if commands.IsPendingList(text) {
			form.HandlePendingList(s, m, wf)
		}
	}
}
