package handlers

import (
	"log"

	"moderation-bot/bot"
	"moderation-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// handleMemberJoin greets new members in the guild's system channel.
func handleMemberJoin(s *discordgo.Session, g *discordgo.GuildMemberAdd, b *bot.Bot) {
	if g.User == nil || g.User.Bot {
		return
	}
	log.Printf("User %s joined guild %s", g.User.ID, g.GuildID)

	welcome := b.GetConfig().WelcomeMessage
	if welcome == "" {
		return
	}

	guild, err := s.Guild(g.GuildID)
	if err != nil || guild.SystemChannelID == "" {
		return
	}
	utils.SendMessage(s, guild.SystemChannelID, g.User.Mention()+" "+welcome)
}
