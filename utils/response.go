package utils

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// SendMessage sends a plain message to a channel.
func SendMessage(s *discordgo.Session, channelID, content string) {
	_, err := s.ChannelMessageSend(channelID, content)
	if err != nil {
		log.Printf("Error sending message to channel %s: %v", channelID, err)
	}
}

// SendReply sends a message as a reply to the triggering message.
func SendReply(s *discordgo.Session, m *discordgo.MessageCreate, content string) {
	_, err := s.ChannelMessageSendReply(m.ChannelID, content, m.Reference())
	if err != nil {
		log.Printf("Error sending reply in channel %s: %v", m.ChannelID, err)
	}
}

// SendEphemeralResponse sends an ephemeral message in reply to an interaction.
func SendEphemeralResponse(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error sending ephemeral response: %v", err)
	}
}

// SendComponentResponse sends an ephemeral message with components in reply
// to an interaction.
func SendComponentResponse(s *discordgo.Session, i *discordgo.InteractionCreate, message string, components []discordgo.MessageComponent) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    message,
			Components: components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error sending component response: %v", err)
	}
}

// SendEmbed sends an embed message to a channel.
func SendEmbed(s *discordgo.Session, channelID string, embed *discordgo.MessageEmbed) {
	_, err := s.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		log.Printf("Error sending embed to channel %s: %v", channelID, err)
	}
}
