package form

import (
	"fmt"

	"moderation-bot/model"
	"moderation-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// Notifier delivers workflow side effects through the Discord session.
// It implements workflow.Notifier.
type Notifier struct {
	session *discordgo.Session
}

func NewNotifier(s *discordgo.Session) *Notifier {
	return &Notifier{session: s}
}

// PostForm announces a new form in its chat with the review controls.
func (n *Notifier) PostForm(f *model.Form) (string, error) {
	msg, err := n.session.ChannelMessageSendComplex(f.ChatID, buildFormMessage(f))
	if err != nil {
		return "", fmt.Errorf("failed to post form %d: %w", f.ID, err)
	}
	return msg.ID, nil
}

// AnnounceDecision rewrites the announcement with the verdict and strips
// the controls so the buttons cannot be pressed again.
func (n *Notifier) AnnounceDecision(f *model.Form) error {
	content := fmt.Sprintf("Форма #%d от <@%s>:\n%s\n\n%s", f.ID, f.SenderID, f.Context, verdictLine(f))
	if f.MessageID == "" {
		// Announcement was never posted or recorded; fall back to a fresh message.
		_, err := n.session.ChannelMessageSend(f.ChatID, content)
		return err
	}

	noComponents := []discordgo.MessageComponent{}
	_, err := n.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    f.ChatID,
		ID:         f.MessageID,
		Content:    &content,
		Components: &noComponents,
	})
	if err != nil {
		return fmt.Errorf("failed to edit announcement for form %d: %w", f.ID, err)
	}
	return nil
}

// NotifySender sends a direct message to the form's submitter.
func (n *Notifier) NotifySender(senderID, text string) error {
	return utils.SendPrivateMessage(n.session, senderID, text)
}
