package model

// Config stores the application configuration.
// Loaded once at startup and never mutated afterwards.
type Config struct {
	BotToken       string
	DatabasePath   string
	LogWebhookURL  string
	AdminIDs       []string
	CancelReasons  []string
	WelcomeMessage string
}
