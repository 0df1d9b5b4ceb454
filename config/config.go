package config

import (
	"fmt"
	"log"
	"moderation-bot/model"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads the configuration from environment variables and config/config.yaml.
func Load() (*model.Config, error) {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("Error: BOT_TOKEN environment variable not set")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetDefault("database_path", "data/forms.db")
	v.SetDefault("cancel_reasons", defaultCancelReasons)
	v.SetDefault("welcome_message", "")
	v.SetDefault("log_webhook_url", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("Warning: config.yaml not found, using defaults")
	}

	cfg := &model.Config{
		BotToken:       token,
		DatabasePath:   v.GetString("database_path"),
		LogWebhookURL:  v.GetString("log_webhook_url"),
		AdminIDs:       v.GetStringSlice("admin_ids"),
		CancelReasons:  v.GetStringSlice("cancel_reasons"),
		WelcomeMessage: v.GetString("welcome_message"),
	}

	if len(cfg.AdminIDs) == 0 {
		log.Println("Warning: admin_ids is empty, no one will be able to review forms")
	}

	return cfg, nil
}

// defaultCancelReasons mirrors the review keyboard: the last entry is the
// re-issue option and must stay in the final position.
var defaultCancelReasons = []string{
	"игрок не найден в базе данных сервера.",
	"игрок уже был наказан.",
	"перевыдать",
}
