package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/countries-quiz-bot/internal/config"
)

// New builds the application logger: JSON output in production, console output otherwise.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
