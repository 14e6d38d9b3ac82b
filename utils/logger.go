package utils

import (
	"go.uber.org/zap"
)

// InitLogger builds the application logger. Production gets the JSON encoder,
// everything else the human-readable development config.
func InitLogger(env string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch env {
	case "production", "prod":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
