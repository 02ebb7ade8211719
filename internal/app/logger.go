package app

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger собирает zap-логгер: JSON в production, цветной консольный вывод в остальных окружениях
func NewLogger(env, service string) (*zap.Logger, error) {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.OutputPaths = []string{"stdout"}
	config.InitialFields = map[string]interface{}{"service": service}

	return config.Build()
}

// MustLogger - как NewLogger, но паникует при ошибке
func MustLogger(env, service string) *zap.Logger {
	logger, err := NewLogger(env, service)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return logger
}
