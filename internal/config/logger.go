package config

import (
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

// NewLogger builds a zap logger tuned per environment.  Production
// gets JSON output; everything else gets the colored development
// encoder.  The logger is shared by main, the queue consumer and
// the event publisher.
func NewLogger(env string) *zap.Logger {
    var cfg zap.Config
    if env == "prod" || env == "production" {
        cfg = zap.NewProductionConfig()
    } else {
        cfg = zap.NewDevelopmentConfig()
        cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
    }
    cfg.OutputPaths = []string{"stdout"}

    logger, err := cfg.Build()
    if err != nil {
        panic("failed to create logger: " + err.Error())
    }
    return logger
}
