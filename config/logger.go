package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the standard logrus logger for the whole process.
func InitLogger(cfg *AppConfig) {
	logrus.SetOutput(os.Stdout)

	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("invalid LOG_LEVEL %q, falling back to info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
