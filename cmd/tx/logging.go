// Package main provides the CLI commands for tx
package main

import (
	"github.com/sirupsen/logrus"

	"wormholeTx/pkg/config"
)

// setupLogging configures the logging system. Logs go to stderr so that the
// relayed wormhole output on stdout stays untouched.
func setupLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		logrus.Warnf("Invalid log level '%s', using 'warn'", cfg.Logging.Level)
		level = logrus.WarnLevel
	}
	logrus.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
}
