package app

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
)

// SetupLogging configures log (and the board package logger) for the
// config's mode, adding a rotating JSON log file when one is configured.
func SetupLogging(log *logrus.Logger, cfg config.Config) error {
	level := logrus.InfoLevel
	if cfg.Development() {
		level = logrus.DebugLevel
	}

	for _, l := range []*logrus.Logger{log, mines.Log} {
		l.SetLevel(level)
		l.SetOutput(os.Stderr)
		l.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	}

	if cfg.Log.File == "" {
		return nil
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Level:      level,
		Formatter:  &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
	})
	if err != nil {
		return err
	}
	log.AddHook(hook)
	mines.Log.AddHook(hook)
	return nil
}
