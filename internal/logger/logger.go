// Package logger provides the structured logger shared by every s4d
// package and command: a thin wrapper over logrus with a package-level
// default instance and field-based call sites.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the package-level logger. Callers attach fields rather than
// formatting strings: logger.Log.WithField("rank", r).Debug("allocated").
var Log = New(false)

// New builds a logrus.Logger. json=true selects the JSON formatter
// (production); json=false selects a human-readable text formatter (dev).
func New(json bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	if json {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetLevel parses level (e.g. "debug", "info", "warn", "error") and
// applies it to the default logger, falling back to Info on a bad value.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}

// UseJSON swaps the default logger's formatter to JSON, for production
// deployments that ship logs to a collector.
func UseJSON() {
	Log.SetFormatter(&logrus.JSONFormatter{})
}
