package settings

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. Unknown level names fall back to
// error.
func NewLogger(cfg LogSettings, out io.Writer) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.ErrorLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	log.SetOutput(out)

	return log
}
