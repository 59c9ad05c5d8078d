package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Dir    string
	Level  string
	Format string // "json" or "text"
}

// NewLogger writes to stdout and a rotated <Dir>/app.log.
func NewLogger(opts Options) (*logrus.Logger, error) {
	if err := os.MkdirAll(opts.Dir, os.ModePerm); err != nil {
		return nil, err
	}

	logFile := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, "app.log"),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	return newLogger(io.MultiWriter(os.Stdout, logFile), opts), nil
}

func newLogger(out io.Writer, opts Options) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(ParseLevel(opts.Level))

	switch strings.ToLower(opts.Format) {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	default:
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	return log
}

// ParseLevel falls back to info for unknown levels.
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
