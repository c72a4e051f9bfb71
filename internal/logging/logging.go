package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "2006-01-02 15:04:05.000"

// New создаёт консольный логгер со строками "время [LEVEL] сообщение".
// Если w == nil, пишем в stderr.
func New(w io.Writer, level string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat, NoColor: true}
	cw.FormatLevel = func(i interface{}) string {
		s, _ := i.(string)
		return "[" + levelName(s) + "]"
	}
	return zerolog.New(cw).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Critical пишет на уровне fatal, но не завершает процесс.
func Critical(l zerolog.Logger) *zerolog.Event {
	return l.WithLevel(zerolog.FatalLevel)
}

func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

func levelName(s string) string {
	switch s {
	case zerolog.LevelFatalValue:
		return "CRITICAL"
	case "":
		return "???"
	default:
		return strings.ToUpper(s)
	}
}
