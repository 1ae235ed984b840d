package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

// ErrUnknownLevel is returned by ParseLevel
var ErrUnknownLevel = errors.New("log: unknown level")

// Level controls which messages reach the sink
type Level int

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levelNames = map[Level]string{
	Debug:   "debug",
	Info:    "info",
	Notice:  "notice",
	Warning: "warning",
	Error:   "error",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel maps a level name to a Level
func ParseLevel(name string) (Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for level, levelName := range levelNames {
		if levelName == name {
			return level, nil
		}
	}
	return Notice, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var leveledBackend logging.LeveledBackend

// Logger is implemented by every named logger
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a named logger. The name shows up as the module column.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all loggers to sink, keeping the current level
func SetSink(sink io.Writer) {
	level := logging.NOTICE
	if leveledBackend != nil {
		level = leveledBackend.GetLevel("")
	}

	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(level, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity of all loggers
func SetLevel(level Level) {
	var loggerLevel logging.Level

	switch level {
	case Debug:
		loggerLevel = logging.DEBUG
	case Info:
		loggerLevel = logging.INFO
	case Warning:
		loggerLevel = logging.WARNING
	case Error:
		loggerLevel = logging.ERROR
	default:
		loggerLevel = logging.NOTICE
	}

	leveledBackend.SetLevel(loggerLevel, "")
}

// Enabled reports whether messages at level are currently emitted
func Enabled(level Level) bool {
	switch level {
	case Debug:
		return leveledBackend.IsEnabledFor(logging.DEBUG, "")
	case Info:
		return leveledBackend.IsEnabledFor(logging.INFO, "")
	case Warning:
		return leveledBackend.IsEnabledFor(logging.WARNING, "")
	case Error:
		return leveledBackend.IsEnabledFor(logging.ERROR, "")
	default:
		return leveledBackend.IsEnabledFor(logging.NOTICE, "")
	}
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
