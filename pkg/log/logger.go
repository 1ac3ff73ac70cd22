package log

import (
	"io"
	"os"
	"sync"

	"github.com/op/go-logging"
)

// Level is the minimum severity written by the renderer, scene and server loggers.
// Progress rows log at Debug, render summaries at Info and written files at Notice.
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levels = map[Level]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	mu             sync.Mutex
	leveledBackend logging.LeveledBackend
	currentLevel   = Notice
)

// Logger is a named leveled logger. The name is the package that owns it.
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

// New returns the logger for module name
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects every logger to sink. The current level carries over, so tests can
// capture render warnings without touching the verbosity chosen on the command line.
func SetSink(sink io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	backend := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format)
	leveledBackend = logging.AddModuleLevel(backend)
	leveledBackend.SetLevel(levels[currentLevel], "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity of every logger. Unknown levels are ignored.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()

	l, ok := levels[level]
	if !ok {
		return
	}
	currentLevel = level
	leveledBackend.SetLevel(l, "")
}

// CurrentLevel returns the verbosity set by the last SetLevel call
func CurrentLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return currentLevel
}

func init() {
	SetSink(os.Stderr)
}
