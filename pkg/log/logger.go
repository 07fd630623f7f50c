// Package log provides the named, leveled loggers used by the renderer and
// the command line. Output goes to stderr so images can stream to stdout.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/op/go-logging"
)

// Level orders verbosity from most to least chatty
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levelNames = [...]string{Debug: "debug", Info: "info", Notice: "notice", Warning: "warning", Error: "error"}

var backendLevels = [...]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

func (l Level) String() string {
	if l < Debug || l > Error {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel converts a level name such as "info" into a Level
func ParseLevel(name string) (Level, error) {
	for l, n := range levelNames {
		if strings.EqualFold(n, name) {
			return Level(l), nil
		}
	}
	return Notice, fmt.Errorf("unknown log level %q", name)
}

// Verbosity maps the -v and -vv command line switches to a level
func Verbosity(verbose, veryVerbose bool) Level {
	switch {
	case veryVerbose:
		return Debug
	case verbose:
		return Info
	default:
		return Notice
	}
}

// Logger is the leveled logging interface used across the renderer.
// *logging.Logger satisfies it.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Notice(v ...interface{})
	Noticef(format string, v ...interface{})
	Warning(v ...interface{})
	Warningf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

var lineFormat = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	mu      sync.Mutex
	current = Notice
	backend logging.LeveledBackend
)

// New returns the logger for module. Loggers are shared per module name.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects every logger to w, keeping the current level
func SetSink(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	formatted := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), lineFormat)
	backend = logging.AddModuleLevel(formatted)
	backend.SetLevel(backendLevels[current], "")
	logging.SetBackend(backend)
}

// SetLevel sets the verbosity of every logger. Out of range values clamp to
// the nearest level.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()

	current = min(max(level, Debug), Error)
	backend.SetLevel(backendLevels[current], "")
}

// CurrentLevel returns the active verbosity
func CurrentLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return current
}

func init() {
	SetSink(os.Stderr)
}
