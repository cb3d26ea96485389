package logging

import (
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
)

// Environment variables consulted by the logger.
const (
	EnvLauncherLogLevel = "JVMSTARTER_LAUNCHER_LOG_LEVEL"
	EnvLogLevel         = "JVMSTARTER_LOG_LEVEL"
	EnvLogPath          = "JVMSTARTER_LOG_PATH"
	EnvJSONLog          = "JVMSTARTER_JSON_LOG"
	EnvDebug            = "JVMSTARTER_DEBUG"
)

// DefaultLevel is used when neither a flag nor the environment names a level.
const DefaultLevel = "warn"

// Level is a resolved log level together with where it came from.
type Level struct {
	Name   string
	Source string
	JSON   bool
}

// ResolveLevel picks the log level: CLI flag, then JVMSTARTER_LAUNCHER_LOG_LEVEL, then
// JVMSTARTER_LOG_LEVEL, then the default. A "json:" prefix ("json:debug") switches to
// JSON output.
func ResolveLevel(cliLevel string) Level {
	var lvl Level
	switch {
	case cliLevel != "":
		lvl = Level{Name: cliLevel, Source: "flag"}
	case os.Getenv(EnvLauncherLogLevel) != "":
		lvl = Level{Name: os.Getenv(EnvLauncherLogLevel), Source: EnvLauncherLogLevel}
	case os.Getenv(EnvLogLevel) != "":
		lvl = Level{Name: os.Getenv(EnvLogLevel), Source: EnvLogLevel}
	default:
		lvl = Level{Name: DefaultLevel, Source: "default"}
	}

	if strings.HasPrefix(lvl.Name, "json") {
		lvl.JSON = true
		if _, after, ok := strings.Cut(lvl.Name, ":"); ok && after != "" {
			lvl.Name = after
		} else {
			lvl.Name = "info"
		}
	}
	if IsEnvTrue(EnvJSONLog) {
		lvl.JSON = true
	}
	return lvl
}

// DebugEnabled reports whether JVMSTARTER_DEBUG asks for the launcher debug trace.
func DebugEnabled() bool {
	return IsEnvTrue(EnvDebug)
}

// NewLogger creates an hclog logger with the launcher's standard settings.
// A nil output means stderr, or the file named by JVMSTARTER_LOG_PATH when set.
func NewLogger(name string, lvl Level, output io.Writer) hclog.Logger {
	if output == nil {
		output = defaultOutput()
	}

	if !lvl.JSON {
		output = NewPrefixWriter(prefixFor(output), output)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(lvl.Name),
		JSONFormat: lvl.JSON,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// IsEnvTrue checks if an environment variable is set to a true value.
func IsEnvTrue(key string) bool {
	val := os.Getenv(key)
	if val == "" {
		return false
	}

	switch strings.ToLower(val) {
	case "on", "yes":
		return true
	}
	result, err := strconv.ParseBool(val)
	return err == nil && result
}

func defaultOutput() io.Writer {
	if logPath := os.Getenv(EnvLogPath); logPath != "" {
		if file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			return file
		}
	}
	return os.Stderr
}

// prefixFor returns a coloured coffee cup for terminals and a plain ASCII tag
// for files, pipes and Windows consoles.
func prefixFor(w io.Writer) string {
	f, ok := w.(*os.File)
	if !ok || runtime.GOOS == "windows" || !isatty.IsTerminal(f.Fd()) {
		return "[jvmstarter] "
	}
	return color.New(color.FgYellow).Sprint("☕ ")
}
