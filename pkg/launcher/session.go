package launcher

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/flavor/go/jvmstarter/internal/hostenv"
)

// Session carries the state one launcher process shares between its steps:
// the logger, the debug switch, the host facts and the memoized java home.
// A Session is not safe for concurrent use.
type Session struct {
	Logger hclog.Logger
	Debug  bool
	Host   hostenv.Host

	// Getenv reads environment variables; os.Getenv when nil.
	Getenv func(string) string
	// Registry is consulted for a java home on hosts that have one.
	Registry RegistryReader

	stat     func(string) (os.FileInfo, error)
	evalLink func(string) (string, error)
	home     string
}

// NewSession creates a session for the running host.
func NewSession(logger hclog.Logger, debug bool) *Session {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if debug && !logger.IsDebug() && !logger.IsTrace() {
		logger.SetLevel(hclog.Debug)
	}
	return &Session{
		Logger:   logger,
		Debug:    debug,
		Host:     hostenv.Current(),
		Registry: defaultRegistry(),
	}
}

func (s *Session) getenv(key string) string {
	if s.Getenv != nil {
		return s.Getenv(key)
	}
	return os.Getenv(key)
}

func (s *Session) logger() hclog.Logger {
	if s.Logger == nil {
		return hclog.NewNullLogger()
	}
	return s.Logger
}

func (s *Session) exists(path string) bool {
	stat := s.stat
	if stat == nil {
		stat = os.Stat
	}
	_, err := stat(path)
	return err == nil
}

func (s *Session) isRegularFile(path string) bool {
	stat := s.stat
	if stat == nil {
		stat = os.Stat
	}
	info, err := stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (s *Session) canonicalize(path string) (string, error) {
	if s.evalLink != nil {
		return s.evalLink(path)
	}
	return filepath.EvalSymlinks(path)
}
