package launcher

import (
	"fmt"
	"strings"

	"github.com/provide-io/flavor/go/jvmstarter/internal/hostenv"
)

// LoadedLibrary is an opened JVM library and its VM creation entry point.
type LoadedLibrary struct {
	Path   string
	Symbol string
	Entry  uintptr

	lib DynamicLibrary
}

// Close unloads the library. Only the first call does anything.
func (l *LoadedLibrary) Close() error {
	if l == nil || l.lib == nil {
		return nil
	}
	lib := l.lib
	l.lib = nil
	return lib.Close()
}

// libraryCandidates lists the library locations to try for sel.
func libraryCandidates(host hostenv.Host, sel Selection) []hostenv.Library {
	switch sel.Mode {
	case ServerOnly:
		return host.ServerLibraries
	case ClientOnly:
		return host.ClientLibraries
	}
	if sel.PreferClient {
		return append(append([]hostenv.Library{}, host.ClientLibraries...), host.ServerLibraries...)
	}
	return append(append([]hostenv.Library{}, host.ServerLibraries...), host.ClientLibraries...)
}

// FindLibraryPath returns the first JVM library under home matching sel.
// Every candidate is tried in the JDK layout (home/jre/...) before any is
// tried in the JRE layout.
func (s *Session) FindLibraryPath(home string, sel Selection) (hostenv.Library, string, error) {
	sep := "/"
	if s.Host.IsWindows() {
		sep = `\`
	}
	base := home
	if !strings.HasSuffix(base, sep) {
		base += sep
	}

	candidates := libraryCandidates(s.Host, sel)
	for _, prefix := range []string{"jre" + sep, ""} {
		for _, c := range candidates {
			path := base + prefix + c.Path
			if s.isRegularFile(path) {
				return c, path, nil
			}
			s.logger().Trace("🔍 No jvm library", "path", path)
		}
	}
	return hostenv.Library{}, "", fmt.Errorf("%w: could not find %s jvm under %s, please check that it is a valid jdk / jre containing the desired type of jvm",
		ErrLibraryNotFound, sel.Mode, home)
}

// LocateLibrary finds and opens the JVM library and resolves its VM creation
// function. A library that exists but fails to open ends the search.
func (s *Session) LocateLibrary(home string, sel Selection, loader DynamicLoader) (*LoadedLibrary, error) {
	logger := s.logger()

	candidate, path, err := s.FindLibraryPath(home, sel)
	if err != nil {
		return nil, err
	}
	logger.Debug("📚 Loading jvm library", "path", path, "mode", sel.Mode)

	lib, err := loader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLibraryLoadFailed, err)
	}

	entry, err := lib.Symbol(candidate.Symbol)
	if err != nil {
		if closeErr := lib.Close(); closeErr != nil {
			logger.Warn("⚠️ Failed to close jvm library", "path", path, "error", closeErr)
		}
		return nil, fmt.Errorf("%w: %s in %s: %w", ErrEntryPointNotFound, candidate.Symbol, path, err)
	}

	return &LoadedLibrary{Path: path, Symbol: candidate.Symbol, Entry: entry, lib: lib}, nil
}
