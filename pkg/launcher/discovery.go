package launcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// JavaHomeEnvVar is consulted when AllowEnvVarLookup is set.
const JavaHomeEnvVar = "JAVA_HOME"

// Registry keys probed under HKEY_LOCAL_MACHINE, JDKs before JREs.
var registryJavaKeys = []string{
	`SOFTWARE\JavaSoft\Java Development Kit`,
	`SOFTWARE\JavaSoft\JDK`,
	`SOFTWARE\JRockit\Java Development Kit`,
	`SOFTWARE\JavaSoft\Java Runtime Environment`,
	`SOFTWARE\JavaSoft\JRE`,
	`SOFTWARE\JRockit\Java Runtime Environment`,
}

// ErrRegistryKeyNotFound is returned by a RegistryReader for a missing key or value.
var ErrRegistryKeyNotFound = errors.New("registry key not found")

// RegistryReader reads string values below HKEY_LOCAL_MACHINE.
type RegistryReader interface {
	ReadString(keyPath, name string) (string, error)
}

// ResolveJavaHome finds the java installation to use. An existing explicit
// home wins, then JAVA_HOME, the java executable on PATH, the Windows
// registry and finally the platform fallback, each only when handling allows
// it. The first result is kept for the life of the session.
func (s *Session) ResolveJavaHome(explicit string, handling JavaHomeHandling) (string, error) {
	logger := s.logger()

	if s.home != "" {
		logger.Trace("🔁 Using memoized java home", "path", s.home)
		return s.home, nil
	}

	home, source := s.discoverJavaHome(explicit, handling)
	if home == "" {
		if handling&AllowEnvVarLookup != 0 {
			return "", fmt.Errorf("%w: %s not set", ErrHomeNotFound, JavaHomeEnvVar)
		}
		return "", fmt.Errorf("%w: java home not provided", ErrHomeNotFound)
	}

	logger.Debug("☕ Using java home", "path", home, "source", source)
	s.home = home
	return home, nil
}

func (s *Session) discoverJavaHome(explicit string, handling JavaHomeHandling) (string, string) {
	logger := s.logger()

	if explicit != "" {
		if s.exists(explicit) {
			return explicit, "explicit"
		}
		logger.Debug("⏭️ Explicit java home does not exist, trying other strategies", "path", explicit)
	}

	if handling&AllowEnvVarLookup != 0 {
		if env := s.getenv(JavaHomeEnvVar); env != "" {
			if s.exists(env) {
				return env, JavaHomeEnvVar
			}
			logger.Warn("⚠️ JAVA_HOME points to a nonexistent location", "path", env)
		}
	}

	if handling&AllowPathLookup != 0 {
		if home := s.javaHomeFromPath(); home != "" {
			return home, "PATH"
		}
	}

	if handling&AllowRegistryLookup != 0 && s.Host.Registry && s.Registry != nil {
		if home := s.javaHomeFromRegistry(); home != "" {
			return home, "registry"
		}
	}

	if s.Host.FallbackHome != "" {
		return s.Host.FallbackHome, "fallback"
	}
	return "", ""
}

// javaHomeFromPath looks for the java executable on PATH. The first hit ends
// the search; it only yields a home when the executable sits in a bin directory.
func (s *Session) javaHomeFromPath() string {
	logger := s.logger()
	sep := string(filepath.Separator)

	for _, dir := range filepath.SplitList(s.getenv(s.Host.SearchPathVar())) {
		if dir == "" {
			continue
		}
		candidate := dir
		if !strings.HasSuffix(candidate, sep) {
			candidate += sep
		}
		candidate += s.Host.JavaExecutable
		if !s.isRegularFile(candidate) {
			continue
		}

		if s.Host.CanonicalizePath {
			real, err := s.canonicalize(candidate)
			if err != nil {
				logger.Warn("⚠️ Could not resolve java executable", "path", candidate, "error", err)
				return ""
			}
			candidate = real
		}

		binDir := filepath.Dir(candidate)
		// "/bin" is the shortest directory that can hold a java home.
		if len(binDir) < 4 || filepath.Base(binDir) != "bin" {
			logger.Debug("🔍 java on PATH is not in a bin directory", "path", candidate)
			return ""
		}
		home := filepath.Dir(binDir)
		logger.Debug("🔍 Java home found on PATH", "path", home)
		return home
	}

	logger.Debug("🔍 Java home not found on PATH")
	return ""
}

func (s *Session) javaHomeFromRegistry() string {
	logger := s.logger()

	for _, key := range registryJavaKeys {
		version, err := s.Registry.ReadString(key, "CurrentVersion")
		if err != nil {
			if !errors.Is(err, ErrRegistryKeyNotFound) {
				logger.Warn("⚠️ Registry lookup failed", "key", key, "error", err)
			}
			continue
		}
		if version == "" {
			continue
		}

		versionKey := key + `\` + version
		home, err := s.Registry.ReadString(versionKey, "JavaHome")
		if err != nil {
			if !errors.Is(err, ErrRegistryKeyNotFound) {
				logger.Warn("⚠️ Registry lookup failed", "key", versionKey, "error", err)
			}
			continue
		}
		if home != "" {
			logger.Debug("🔍 Java home found in registry", "key", versionKey, "path", home)
			return home
		}
	}
	return ""
}
