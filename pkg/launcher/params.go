package launcher

import (
	"fmt"
	"strings"
)

// Shape says how many tokens a launcher recognised flag occupies.
type Shape int

const (
	// Single consumes only the flag token.
	Single Shape = iota
	// Double consumes the flag and the token after it.
	Double
	// Prefix matches any token starting with the flag name.
	Prefix
)

func (s Shape) String() string {
	switch s {
	case Single:
		return "single"
	case Double:
		return "double"
	case Prefix:
		return "prefix"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// UnmarshalText lets manifests spell shapes as "single", "double" or "prefix".
func (s *Shape) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "single", "":
		*s = Single
	case "double":
		*s = Double
	case "prefix":
		*s = Prefix
	default:
		return fmt.Errorf("%w: unknown parameter shape %q", ErrInvalidManifest, text)
	}
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParamSpec describes one application flag the launcher must recognise so
// it is not mistaken for a JVM option.
type ParamSpec struct {
	Name        string `json:"name"`
	Shape       Shape  `json:"shape"`
	Terminating bool   `json:"terminating,omitempty"`
}

// matches reports whether token is this flag.
func (p ParamSpec) matches(token string) bool {
	if p.Shape == Prefix {
		return strings.HasPrefix(token, p.Name)
	}
	return token == p.Name
}

// ClasspathHandling controls where the classpath parameter goes and whether
// the CLASSPATH environment variable is honoured.
type ClasspathHandling uint

const (
	// IgnoreGlobalClasspath never reads CLASSPATH.
	IgnoreGlobalClasspath ClasspathHandling = 1 << iota
	// IgnoreGlobalClasspathIfParamGiven skips CLASSPATH when -cp was given.
	IgnoreGlobalClasspathIfParamGiven
	// ClasspathParamToApp leaves -cp and its value to the application.
	ClasspathParamToApp
	// ClasspathParamToJVM adds the -cp value to java.class.path.
	ClasspathParamToJVM
)

var classpathHandlingNames = map[string]ClasspathHandling{
	"ignore_global":          IgnoreGlobalClasspath,
	"ignore_global_if_param": IgnoreGlobalClasspathIfParamGiven,
	"param_to_app":           ClasspathParamToApp,
	"param_to_jvm":           ClasspathParamToJVM,
}

// JavaHomeHandling selects the discovery strategies that may be used.
type JavaHomeHandling uint

const (
	// AllowEnvVarLookup consults JAVA_HOME.
	AllowEnvVarLookup JavaHomeHandling = 1 << iota
	// AllowPathLookup derives the home from a java executable on PATH.
	AllowPathLookup
	// AllowRegistryLookup reads the Windows registry.
	AllowRegistryLookup
	// AllowJavaHomeParam honours -jh / --javahome on the command line.
	AllowJavaHomeParam
)

// AllJavaHomeLookups enables every strategy.
const AllJavaHomeLookups = AllowEnvVarLookup | AllowPathLookup | AllowRegistryLookup | AllowJavaHomeParam

var javaHomeHandlingNames = map[string]JavaHomeHandling{
	"env":      AllowEnvVarLookup,
	"path":     AllowPathLookup,
	"registry": AllowRegistryLookup,
	"param":    AllowJavaHomeParam,
}

// ToolsJarHandling controls exposure of the JDK's lib/tools.jar.
type ToolsJarHandling uint

const (
	// ToolsJarToSysProp sets -Dtools.jar=<home>/lib/tools.jar when the file exists.
	ToolsJarToSysProp ToolsJarHandling = 1 << iota
)

// SelectionMode picks the client or server flavour of the JVM library.
type SelectionMode int

const (
	Either SelectionMode = iota
	ClientOnly
	ServerOnly
)

func (m SelectionMode) String() string {
	switch m {
	case ClientOnly:
		return "client"
	case ServerOnly:
		return "server"
	}
	return "client or server"
}

// UnmarshalText accepts "client", "server" and "either".
func (m *SelectionMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "either", "any":
		*m = Either
	case "client":
		*m = ClientOnly
	case "server":
		*m = ServerOnly
	default:
		return fmt.Errorf("%w: unknown jvm selection %q", ErrInvalidManifest, text)
	}
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (m SelectionMode) MarshalText() ([]byte, error) {
	if m == Either {
		return []byte("either"), nil
	}
	return []byte(m.String()), nil
}

// Selection is the requested JVM flavour.
type Selection struct {
	Mode         SelectionMode `json:"mode"`
	PreferClient bool          `json:"prefer_client,omitempty"`
}

// parseFlagNames folds a list of names into a bit set.
func parseFlagNames[T ~uint](names []string, table map[string]T, what string) (T, error) {
	var out T
	for _, n := range names {
		v, ok := table[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, fmt.Errorf("%w: unknown %s %q", ErrInvalidManifest, what, n)
		}
		out |= v
	}
	return out, nil
}
