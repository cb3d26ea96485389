package launcher

import (
	"fmt"
	"os"

	"github.com/provide-io/flavor/go/jvmstarter/pkg/jni"
	"github.com/provide-io/flavor/go/jvmstarter/pkg/utils/optsplit"
)

// JVMOption is one option handed to the VM at creation.
type JVMOption = jni.Option

// OptionSources are the inputs of BuildJVMOptions, listed in merge order.
type OptionSources struct {
	Classpath string

	JavaHome string
	ToolsJar ToolsJarHandling

	Programmatic []JVMOption

	// EnvVar names a variable holding extra options, JAVA_OPTS for instance.
	EnvVar    string
	SplitMode optsplit.Mode

	CommandLine []string
}

// BuildJVMOptions merges the option sources. Later options win for settings
// the VM treats as last-wins, so command line options override everything.
// Nothing is deduplicated.
func (s *Session) BuildJVMOptions(src OptionSources) ([]JVMOption, error) {
	logger := s.logger()

	opts := make([]JVMOption, 0, 2+len(src.Programmatic)+len(src.CommandLine))
	opts = append(opts, JVMOption{Text: src.Classpath})

	if toolsJar, ok := s.toolsJar(src.JavaHome); ok && src.ToolsJar&ToolsJarToSysProp != 0 {
		opts = append(opts, JVMOption{Text: "-Dtools.jar=" + toolsJar})
		logger.Debug("🔧 Exposing tools.jar", "path", toolsJar)
	}

	opts = append(opts, src.Programmatic...)

	if src.EnvVar != "" {
		if value := s.getenv(src.EnvVar); value != "" {
			envOpts, err := optsplit.Split(value, src.SplitMode)
			if err != nil {
				return nil, fmt.Errorf("could not split %s: %w", src.EnvVar, err)
			}
			logger.Debug("🔧 Options from environment", "var", src.EnvVar, "count", len(envOpts), "mode", src.SplitMode)
			for _, o := range envOpts {
				opts = append(opts, JVMOption{Text: o})
			}
		}
	}

	for _, o := range src.CommandLine {
		opts = append(opts, JVMOption{Text: o})
	}

	if logger.IsTrace() {
		for i, o := range opts {
			logger.Trace("📝 JVM option", "index", i, "option", o.Text)
		}
	}
	return opts, nil
}

// toolsJar returns <home>/lib/tools.jar when it exists. JREs do not ship it.
func (s *Session) toolsJar(home string) (string, bool) {
	if home == "" {
		return "", false
	}
	sep := string(os.PathSeparator)
	path := home + sep + "lib" + sep + "tools.jar"
	return path, s.exists(path)
}
