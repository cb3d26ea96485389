package launcher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/provide-io/flavor/go/jvmstarter/pkg/jni"
	"github.com/provide-io/flavor/go/jvmstarter/pkg/utils/optsplit"
)

// Manifest is the JSON form of LaunchOptions used by the binaries.
//
//	{
//	  "main_class": "org.example.Main",
//	  "jar_dirs": ["lib"],
//	  "classpath": ["param_to_jvm", "ignore_global_if_param"],
//	  "java_home_lookup": ["env", "path", "registry", "param"],
//	  "options_env_var": "JAVA_OPTS"
//	}
type Manifest struct {
	MainClass  string   `json:"main_class"`
	MainMethod string   `json:"main_method,omitempty"`
	ExtraArgs  []string `json:"extra_args,omitempty"`

	Params              []ParamSpec `json:"params,omitempty"`
	TerminatingSuffixes []string    `json:"terminating_suffixes,omitempty"`

	Classpath      []string `json:"classpath,omitempty"`
	JavaHomeLookup []string `json:"java_home_lookup,omitempty"`
	ToolsJar       bool     `json:"tools_jar_sysprop,omitempty"`

	JavaHome string   `json:"java_home,omitempty"`
	JarDirs  []string `json:"jar_dirs,omitempty"`
	Jars     []string `json:"jars,omitempty"`

	JVMOptions    []string `json:"jvm_options,omitempty"`
	OptionsEnvVar string   `json:"options_env_var,omitempty"`
	OptionsSplit  string   `json:"options_split,omitempty"`

	Selection          Selection `json:"selection"`
	JNIVersion         string    `json:"jni_version,omitempty"`
	IgnoreUnrecognized bool      `json:"ignore_unrecognized,omitempty"`
}

// ReadManifest decodes a manifest. Unknown fields are rejected.
func ReadManifest(r io.Reader) (*Manifest, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	return &m, nil
}

// LoadManifest reads the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	m, err := ReadManifest(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// LaunchOptions converts the manifest for a launch with the given arguments.
// Without a java_home_lookup list every strategy is allowed.
func (m *Manifest) LaunchOptions(args []string) (*LaunchOptions, error) {
	cp, err := parseFlagNames(m.Classpath, classpathHandlingNames, "classpath handling")
	if err != nil {
		return nil, err
	}

	jh := AllJavaHomeLookups
	if m.JavaHomeLookup != nil {
		if jh, err = parseFlagNames(m.JavaHomeLookup, javaHomeHandlingNames, "java home lookup"); err != nil {
			return nil, err
		}
	}

	var tools ToolsJarHandling
	if m.ToolsJar {
		tools = ToolsJarToSysProp
	}

	split, err := optsplit.ParseMode(m.OptionsSplit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	version, err := jni.ParseVersion(m.JNIVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	jvmOpts := make([]JVMOption, 0, len(m.JVMOptions))
	for _, o := range m.JVMOptions {
		jvmOpts = append(jvmOpts, JVMOption{Text: o})
	}

	return &LaunchOptions{
		Args:                args,
		Params:              m.Params,
		TerminatingSuffixes: m.TerminatingSuffixes,
		ClasspathHandling:   cp,
		JavaHomeHandling:    jh,
		ToolsJarHandling:    tools,
		JavaHome:            m.JavaHome,
		JarDirs:             m.JarDirs,
		Jars:                m.Jars,
		JVMOptions:          jvmOpts,
		OptionsEnvVar:       m.OptionsEnvVar,
		OptionsSplit:        split,
		MainClass:           m.MainClass,
		MainMethod:          m.MainMethod,
		ExtraArgs:           m.ExtraArgs,
		Selection:           m.Selection,
		JNIVersion:          version,
		IgnoreUnrecognized:  m.IgnoreUnrecognized,
	}, nil
}
