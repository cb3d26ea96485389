package launcher

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/provide-io/flavor/go/jvmstarter/pkg/jni"
	"github.com/provide-io/flavor/go/jvmstarter/pkg/utils/optsplit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `{
  "main_class": "groovy.ui.GroovyMain",
  "extra_args": ["--main", "groovy.ui.GroovyMain"],
  "params": [
    {"name": "-e", "shape": "double", "terminating": true},
    {"name": "-D", "shape": "prefix"},
    {"name": "--version", "shape": "single"}
  ],
  "terminating_suffixes": [".groovy", ".gy"],
  "classpath": ["param_to_jvm", "ignore_global_if_param"],
  "java_home_lookup": ["env", "path"],
  "tools_jar_sysprop": true,
  "jar_dirs": ["/opt/groovy/lib"],
  "jars": ["/opt/groovy/extra.jar"],
  "jvm_options": ["-Dprogram.name=groovy"],
  "options_env_var": "JAVA_OPTS",
  "options_split": "shell",
  "selection": {"mode": "client", "prefer_client": true},
  "jni_version": "1.8",
  "ignore_unrecognized": true
}`

func TestReadManifest(t *testing.T) {
	m, err := ReadManifest(strings.NewReader(sampleManifest))
	require.NoError(t, err)

	opts, err := m.LaunchOptions([]string{"-Xmx1g", "script.groovy"})
	require.NoError(t, err)

	assert.Equal(t, "groovy.ui.GroovyMain", opts.MainClass)
	assert.Equal(t, []string{"--main", "groovy.ui.GroovyMain"}, opts.ExtraArgs)
	assert.Equal(t, []ParamSpec{
		{Name: "-e", Shape: Double, Terminating: true},
		{Name: "-D", Shape: Prefix},
		{Name: "--version", Shape: Single},
	}, opts.Params)
	assert.Equal(t, []string{".groovy", ".gy"}, opts.TerminatingSuffixes)
	assert.Equal(t, ClasspathParamToJVM|IgnoreGlobalClasspathIfParamGiven, opts.ClasspathHandling)
	assert.Equal(t, AllowEnvVarLookup|AllowPathLookup, opts.JavaHomeHandling)
	assert.Equal(t, ToolsJarToSysProp, opts.ToolsJarHandling)
	assert.Equal(t, []JVMOption{{Text: "-Dprogram.name=groovy"}}, opts.JVMOptions)
	assert.Equal(t, optsplit.Shell, opts.OptionsSplit)
	assert.Equal(t, Selection{Mode: ClientOnly, PreferClient: true}, opts.Selection)
	assert.Equal(t, jni.Version1_8, opts.JNIVersion)
	assert.True(t, opts.IgnoreUnrecognized)
	assert.Equal(t, []string{"-Xmx1g", "script.groovy"}, opts.Args)
}

func TestManifestDefaults(t *testing.T) {
	m, err := ReadManifest(strings.NewReader(`{"main_class": "Main"}`))
	require.NoError(t, err)

	opts, err := m.LaunchOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, AllJavaHomeLookups, opts.JavaHomeHandling)
	assert.Zero(t, opts.ClasspathHandling)
	assert.Equal(t, optsplit.Spaces, opts.OptionsSplit)
	assert.Equal(t, jni.DefaultVersion, opts.JNIVersion)
	assert.Equal(t, Either, opts.Selection.Mode)
}

func TestManifestErrors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{name: "not json", manifest: `main_class = "Main"`},
		{name: "unknown field", manifest: `{"main_class": "Main", "mainClass": "Other"}`},
		{name: "bad shape", manifest: `{"params": [{"name": "-x", "shape": "triple"}]}`},
		{name: "bad selection", manifest: `{"selection": {"mode": "hotspot"}}`},
		{name: "bad classpath flag", manifest: `{"classpath": ["param_to_nowhere"]}`},
		{name: "bad lookup", manifest: `{"java_home_lookup": ["guess"]}`},
		{name: "bad split", manifest: `{"options_split": "csv"}`},
		{name: "bad jni version", manifest: `{"jni_version": "1.3"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ReadManifest(strings.NewReader(tt.manifest))
			if err == nil {
				_, err = m.LaunchOptions(nil)
			}
			require.ErrorIs(t, err, ErrInvalidManifest)
			assert.Equal(t, ExitConfigError, ExitCodeFor(err))
		})
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "JAVA_OPTS", m.OptionsEnvVar)

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, ErrInvalidManifest)
}

func TestManifestSelectionEncoding(t *testing.T) {
	data, err := json.Marshal(Selection{Mode: Either})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode": "either"}`, string(data))

	data, err = json.Marshal(ParamSpec{Name: "-o", Shape: Double})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "-o", "shape": "double"}`, string(data))
}
