package launcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/provide-io/flavor/go/jvmstarter/pkg/utils/optsplit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optionTexts(opts []JVMOption) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Text
	}
	return out
}

func TestBuildJVMOptions_MergeOrder(t *testing.T) {
	home := t.TempDir()
	toolsJar := filepath.Join(home, "lib", "tools.jar")
	touch(t, toolsJar)

	s := testSession(t)
	s.Getenv = envMap(map[string]string{"JAVA_OPTS": "-Xmx128m  -Dfrom=env"})

	opts, err := s.BuildJVMOptions(OptionSources{
		Classpath:    ClasspathPrefix + "a.jar",
		JavaHome:     home,
		ToolsJar:     ToolsJarToSysProp,
		Programmatic: []JVMOption{{Text: "-Xmx64m"}, {Text: "-Dfrom=code", ExtraInfo: 7}},
		EnvVar:       "JAVA_OPTS",
		CommandLine:  []string{"-Xmx256m"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		ClasspathPrefix + "a.jar",
		"-Dtools.jar=" + toolsJar,
		"-Xmx64m",
		"-Dfrom=code",
		"-Xmx128m",
		"-Dfrom=env",
		"-Xmx256m",
	}, optionTexts(opts))
	assert.Equal(t, uintptr(7), opts[3].ExtraInfo)
}

func TestBuildJVMOptions_NoDeduplication(t *testing.T) {
	s := testSession(t)
	s.Getenv = envMap(nil)

	opts, err := s.BuildJVMOptions(OptionSources{
		Classpath:    ClasspathPrefix,
		Programmatic: []JVMOption{{Text: "-Xss2m"}},
		CommandLine:  []string{"-Xss2m", "-Xss2m"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{ClasspathPrefix, "-Xss2m", "-Xss2m", "-Xss2m"}, optionTexts(opts))
}

func TestBuildJVMOptions_ToolsJar(t *testing.T) {
	jdk := t.TempDir()
	touch(t, filepath.Join(jdk, "lib", "tools.jar"))
	jre := t.TempDir()

	tests := []struct {
		name     string
		home     string
		handling ToolsJarHandling
		want     int
	}{
		{name: "jdk with sysprop", home: jdk, handling: ToolsJarToSysProp, want: 2},
		{name: "jdk without sysprop", home: jdk, want: 1},
		{name: "jre has no tools.jar", home: jre, handling: ToolsJarToSysProp, want: 1},
		{name: "no home", handling: ToolsJarToSysProp, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSession(t)
			s.Getenv = envMap(nil)
			opts, err := s.BuildJVMOptions(OptionSources{Classpath: ClasspathPrefix, JavaHome: tt.home, ToolsJar: tt.handling})
			require.NoError(t, err)
			assert.Len(t, opts, tt.want)
		})
	}
}

func TestBuildJVMOptions_EnvSplitModes(t *testing.T) {
	value := `-Dmsg="hello world" -ea`

	s := testSession(t)
	s.Getenv = envMap(map[string]string{"OPTS": value})

	opts, err := s.BuildJVMOptions(OptionSources{Classpath: ClasspathPrefix, EnvVar: "OPTS", SplitMode: optsplit.Spaces})
	require.NoError(t, err)
	assert.Equal(t, []string{ClasspathPrefix, `-Dmsg="hello`, `world"`, "-ea"}, optionTexts(opts))

	opts, err = s.BuildJVMOptions(OptionSources{Classpath: ClasspathPrefix, EnvVar: "OPTS", SplitMode: optsplit.Shell})
	require.NoError(t, err)
	assert.Equal(t, []string{ClasspathPrefix, "-Dmsg=hello world", "-ea"}, optionTexts(opts))

	s.Getenv = envMap(map[string]string{"OPTS": `-Dmsg="open`})
	_, err = s.BuildJVMOptions(OptionSources{Classpath: ClasspathPrefix, EnvVar: "OPTS", SplitMode: optsplit.Shell})
	require.ErrorIs(t, err, optsplit.ErrUnclosedQuote)
}

func TestToolsJarPath(t *testing.T) {
	home := t.TempDir()
	path, ok := testSession(t).toolsJar(home)
	assert.False(t, ok)
	assert.Equal(t, home+string(os.PathSeparator)+filepath.Join("lib", "tools.jar"), path)
}
