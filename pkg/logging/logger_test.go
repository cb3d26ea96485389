package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixWriter_CompleteLines(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter("> ", &out)

	n, err := pw.Write([]byte("one\ntwo\n"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, "> one\n> two\n", out.String())
}

func TestPrefixWriter_PartialLineHeldUntilNewline(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter("> ", &out)

	_, err := pw.Write([]byte("par"))
	require.NoError(t, err)
	assert.Empty(t, out.String())

	_, err = pw.Write([]byte("tial\nrest"))
	require.NoError(t, err)
	assert.Equal(t, "> partial\n", out.String())

	require.NoError(t, pw.Flush())
	assert.Equal(t, "> partial\n> rest", out.String())
	require.NoError(t, pw.Flush())
	assert.Equal(t, "> partial\n> rest", out.String())
}

func TestResolveLevel(t *testing.T) {
	tests := []struct {
		name       string
		cli        string
		launcher   string
		global     string
		wantName   string
		wantSource string
		wantJSON   bool
	}{
		{name: "default", wantName: DefaultLevel, wantSource: "default"},
		{name: "flag wins", cli: "trace", launcher: "info", global: "error", wantName: "trace", wantSource: "flag"},
		{name: "launcher env", launcher: "info", global: "error", wantName: "info", wantSource: EnvLauncherLogLevel},
		{name: "global env", global: "error", wantName: "error", wantSource: EnvLogLevel},
		{name: "json with level", cli: "json:debug", wantName: "debug", wantSource: "flag", wantJSON: true},
		{name: "bare json", cli: "json", wantName: "info", wantSource: "flag", wantJSON: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvLauncherLogLevel, tt.launcher)
			t.Setenv(EnvLogLevel, tt.global)
			t.Setenv(EnvJSONLog, "")

			lvl := ResolveLevel(tt.cli)
			assert.Equal(t, tt.wantName, lvl.Name)
			assert.Equal(t, tt.wantSource, lvl.Source)
			assert.Equal(t, tt.wantJSON, lvl.JSON)
		})
	}
}

func TestIsEnvTrue(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "on"} {
		t.Setenv(EnvDebug, v)
		assert.True(t, DebugEnabled(), v)
	}
	for _, v := range []string{"", "0", "false", "no", "garbage"} {
		t.Setenv(EnvDebug, v)
		assert.False(t, DebugEnabled(), v)
	}
}

func TestNewLogger_PlainOutputIsPrefixed(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger("test", Level{Name: "info"}, &out)

	logger.Info("hello", "key", "value")
	logger.Debug("hidden")

	line := out.String()
	assert.True(t, strings.HasPrefix(line, "[jvmstarter] "), line)
	assert.Contains(t, line, "hello")
	assert.Contains(t, line, "key=value")
	assert.NotContains(t, line, "hidden")
}

func TestNewLogger_JSONOutputIsNotPrefixed(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger("test", Level{Name: "info", JSON: true}, &out)

	logger.Info("hello")
	assert.True(t, strings.HasPrefix(out.String(), "{"), out.String())
}
