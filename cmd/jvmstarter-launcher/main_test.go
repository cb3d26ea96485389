package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/provide-io/flavor/go/jvmstarter/pkg/launcher"
	"github.com/stretchr/testify/assert"
)

func TestManifestPath(t *testing.T) {
	t.Setenv(EnvManifest, "")

	tests := []struct {
		exe  string
		want string
	}{
		{exe: filepath.Join("opt", "bin", "groovy"), want: filepath.Join("opt", "bin", "groovy.json")},
		{exe: filepath.Join("opt", "bin", "groovy.exe"), want: filepath.Join("opt", "bin", "groovy.json")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, manifestPath(tt.exe))
	}

	t.Setenv(EnvManifest, "/etc/app.json")
	assert.Equal(t, "/etc/app.json", manifestPath("groovy"))
}

func TestRun_ManifestErrors(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvManifest, "")

	exe := filepath.Join(dir, "missing")
	assert.Equal(t, launcher.ExitConfigError, run(exe, nil))

	bad := filepath.Join(dir, "bad")
	assert.NoError(t, os.WriteFile(bad+".json", []byte(`{"selection": {"mode": "fast"}}`), 0o644))
	assert.Equal(t, launcher.ExitConfigError, run(bad, nil))
}

func TestRun_MissingMainClass(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvManifest, "")

	exe := filepath.Join(dir, "app")
	assert.NoError(t, os.WriteFile(exe+".json", []byte(`{"jar_dirs": []}`), 0o644))
	assert.Equal(t, launcher.ExitConfigError, run(exe, []string{"arg"}))
}
