// Package buildinfo reports the version and build time of the binaries.
package buildinfo

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"time"
)

// Version of the jvmstarter binaries.
const Version = "0.1.0"

// Timestamp returns when the binary was built: the VCS commit time when
// available, else the executable's modification time, else now.
func Timestamp() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// GoVersion is the toolchain the binary was built with.
func GoVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.GoVersion != "" {
		return info.GoVersion
	}
	return runtime.Version()
}

// Print writes the version banner for the named binary.
func Print(w io.Writer, name string) {
	fmt.Fprintf(w, "%s %s (%s, %s/%s)\n", name, Version, GoVersion(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "Built: %s\n", Timestamp())
}
