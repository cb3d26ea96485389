package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/provide-io/flavor/go/jvmstarter/internal/buildinfo"
	"github.com/provide-io/flavor/go/jvmstarter/pkg/launcher"
	"github.com/provide-io/flavor/go/jvmstarter/pkg/logging"
)

// EnvManifest overrides the manifest location.
const EnvManifest = "JVMSTARTER_MANIFEST"

// manifestPath returns $JVMSTARTER_MANIFEST, or the executable path with its
// extension replaced by .json ("groovy.exe" -> "groovy.json").
func manifestPath(exePath string) string {
	if p := os.Getenv(EnvManifest); p != "" {
		return p
	}
	return strings.TrimSuffix(exePath, filepath.Ext(exePath)) + ".json"
}

func run(exePath string, args []string) int {
	lvl := logging.ResolveLevel("")
	logger := logging.NewLogger("jvmstarter-launcher", lvl, nil)
	logger.Debug("Log level", "level", lvl.Name, "source", lvl.Source)

	path := manifestPath(exePath)
	logger.Debug("📖 Reading launch manifest", "path", path)
	m, err := launcher.LoadManifest(path)
	if err != nil {
		logger.Error("❌ Failed to read launch manifest", "error", err)
		return launcher.ExitCodeFor(err)
	}

	opts, err := m.LaunchOptions(args)
	if err != nil {
		logger.Error("❌ Invalid launch manifest", "path", path, "error", err)
		return launcher.ExitCodeFor(err)
	}

	s := launcher.NewSession(logger, logging.DebugEnabled())
	if err := launcher.NewLauncher(s).Launch(opts); err != nil {
		logger.Error("❌ Launch failed", "error", err)
		return launcher.ExitCodeFor(err)
	}
	return launcher.ExitSuccess
}

func main() {
	// Set up panic recovery to return specific exit code
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "PANIC: %v\n", r)
			debug.PrintStack()
			os.Exit(launcher.ExitPanic)
		}
	}()

	if len(os.Args) == 2 && os.Args[1] == "--jvmstarter-version" {
		buildinfo.Print(os.Stdout, "jvmstarter-launcher")
		return
	}

	exePath, err := os.Executable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get executable path: %v\n", err)
		os.Exit(launcher.ExitIOError)
	}

	os.Exit(run(exePath, os.Args[1:]))
}
