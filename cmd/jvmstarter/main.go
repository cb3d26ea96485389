package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/provide-io/flavor/go/jvmstarter/internal/buildinfo"
	"github.com/provide-io/flavor/go/jvmstarter/pkg/launcher"
	"github.com/provide-io/flavor/go/jvmstarter/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	logLevel    string
	javaHome    string
	mainClass   string
	forceClient bool
	forceServer bool
	versionFlag bool
	rootCmd     *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:           "jvmstarter",
		Short:         "Locate a Java runtime and launch applications inside it",
		Long:          `Locate a Java runtime, build its startup configuration and run a Java main class in-process.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				buildinfo.Print(cmd.OutOrStdout(), "jvmstarter")
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a launch manifest (JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, json:<level>)")
	rootCmd.PersistentFlags().StringVar(&javaHome, "java-home", "", "Java home to use when it exists")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	libjvmCmd.Flags().BoolVar(&forceClient, "client", false, "Look for the client JVM only")
	libjvmCmd.Flags().BoolVar(&forceServer, "server", false, "Look for the server JVM only")
	libjvmCmd.MarkFlagsMutuallyExclusive("client", "server")

	runCmd.Flags().StringVarP(&mainClass, "main", "m", "", "Main class, overrides the manifest")

	rootCmd.AddCommand(homeCmd, libjvmCmd, classifyCmd, classpathCmd, runCmd)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "PANIC: %v\n", r)
			debug.PrintStack()
			os.Exit(launcher.ExitPanic)
		}
	}()

	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		buildinfo.Print(os.Stdout, "jvmstarter")
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(launcher.ExitCodeFor(err))
	}
}

// newSession builds the logger and session shared by all subcommands.
func newSession() *launcher.Session {
	lvl := logging.ResolveLevel(logLevel)
	logger := logging.NewLogger("jvmstarter", lvl, nil)
	logger.Debug("Log level", "level", lvl.Name, "source", lvl.Source)
	return launcher.NewSession(logger, logging.DebugEnabled())
}

// loadOptions reads --config when given; without it every lookup strategy is
// allowed and the classpath parameter goes to the JVM.
func loadOptions(args []string) (*launcher.LaunchOptions, error) {
	m := &launcher.Manifest{Classpath: []string{"param_to_jvm"}}
	if configPath != "" {
		var err error
		if m, err = launcher.LoadManifest(configPath); err != nil {
			return nil, err
		}
	}
	if javaHome != "" {
		m.JavaHome = javaHome
	}
	return m.LaunchOptions(args)
}
