package main

import (
	"encoding/json"
	"fmt"

	"github.com/provide-io/flavor/go/jvmstarter/pkg/launcher"
	"github.com/spf13/cobra"
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Print the java home that would be used",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(nil)
		if err != nil {
			return err
		}
		home, err := newSession().ResolveJavaHome(opts.JavaHome, opts.JavaHomeHandling)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), home)
		return nil
	},
}

var libjvmCmd = &cobra.Command{
	Use:   "libjvm",
	Short: "Print the JVM shared library that would be loaded",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(nil)
		if err != nil {
			return err
		}
		s := newSession()
		home, err := s.ResolveJavaHome(opts.JavaHome, opts.JavaHomeHandling)
		if err != nil {
			return err
		}

		sel := opts.Selection
		switch {
		case forceClient:
			sel.Mode = launcher.ClientOnly
		case forceServer:
			sel.Mode = launcher.ServerOnly
		}

		lib, path, err := s.FindLibraryPath(home, sel)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", path, lib.Symbol)
		return nil
	},
}

type classifyReport struct {
	Boundary       int      `json:"boundary"`
	JVMOptions     []string `json:"jvm_options"`
	AppArgs        []string `json:"app_args"`
	ClasspathParam *string  `json:"classpath_param,omitempty"`
	JavaHome       string   `json:"java_home,omitempty"`
	Selection      string   `json:"selection,omitempty"`
}

var classifyCmd = &cobra.Command{
	Use:   "classify [flags] -- [args...]",
	Short: "Show how a command line is split between the JVM and the application",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(args)
		if err != nil {
			return err
		}
		c, err := newSession().Classify(opts.Args, opts.Params, opts.TerminatingSuffixes, opts.ClasspathHandling, opts.JavaHomeHandling)
		if err != nil {
			return err
		}

		report := classifyReport{
			Boundary:   c.Boundary,
			JVMOptions: c.JVMOptions,
			AppArgs:    c.AppArgs(opts.Args),
			JavaHome:   c.JavaHome,
		}
		if report.JVMOptions == nil {
			report.JVMOptions = []string{}
		}
		if c.HasClasspathParam {
			report.ClasspathParam = &c.ClasspathParam
		}
		if c.SelectionGiven {
			report.Selection = c.Selection.String()
		}
		return writeJSON(cmd, report)
	},
}

var classpathCmd = &cobra.Command{
	Use:   "classpath [flags] -- [args...]",
	Short: "Print the JVM options a launch would use, in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(args)
		if err != nil {
			return err
		}
		p, err := launcher.NewLauncher(newSession()).Prepare(opts)
		if err != nil {
			return err
		}
		for _, o := range p.Options {
			fmt.Fprintln(cmd.OutOrStdout(), o.Text)
		}
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run [flags] -- [args...]",
	Short: "Launch the configured main class",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(args)
		if err != nil {
			return err
		}
		if mainClass != "" {
			opts.MainClass = mainClass
		}
		return launcher.NewLauncher(newSession()).Launch(opts)
	},
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
