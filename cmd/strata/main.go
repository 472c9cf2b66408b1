// File: cmd/strata/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strataconf/strata"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		appName       string
		localDir      string
		globalDir     string
		envPrefix     string
		configFile    string
		lenient       bool
		failOnMissing bool
	)

	rootCmd := &cobra.Command{
		Use:   "strata",
		Short: "Inspect layered configuration resolution",
		Long: `strata resolves the layered configuration stack (command-line arguments,
environment variables, local, global and packaged config files, defaults)
the way the library would, and reports the merged result with per-key
provenance. Tokens after "--" feed the command-line layer.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&appName, "app", "", "application name (selects the global config directory)")
	rootCmd.PersistentFlags().StringVar(&localDir, "local-dir", "", "local config search directory (default \".\")")
	rootCmd.PersistentFlags().StringVar(&globalDir, "global-dir", "", "global config search directory")
	rootCmd.PersistentFlags().StringVar(&envPrefix, "env-prefix", "", "environment variable prefix (enables the environment layer)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "explicit config file replacing the local layers")
	rootCmd.PersistentFlags().BoolVar(&lenient, "lenient", false, "retry misdeclared file formats via content detection")
	rootCmd.PersistentFlags().BoolVar(&failOnMissing, "fail-on-missing", false, "treat missing config files as errors")

	buildOptions := func(args []string) strata.Options {
		return strata.Options{
			AppName:           appName,
			Args:              args,
			EnvPrefix:         envPrefix,
			LocalDir:          localDir,
			GlobalDir:         globalDir,
			ConfigFile:        configFile,
			LenientParsing:    lenient,
			FailOnMissingFile: failOnMissing,
		}
	}

	rootCmd.AddCommand(newExplainCommand(buildOptions))
	rootCmd.AddCommand(newDumpCommand(buildOptions))

	return rootCmd
}

func newExplainCommand(buildOptions func([]string) strata.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [-- args...]",
		Short: "Print every merged key with its value and winning layer",
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, errs := strata.ResolveLayers(buildOptions(args))
			reportLayerErrors(cmd, errs)
			if err := merged.Explain(cmd.OutOrStdout()); err != nil {
				return err
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d layer(s) failed to load", len(errs))
			}
			return nil
		},
	}
}

func newDumpCommand(buildOptions func([]string) strata.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [-- args...]",
		Short: "Print the merged configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, errs := strata.ResolveLayers(buildOptions(args))
			reportLayerErrors(cmd, errs)
			if err := merged.DumpTOML(cmd.OutOrStdout()); err != nil {
				return err
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d layer(s) failed to load", len(errs))
			}
			return nil
		},
	}
}

func reportLayerErrors(cmd *cobra.Command, errs []strata.ConfigError) {
	for _, e := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", e)
	}
}
