// Package cmd contains all CLI commands for bounce.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/bounce/internal/config"
)

var (
	cfgFile string
	v       = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "bounce",
	Short: "Trampoline skills, difficulty and routines",
	Long: `bounce models trampoline skills, scores their difficulty, converts them
into animation keyframes and builds routines that chain bed positions.

Settings are read from $XDG_CONFIG_HOME/bounce/config.yaml (or --config)
and can be overridden with BOUNCE_* environment variables.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = resolveVersion()
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/bounce/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringSlice("skills", nil, "extra skill catalog JSON files")
	rootCmd.PersistentFlags().StringSlice("requirements", nil, "extra requirement YAML files")

	v.BindPFlag("data.skills", rootCmd.PersistentFlags().Lookup("skills"))
	v.BindPFlag("data.requirements", rootCmd.PersistentFlags().Lookup("requirements"))

	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(routineCmd)
	rootCmd.AddCommand(requirementCmd)
	rootCmd.AddCommand(versionCmd)
}
