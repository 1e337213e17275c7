package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	githubToken string
	outputJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "gitgrant-cli",
	Short: "gitgrant-cli is the command-line interface for gitgrant.",
	Long: `A CLI for running the gitgrant workflow and its pieces directly: fetching
and rating issues, inspecting pull requests, and administering the on-chain
grant ledger.`,
	SilenceUsage: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&githubToken, "github-token", "t", "", "GitHub Token")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Print results as JSON")

	if err := viper.BindPFlag("GITHUB_TOKEN", rootCmd.PersistentFlags().Lookup("github-token")); err != nil {
		slog.Error("Error binding flag", "error", err)
		os.Exit(1)
	}
}

// initConfig reads in ENV variables if set.
func initConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
