package main

import (
	"encoding/json"
	"fmt"
	"io"

	"CreditLens/internal/di"
	"CreditLens/pkg/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "creditlens",
	Short:        "Credit risk and banknote scoring service",
	Long:         "CreditLens encodes loan applications and banknote measurements into model features and scores them with trained classifiers.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "config/config.yaml", "Path to the YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(banknoteCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(modelsCmd)
}

// loadConfig reads --config and applies environment overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	return cfg, nil
}

// loadServices wires the use cases for one-shot commands. Logs go to stderr so
// stdout carries only the result.
func loadServices(cmd *cobra.Command) (*di.Services, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg.Logging.Output = "stderr"
	s, err := di.InitializeServices(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialization failed: %w", err)
	}
	return s, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
