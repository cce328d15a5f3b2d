package main

import (
	"CreditLens/internal/di"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP scoring API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.Server.Port = port
		}

		// Wire DI: Initialize all dependencies
		app, err := di.InitializeApp(cfg)
		if err != nil {
			return err
		}

		// Run application (blocks until signal)
		return app.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "Listen port (overrides config)")
}
