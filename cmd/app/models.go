package main

import (
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List configured model variants and whether they loaded",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		out := map[string]interface{}{
			"default": s.Catalog.DefaultModel(),
			"models":  s.Catalog.Models(),
		}
		if info, ok := s.Catalog.BanknoteInfo(); ok {
			out["banknote"] = info
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}
