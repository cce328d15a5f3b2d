package main

import (
	"errors"

	"CreditLens/internal/services/grading"

	"github.com/spf13/cobra"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Derive the grade band for a debt-to-income ratio",
	Example: `  creditlens grade --dti 12.4
  creditlens grade --income 50000 --debt 625`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var dti float64
		switch {
		case cmd.Flags().Changed("dti"):
			dti, _ = cmd.Flags().GetFloat64("dti")
		case cmd.Flags().Changed("income") && cmd.Flags().Changed("debt"):
			income, _ := cmd.Flags().GetFloat64("income")
			debt, _ := cmd.Flags().GetFloat64("debt")
			if income <= 0 {
				return errors.New("--income must be positive")
			}
			dti = grading.ComputeDTI(debt, income)
		default:
			return errors.New("either --dti or both --income and --debt are required")
		}
		return printJSON(cmd.OutOrStdout(), grading.Result(dti, grading.DeriveFromDTI(dti)))
	},
}

func init() {
	gradeCmd.Flags().Float64("dti", 0, "Debt-to-income ratio in percent")
	gradeCmd.Flags().Float64("income", 0, "Annual income")
	gradeCmd.Flags().Float64("debt", 0, "Monthly debt payments")
	gradeCmd.MarkFlagsMutuallyExclusive("dti", "income")
	gradeCmd.MarkFlagsRequiredTogether("income", "debt")
}
