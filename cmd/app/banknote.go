package main

import (
	"CreditLens/internal/domain/models"
	xhttp "CreditLens/pkg/http"

	"github.com/spf13/cobra"
)

var banknoteCmd = &cobra.Command{
	Use:   "banknote",
	Short: "Authenticate a banknote from its wavelet statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		note := &models.Banknote{}
		for _, f := range []struct {
			name string
			dst  **float64
		}{
			{"variance", &note.Variance},
			{"skewness", &note.Skewness},
			{"curtosis", &note.Curtosis},
			{"entropy", &note.Entropy},
		} {
			if cmd.Flags().Changed(f.name) {
				v, _ := cmd.Flags().GetFloat64(f.name)
				*f.dst = &v
			}
		}
		if verr := xhttp.Validate(note); verr != nil {
			return validationError(verr)
		}

		s, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		res, err := s.Banknotes.Authenticate(cmd.Context(), *note)
		if err != nil {
			return err
		}
		res.Features = nil
		return printJSON(cmd.OutOrStdout(), res)
	},
}

func init() {
	banknoteCmd.Flags().Float64("variance", 0, "Variance of the wavelet transformed image")
	banknoteCmd.Flags().Float64("skewness", 0, "Skewness of the wavelet transformed image")
	banknoteCmd.Flags().Float64("curtosis", 0, "Curtosis of the wavelet transformed image")
	banknoteCmd.Flags().Float64("entropy", 0, "Entropy of the image")
}
