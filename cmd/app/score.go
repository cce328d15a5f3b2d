package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"CreditLens/internal/domain/models"
	xhttp "CreditLens/pkg/http"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [application.json]",
	Short: "Score a loan application read from a JSON file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		app, err := readApplication(in)
		if err != nil {
			return err
		}

		s, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		model, _ := cmd.Flags().GetString("model")
		res, err := s.Loans.Score(cmd.Context(), *app, model)
		if err != nil {
			return err
		}
		if vec, _ := cmd.Flags().GetBool("include-vector"); !vec {
			res.Features = nil
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

func init() {
	scoreCmd.Flags().String("model", "", "Model variant (default from config)")
	scoreCmd.Flags().Bool("include-vector", false, "Include the assembled feature vector")
}

func readApplication(r io.Reader) (*models.LoanApplication, error) {
	app := &models.LoanApplication{}
	if err := json.NewDecoder(r).Decode(app); err != nil {
		return nil, fmt.Errorf("decode application: %w", err)
	}
	if verr := xhttp.Validate(app); verr != nil {
		return nil, validationError(verr)
	}
	return app, nil
}

func validationError(verr interface{}) error {
	errs, ok := verr.([]xhttp.ValidationError)
	if !ok || len(errs) == 0 {
		return fmt.Errorf("invalid input: %v", verr)
	}
	msg := errs[0].Message
	for _, e := range errs[1:] {
		msg += "; " + e.Message
	}
	return fmt.Errorf("invalid input: %s", msg)
}
