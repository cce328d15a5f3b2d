package usecase

import (
	"context"
	"time"

	"CreditLens/internal/domain/models"
	domrepo "CreditLens/internal/domain/repository"
	"CreditLens/internal/service/cache"
	applogger "CreditLens/pkg/logger"
)

var loanVerdicts = [2]string{models.VerdictLowRisk, models.VerdictHighRisk}

// LoanScoringUseCase scores loan applications with a selectable model variant.
type LoanScoringUseCase struct {
	catalog *Catalog
	p       *predictor
}

func NewLoanScoringUseCase(catalog *Catalog, c cache.BytesCache, ttl time.Duration, m domrepo.Metrics, l *applogger.Logger) *LoanScoringUseCase {
	return &LoanScoringUseCase{catalog: catalog, p: newPredictor(c, ttl, m, l)}
}

// Score runs the variant's pipeline on app. An empty model selects the default variant.
func (uc *LoanScoringUseCase) Score(ctx context.Context, app models.LoanApplication, model string) (*models.PredictionResult, error) {
	v, err := uc.catalog.Variant(model)
	if err != nil {
		uc.p.metrics.RecordError(ErrorKind(err))
		return nil, err
	}
	in, err := buildLoanRecord(&app, v.Pipeline)
	if err != nil {
		return nil, uc.p.fail("loan_score", v, err)
	}
	res, err := uc.p.run(ctx, "loan_score", v, in.record, loanVerdicts)
	if err != nil {
		return nil, err
	}
	dti := in.dti
	res.DTI = &dti
	res.Grade = in.subGrade.Grade.String()
	res.SubGrade = in.subGrade.String()
	return res, nil
}

// Models lists the configured loan variants.
func (uc *LoanScoringUseCase) Models() []models.ModelInfo {
	return uc.catalog.Models()
}
