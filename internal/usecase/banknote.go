package usecase

import (
	"context"
	"time"

	"CreditLens/internal/domain/models"
	domrepo "CreditLens/internal/domain/repository"
	"CreditLens/internal/service/cache"
	"CreditLens/internal/services/features"
	applogger "CreditLens/pkg/logger"
)

var banknoteVerdicts = [2]string{models.VerdictAuthentic, models.VerdictNotAuthentic}

// BanknoteUseCase authenticates banknotes from their wavelet statistics.
type BanknoteUseCase struct {
	catalog *Catalog
	p       *predictor
}

func NewBanknoteUseCase(catalog *Catalog, c cache.BytesCache, ttl time.Duration, m domrepo.Metrics, l *applogger.Logger) *BanknoteUseCase {
	return &BanknoteUseCase{catalog: catalog, p: newPredictor(c, ttl, m, l)}
}

func (uc *BanknoteUseCase) Authenticate(ctx context.Context, note models.Banknote) (*models.PredictionResult, error) {
	v, err := uc.catalog.Banknote()
	if err != nil {
		uc.p.metrics.RecordError(ErrorKind(err))
		return nil, err
	}
	rec := features.NewRecord()
	rec.SetNumeric(features.ColVariance, note.Variance)
	rec.SetNumeric(features.ColSkewness, note.Skewness)
	rec.SetNumeric(features.ColCurtosis, note.Curtosis)
	rec.SetNumeric(features.ColEntropy, note.Entropy)
	return uc.p.run(ctx, "banknote_authenticate", v, rec, banknoteVerdicts)
}
