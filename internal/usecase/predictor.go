package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"CreditLens/internal/domain/models"
	domrepo "CreditLens/internal/domain/repository"
	"CreditLens/internal/service/cache"
	"CreditLens/internal/services/features"
	"CreditLens/internal/services/scoring"
	applogger "CreditLens/pkg/logger"
	"CreditLens/pkg/metrics"

	"github.com/google/uuid"
)

// HighConfidenceHint is the probability above which an unscaled prediction is flagged.
const HighConfidenceHint = 0.99

// predictor runs the shared tail of every pipeline: assemble, consult the cache,
// evaluate and render the result.
type predictor struct {
	cache   cache.BytesCache
	ttl     time.Duration
	metrics domrepo.Metrics
	l       *applogger.Logger
	now     func() time.Time
	newID   func() string
}

func newPredictor(c cache.BytesCache, ttl time.Duration, m domrepo.Metrics, l *applogger.Logger) *predictor {
	if c == nil {
		c = cache.Nop{}
	}
	if m == nil {
		m = nopMetrics{}
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &predictor{
		cache:   c,
		ttl:     ttl,
		metrics: m,
		l:       l,
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
}

// cachedOutcome is the cache representation of a scoring.Outcome.
type cachedOutcome struct {
	Label         int        `json:"label"`
	Probabilities [2]float64 `json:"probabilities"`
	RawScore      float64    `json:"raw_score"`
	Synthesized   bool       `json:"synthesized"`
}

func (p *predictor) run(ctx context.Context, op string, v *Variant, rec features.Record, verdicts [2]string) (*models.PredictionResult, error) {
	start := p.now()
	defer func() { p.metrics.RecordLatency(op, p.now().Sub(start).Seconds()) }()

	vec, err := v.Assembler.Assemble(rec)
	if err != nil {
		return nil, p.fail(op, v, err)
	}

	key := cache.PredictionKey(v.Name, v.Pipeline, vec.Values)
	out, hit := p.lookup(ctx, key)
	if !hit {
		out, err = v.Adapter.Evaluate(ctx, vec)
		if err != nil {
			return nil, p.fail(op, v, err)
		}
		p.store(ctx, key, out)
	}

	scaled := v.Assembler.Scaling().Enabled()
	res := &models.PredictionResult{
		ID:                p.newID(),
		Model:             v.Name,
		ModelKind:         v.Adapter.Model().Kind(),
		Pipeline:          v.Pipeline,
		Label:             int(out.Label),
		Verdict:           verdicts[out.Label],
		Probabilities:     out.Probabilities,
		ProbabilitySource: models.ProbabilityFromModel,
		Confidence:        out.Probabilities[out.Label],
		RawScore:          out.RawScore,
		Features:          vec.Model(),
		Cached:            hit,
		Timestamp:         p.now().UTC(),
	}
	if out.Synthesized {
		res.ProbabilitySource = models.ProbabilitySynthesized
	}
	if v.Adapter.Model().RequiresScaling() && !scaled {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"model %s expects scaled input but no scaler is loaded; the prediction may be unreliable", v.Name))
		p.metrics.RecordScalingWarning(v.Name)
	}
	if !scaled && out.Probabilities[1] > HighConfidenceHint {
		res.Warnings = append(res.Warnings,
			"probability of class 1 is above 0.99 on unscaled input; check that the scaler asset is present")
	}

	p.metrics.RecordPrediction(v.Name, metrics.LabelString(res.Label))
	p.l.Debug("prediction",
		applogger.String("id", res.ID),
		applogger.String("model", v.Name),
		applogger.Int("label", res.Label),
		applogger.Float64("p1", res.Probabilities[1]),
		applogger.Bool("cached", hit),
		applogger.Int("warnings", len(res.Warnings)),
	)
	return res, nil
}

func (p *predictor) lookup(ctx context.Context, key string) (scoring.Outcome, bool) {
	b, ok, err := p.cache.GetBytes(ctx, key)
	if err != nil {
		p.l.Warn("prediction cache read failed", applogger.Error(err))
		return scoring.Outcome{}, false
	}
	if !ok {
		p.metrics.RecordCacheResult(false)
		return scoring.Outcome{}, false
	}
	var c cachedOutcome
	if err := json.Unmarshal(b, &c); err != nil || (c.Label != 0 && c.Label != 1) {
		p.l.Warn("prediction cache entry unreadable", applogger.String("key", key))
		return scoring.Outcome{}, false
	}
	p.metrics.RecordCacheResult(true)
	return scoring.Outcome{
		Label:         scoring.Label(c.Label),
		Probabilities: c.Probabilities,
		RawScore:      c.RawScore,
		Synthesized:   c.Synthesized,
	}, true
}

func (p *predictor) store(ctx context.Context, key string, out scoring.Outcome) {
	b, err := json.Marshal(cachedOutcome{
		Label:         int(out.Label),
		Probabilities: out.Probabilities,
		RawScore:      out.RawScore,
		Synthesized:   out.Synthesized,
	})
	if err != nil {
		return
	}
	if err := p.cache.SetBytes(ctx, key, b, p.ttl); err != nil {
		p.l.Warn("prediction cache write failed", applogger.Error(err))
	}
}

func (p *predictor) fail(op string, v *Variant, err error) error {
	kind := ErrorKind(err)
	p.metrics.RecordError(kind)
	p.l.Warn(op+" failed",
		applogger.String("model", v.Name),
		applogger.String("pipeline", v.Pipeline),
		applogger.String("kind", kind),
		applogger.Error(err),
	)
	return err
}

type nopMetrics struct{}

func (nopMetrics) RecordPrediction(string, string) {}
func (nopMetrics) RecordError(string)              {}
func (nopMetrics) RecordScalingWarning(string)     {}
func (nopMetrics) RecordCacheResult(bool)          {}
func (nopMetrics) RecordLatency(string, float64)   {}
