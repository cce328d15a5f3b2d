package usecase

import (
	"context"
	"errors"
	"fmt"

	"CreditLens/internal/domain/models"
	domrepo "CreditLens/internal/domain/repository"
	"CreditLens/internal/services/features"
	"CreditLens/internal/services/scoring"
	"CreditLens/pkg/config"
	applogger "CreditLens/pkg/logger"
)

// Variant is one selectable model with the assets of its pipeline. It is either
// ready to serve or carries the error that disabled it.
type Variant struct {
	Name      string
	File      string
	Pipeline  string
	Default   bool
	Adapter   *scoring.Adapter
	Assembler *features.Assembler
	Err       error
}

// Ready reports whether the variant can serve requests.
func (v *Variant) Ready() bool { return v.Err == nil }

// Info describes the variant for listings.
func (v *Variant) Info() models.ModelInfo {
	info := models.ModelInfo{
		Name:     v.Name,
		File:     v.File,
		Pipeline: v.Pipeline,
		Ready:    v.Ready(),
		Default:  v.Default,
	}
	if v.Err != nil {
		info.Error = v.Err.Error()
	}
	if v.Adapter != nil {
		m := v.Adapter.Model()
		info.Kind = m.Kind()
		info.Capability = v.Adapter.Capability().String()
		info.NumFeatures = m.NumFeatures()
		info.RequiresScaling = m.RequiresScaling()
	}
	if v.Assembler != nil {
		info.ScalingEnabled = v.Assembler.Scaling().Enabled()
	}
	return info
}

// Catalog holds every configured variant, loaded once at start-up and read-only after.
type Catalog struct {
	variants    []*Variant
	byName      map[string]*Variant
	defaultName string
	banknote    *Variant
}

// NewCatalog loads all assets named by cfg. It never fails as a whole: a variant whose
// assets cannot be loaded is kept with its error so the others keep serving.
func NewCatalog(ctx context.Context, cfg *config.Config, store domrepo.AssetStore, l *applogger.Logger) *Catalog {
	if l == nil {
		l = applogger.Nop()
	}
	ld := &catalogLoader{
		cfg:      cfg,
		store:    store,
		l:        l,
		encoders: make(map[string]encoderResult),
		scalers:  make(map[string]features.Scaling),
	}
	c := &Catalog{byName: make(map[string]*Variant), defaultName: cfg.Assets.DefaultModel}

	for _, mv := range cfg.Assets.Models {
		v := ld.loadLoan(ctx, mv)
		v.Default = mv.Name == c.defaultName
		c.variants = append(c.variants, v)
		c.byName[v.Name] = v
	}
	if cfg.Assets.BanknoteModel != "" {
		c.banknote = ld.loadBanknote(ctx, cfg.Assets.BanknoteModel)
	}

	ready := 0
	for _, v := range c.variants {
		if v.Ready() {
			ready++
		}
	}
	l.Info("model catalog loaded",
		applogger.Int("variants", len(c.variants)),
		applogger.Int("ready", ready),
		applogger.String("default", c.defaultName),
		applogger.Bool("banknote_ready", c.banknote != nil && c.banknote.Ready()),
	)
	return c
}

// Variant returns the named variant; an empty name selects the default.
func (c *Catalog) Variant(name string) (*Variant, error) {
	if name == "" {
		name = c.defaultName
	}
	v, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrModelNotFound, name)
	}
	if err := unavailable(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Banknote returns the banknote authentication variant.
func (c *Catalog) Banknote() (*Variant, error) {
	if c.banknote == nil {
		return nil, fmt.Errorf("%w: no banknote model configured", models.ErrAssetMissing)
	}
	if err := unavailable(c.banknote); err != nil {
		return nil, err
	}
	return c.banknote, nil
}

// Models lists the loan variants in configuration order.
func (c *Catalog) Models() []models.ModelInfo {
	out := make([]models.ModelInfo, 0, len(c.variants))
	for _, v := range c.variants {
		out = append(out, v.Info())
	}
	return out
}

// BanknoteInfo describes the banknote variant, if configured.
func (c *Catalog) BanknoteInfo() (models.ModelInfo, bool) {
	if c.banknote == nil {
		return models.ModelInfo{}, false
	}
	return c.banknote.Info(), true
}

// DefaultModel returns the name of the default loan variant.
func (c *Catalog) DefaultModel() string { return c.defaultName }

func unavailable(v *Variant) error {
	if v.Err == nil {
		return nil
	}
	if errors.Is(v.Err, models.ErrAssetMissing) {
		return fmt.Errorf("model %q unavailable: %w", v.Name, v.Err)
	}
	return fmt.Errorf("%w: model %q unavailable: %v", models.ErrAssetMissing, v.Name, v.Err)
}

type encoderResult struct {
	enc *features.OneHotEncoder
	err error
}

type catalogLoader struct {
	cfg      *config.Config
	store    domrepo.AssetStore
	l        *applogger.Logger
	encoders map[string]encoderResult
	scalers  map[string]features.Scaling
}

func (ld *catalogLoader) loadLoan(ctx context.Context, mv config.ModelVariant) *Variant {
	v := &Variant{Name: mv.Name, File: mv.File, Pipeline: mv.Pipeline}
	l := ld.l.With(applogger.String("model", mv.Name), applogger.String("pipeline", mv.Pipeline))

	schema, ok := features.SchemaFor(mv.Pipeline)
	if !ok {
		v.Err = fmt.Errorf("unknown pipeline %q", mv.Pipeline)
		l.Error("variant disabled", applogger.Error(v.Err))
		return v
	}

	enc, err := ld.encoder(ctx, ld.cfg.EncoderFile(mv))
	if err != nil {
		v.Err = err
		l.Error("variant disabled: encoder", applogger.Error(err))
		return v
	}
	scaling, err := ld.scaling(ctx, ld.cfg.ScalerFile(mv))
	if err != nil {
		v.Err = err
		l.Error("variant disabled: scaler", applogger.Error(err))
		return v
	}
	asm, err := features.NewAssembler(schema, enc, scaling)
	if err != nil {
		v.Err = err
		l.Error("variant disabled: assembler", applogger.Error(err))
		return v
	}
	v.Assembler = asm

	if err := ld.attachModel(ctx, v, l); err != nil {
		return v
	}
	l.Info("variant ready",
		applogger.String("kind", v.Adapter.Model().Kind()),
		applogger.String("capability", v.Adapter.Capability().String()),
		applogger.String("scaling", asm.Scaling().String()),
	)
	return v
}

func (ld *catalogLoader) loadBanknote(ctx context.Context, file string) *Variant {
	v := &Variant{Name: "banknote", File: file, Pipeline: features.PipelineBanknote}
	l := ld.l.With(applogger.String("model", v.Name), applogger.String("pipeline", v.Pipeline))

	asm, err := features.NewAssembler(features.BanknoteSchema(), nil, features.ScalingDisabled())
	if err != nil {
		v.Err = err
		return v
	}
	v.Assembler = asm
	if err := ld.attachModel(ctx, v, l); err != nil {
		return v
	}
	l.Info("variant ready", applogger.String("kind", v.Adapter.Model().Kind()))
	return v
}

func (ld *catalogLoader) attachModel(ctx context.Context, v *Variant, l *applogger.Logger) error {
	m, err := ld.store.LoadModel(ctx, v.File, scoring.Options{Name: v.Name, RemoteTimeout: ld.cfg.Remote.Timeout})
	if err != nil {
		v.Err = err
		l.Error("variant disabled: model", applogger.String("file", v.File), applogger.Error(err))
		return err
	}
	v.Adapter = scoring.NewAdapter(m)
	if m.NumFeatures() != v.Assembler.Width() {
		// served anyway; every request will fail the shape check
		l.Warn("model width differs from assembled width",
			applogger.Int("model_features", m.NumFeatures()),
			applogger.Int("assembled_features", v.Assembler.Width()),
		)
	}
	if m.RequiresScaling() && !v.Assembler.Scaling().Enabled() {
		l.Warn("model expects scaled input but scaling is disabled")
	}
	return nil
}

func (ld *catalogLoader) encoder(ctx context.Context, file string) (*features.OneHotEncoder, error) {
	if r, ok := ld.encoders[file]; ok {
		return r.enc, r.err
	}
	enc, err := ld.store.LoadEncoder(ctx, file)
	ld.encoders[file] = encoderResult{enc: enc, err: err}
	return enc, err
}

// scaling resolves the optional scaler once per file. A missing scaler disables
// scaling; a malformed one is an error.
func (ld *catalogLoader) scaling(ctx context.Context, file string) (features.Scaling, error) {
	if file == "" {
		return features.ScalingDisabled(), nil
	}
	if s, ok := ld.scalers[file]; ok {
		return s, nil
	}
	sc, err := ld.store.LoadScaler(ctx, file)
	switch {
	case errors.Is(err, models.ErrAssetMissing):
		ld.l.Warn("scaler not found, numeric features will not be scaled", applogger.String("file", file))
		ld.scalers[file] = features.ScalingDisabled()
	case err != nil:
		return features.Scaling{}, err
	default:
		ld.scalers[file] = features.ScalingEnabled(sc)
	}
	return ld.scalers[file], nil
}
