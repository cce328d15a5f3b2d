package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"CreditLens/internal/domain/models"
	"CreditLens/internal/services/features"
	"CreditLens/internal/services/scoring"
	applogger "CreditLens/pkg/logger"
)

// FileAssetStore implements AssetStore over JSON files in a directory.
type FileAssetStore struct {
	dir string
	l   *applogger.Logger
}

func NewFileAssetStore(dir string) *FileAssetStore {
	return &FileAssetStore{dir: dir}
}

// SetLogger injects a structured logger.
func (s *FileAssetStore) SetLogger(l *applogger.Logger) { s.l = l }

// Dir returns the asset directory.
func (s *FileAssetStore) Dir() string { return s.dir }

func (s *FileAssetStore) read(file string) ([]byte, error) {
	if file == "" {
		return nil, fmt.Errorf("%w: no file configured", models.ErrAssetMissing)
	}
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, file)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", models.ErrAssetMissing, path)
		}
		return nil, fmt.Errorf("read asset %s: %w", path, err)
	}
	if s.l != nil {
		s.l.Debug("asset read", applogger.String("path", path), applogger.Int("bytes", len(b)))
	}
	return b, nil
}

func (s *FileAssetStore) LoadModel(_ context.Context, file string, opts scoring.Options) (scoring.Model, error) {
	b, err := s.read(file)
	if err != nil {
		return nil, err
	}
	m, err := scoring.Decode(b, opts)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", file, err)
	}
	return m, nil
}

func (s *FileAssetStore) LoadEncoder(_ context.Context, file string) (*features.OneHotEncoder, error) {
	b, err := s.read(file)
	if err != nil {
		return nil, err
	}
	var enc features.OneHotEncoder
	if err := json.Unmarshal(b, &enc); err != nil {
		return nil, fmt.Errorf("decode encoder %s: %w", file, err)
	}
	if err := enc.Init(); err != nil {
		return nil, fmt.Errorf("load encoder %s: %w", file, err)
	}
	return &enc, nil
}

func (s *FileAssetStore) LoadScaler(_ context.Context, file string) (*features.Scaler, error) {
	b, err := s.read(file)
	if err != nil {
		return nil, err
	}
	var sc features.Scaler
	if err := json.Unmarshal(b, &sc); err != nil {
		return nil, fmt.Errorf("decode scaler %s: %w", file, err)
	}
	if err := sc.Init(); err != nil {
		return nil, fmt.Errorf("load scaler %s: %w", file, err)
	}
	return &sc, nil
}
