package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	xhttp "CreditLens/pkg/http"
)

const KindRemote = "remote"

// RemoteModel delegates inference to an HTTP model server. Each call issues exactly
// one POST. Failures are returned to the caller and never retried.
type RemoteModel struct {
	meta
	URL                 string `json:"url"`
	Path                string `json:"path"`
	SupportsProbability bool   `json:"supports_probability"`

	client *xhttp.Client
}

// RemoteProbabilityModel is a RemoteModel whose server also returns class probabilities.
type RemoteProbabilityModel struct {
	*RemoteModel
}

type remoteRequest struct {
	Model   string    `json:"model"`
	Columns []string  `json:"columns,omitempty"`
	Inputs  []float64 `json:"inputs"`
}

type remoteResponse struct {
	Prediction    *float64  `json:"prediction"`
	Probabilities []float64 `json:"probabilities,omitempty"`
}

func decodeRemote(data []byte, opts Options) (Model, error) {
	var m RemoteModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KindRemote, err)
	}
	if m.URL == "" {
		return nil, fmt.Errorf("%s: url is required", KindRemote)
	}
	if err := m.resolve(opts.Name, 0); err != nil {
		return nil, err
	}
	if m.Path == "" {
		m.Path = "/predict"
	}
	m.URL = strings.TrimRight(m.URL, "/")
	m.client = opts.httpClient()

	if m.SupportsProbability {
		return &RemoteProbabilityModel{RemoteModel: &m}, nil
	}
	return &m, nil
}

func (m *RemoteModel) call(ctx context.Context, x []float64) (*remoteResponse, error) {
	if err := m.checkWidth(x); err != nil {
		return nil, err
	}
	var resp remoteResponse
	err := m.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: http.MethodPost,
		URL:    m.URL + m.Path,
		Body:   remoteRequest{Model: m.ModelName, Columns: m.Features, Inputs: x},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("remote model %q: %w", m.ModelName, err)
	}
	if resp.Prediction == nil {
		return nil, fmt.Errorf("remote model %q: response has no prediction", m.ModelName)
	}
	return &resp, nil
}

func (m *RemoteModel) Predict(ctx context.Context, x []float64) (float64, error) {
	resp, err := m.call(ctx, x)
	if err != nil {
		return 0, err
	}
	return *resp.Prediction, nil
}

func (m *RemoteProbabilityModel) PredictProba(ctx context.Context, x []float64) ([]float64, error) {
	_, p, err := m.Evaluate(ctx, x)
	return p, err
}

// Evaluate reads class and probabilities from one response, so both describe the
// same inference.
func (m *RemoteProbabilityModel) Evaluate(ctx context.Context, x []float64) (float64, []float64, error) {
	resp, err := m.call(ctx, x)
	if err != nil {
		return 0, nil, err
	}
	if len(resp.Probabilities) == 0 {
		return 0, nil, fmt.Errorf("remote model %q: response has no probabilities", m.ModelName)
	}
	return *resp.Prediction, resp.Probabilities, nil
}
