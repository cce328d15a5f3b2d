package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"CreditLens/internal/services/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func remoteAsset(url string, proba bool) []byte {
	return []byte(fmt.Sprintf(`{"kind":"remote","name":"served","url":%q,"supports_probability":%t,"features":["a","b"]}`, url+"/", proba))
}

func TestRemoteProbabilityModel(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req remoteRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "served", req.Model)
		assert.Equal(t, []string{"a", "b"}, req.Columns)
		assert.Equal(t, []float64{1, 2}, req.Inputs)

		_, _ = w.Write([]byte(`{"prediction": 1, "probabilities": [0.1, 0.9]}`))
	}))
	defer srv.Close()

	m, err := Decode(remoteAsset(srv.URL, true), Options{RemoteTimeout: time.Second})
	require.NoError(t, err)
	a := NewAdapter(m)
	require.Equal(t, SupportsProbability, a.Capability())

	out, err := a.Evaluate(context.Background(), vec2("a", "b", 1, 2))
	require.NoError(t, err)
	assert.Equal(t, LabelPositive, out.Label)
	assert.InDelta(t, 0.9, out.Probabilities[1], 1e-12)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestRemoteEvaluateUsesOneResponse(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			_, _ = w.Write([]byte(`{"prediction": 0, "probabilities": [0.7, 0.3]}`))
			return
		}
		_, _ = w.Write([]byte(`{"prediction": 1, "probabilities": [0.05, 0.95]}`))
	}))
	defer srv.Close()

	m, err := Decode(remoteAsset(srv.URL, true), Options{})
	require.NoError(t, err)

	out, err := NewAdapter(m).Evaluate(context.Background(), vec2("a", "b", 1, 2))
	require.NoError(t, err)
	assert.Equal(t, LabelNegative, out.Label)
	assert.InDelta(t, 0.3, out.Probabilities[1], 1e-12)
	assert.InDelta(t, 0.3, out.RawScore, 1e-12)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestRemoteProbabilitiesRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"prediction": 1}`))
	}))
	defer srv.Close()

	m, err := Decode(remoteAsset(srv.URL, true), Options{})
	require.NoError(t, err)
	_, err = NewAdapter(m).Evaluate(context.Background(), vec2("a", "b", 1, 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no probabilities")
}

func TestRemoteScoreOnlyModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"prediction": 0.3}`))
	}))
	defer srv.Close()

	m, err := Decode(remoteAsset(srv.URL, false), Options{})
	require.NoError(t, err)
	a := NewAdapter(m)
	require.Equal(t, ScoreOnly, a.Capability())

	out, err := a.Evaluate(context.Background(), vec2("a", "b", 0, 0))
	require.NoError(t, err)
	assert.Equal(t, LabelNegative, out.Label)
	assert.True(t, out.Synthesized)
	assert.InDelta(t, 0.3, out.Probabilities[1], 1e-12)
}

func TestRemoteFailureIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	m, err := Decode(remoteAsset(srv.URL, false), Options{})
	require.NoError(t, err)
	_, err = NewAdapter(m).Classify(context.Background(), vec2("a", "b", 0, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestRemoteMissingPrediction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	m, err := Decode(remoteAsset(srv.URL, false), Options{})
	require.NoError(t, err)
	_, err = m.Predict(context.Background(), []float64{0, 0})
	assert.Error(t, err)
}

func vec2(c0, c1 string, v0, v1 float64) features.Vector {
	return features.Vector{Columns: []string{c0, c1}, Values: []float64{v0, v1}}
}
