package scoring

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	xhttp "CreditLens/pkg/http"
)

// Options are shared by all decoders.
type Options struct {
	// Name is used when the asset does not declare one.
	Name string
	// RemoteTimeout bounds a single remote inference request.
	RemoteTimeout time.Duration
	// Client overrides the HTTP client of remote models.
	Client *xhttp.Client
}

func (o Options) httpClient() *xhttp.Client {
	if o.Client != nil {
		return o.Client
	}
	timeout := o.RemoteTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return xhttp.NewClient(xhttp.WithTimeout(timeout))
}

// Decoder builds a model from its JSON asset.
type Decoder func(data []byte, opts Options) (Model, error)

var (
	mu       sync.RWMutex
	decoders = map[string]Decoder{
		KindLogisticRegression: decodeLogistic,
		KindLinearRegression:   decodeLinear,
		KindRandomForest:       decodeForest,
		KindGradientBoosting:   decodeBoosting,
		KindRemote:             decodeRemote,
	}
)

// Register adds or replaces the decoder for kind.
func Register(kind string, d Decoder) {
	mu.Lock()
	defer mu.Unlock()
	decoders[kind] = d
}

// Kinds lists the registered model kinds.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(decoders))
	for k := range decoders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Decode reads the "kind" field of a model asset and hands it to the matching decoder.
func Decode(data []byte, opts Options) (Model, error) {
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if head.Kind == "" {
		return nil, fmt.Errorf("decode model: missing kind")
	}
	mu.RLock()
	d, ok := decoders[head.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("decode model: unknown kind %q", head.Kind)
	}
	return d(data, opts)
}
