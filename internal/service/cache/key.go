package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// PredictionKey hashes everything a prediction depends on. Identical inputs always
// produce identical keys.
func PredictionKey(model, pipeline string, values []float64) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(pipeline))
	h.Write([]byte{0})
	var buf [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return "prediction:" + hex.EncodeToString(h.Sum(nil))
}
