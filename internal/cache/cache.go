package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/magnusgp/fermatter/internal/model"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// RequestKey generates a cache key from an analyze request. Requests that
// differ in text, mode, scope, goal, snapshots or declared sources must
// produce distinct keys.
func RequestKey(req model.AnalyzeRequest) string {
	// json.Marshal on a struct is deterministic (fields in declaration order).
	payload, err := json.Marshal(req)
	if err != nil {
		payload = []byte(req.Text)
	}
	hash := sha256.Sum256(payload)
	return "fermatter:v1:" + hex.EncodeToString(hash[:])
}
