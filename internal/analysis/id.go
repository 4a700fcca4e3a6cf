package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/magnusgp/fermatter/internal/model"
)

// observationID derives a stable id from an observation's content and
// position. Repeated analysis of identical input yields identical ids,
// so the UI can track a finding across polls.
func observationID(obs model.Observation) string {
	key := fmt.Sprintf("%s|%d|%s|%s", obs.Type, obs.Paragraph, obs.AnchorText, obs.Title)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:8]
}
