package export

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/EchoTools/scxFileTools/pkg/scx"
)

// Fingerprint returns the hex BLAKE3-256 digest of a decompressed payload.
// Two scenarios with equal fingerprints have identical bodies regardless of
// how their deflate streams were produced.
func Fingerprint(payload []byte) string {
	sum := blake3.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// ScenarioFingerprint encodes the payload of s and fingerprints it.
func ScenarioFingerprint(s *scx.Scenario) (string, error) {
	payload, err := s.Payload()
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return Fingerprint(payload), nil
}
