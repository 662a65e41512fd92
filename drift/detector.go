package drift

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/use-agent/leekduck/models"
)

// Detector compares listing fingerprints against per-kind baselines.
type Detector struct {
	threshold int
	baselines map[models.Kind]uint64
}

// NewDetector parses hex baselines keyed by kind name. Unknown kinds and
// malformed fingerprints are an error so a typo in the environment does
// not silently disable detection.
func NewDetector(threshold int, baselines map[string]string) (*Detector, error) {
	d := &Detector{threshold: threshold, baselines: make(map[models.Kind]uint64, len(baselines))}
	for name, hex := range baselines {
		kind, err := models.ParseKind(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("drift: baseline %q: %w", name, err)
		}
		fp, err := ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("drift: baseline %q: %w", name, err)
		}
		d.baselines[kind] = fp
	}
	return d, nil
}

// Check reports how far fp is from the kind's baseline. Without a baseline
// the report carries only the fingerprint, ready to be pinned.
func (d *Detector) Check(kind models.Kind, fp uint64) *models.DriftReport {
	rep := &models.DriftReport{Fingerprint: FormatHex(fp)}
	base, ok := d.baselines[kind]
	if !ok {
		return rep
	}
	rep.Baseline = FormatHex(base)
	rep.Distance = Distance(fp, base)
	rep.Drifted = rep.Distance > d.threshold
	if rep.Drifted {
		slog.Warn("listing layout drifted",
			"kind", kind,
			"distance", rep.Distance,
			"threshold", d.threshold,
			"fingerprint", rep.Fingerprint,
		)
	}
	return rep
}

// FormatHex renders a fingerprint as 16 hex digits.
func FormatHex(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}

// ParseHex parses a fingerprint rendered by FormatHex.
func ParseHex(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(s), "0x"), 16, 64)
}
