// Package score implements the Score Combiner (spec §4.8): it turns three
// field scores into one combined score using weights that adapt to which
// fields actually carry evidence.
package score

import (
	"strings"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/config"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

// Combiner holds the configured weight scenarios and the LCCN floor.
// Grounded on original_source default_matching.py's AdaptiveWeightingCombiner.
type Combiner struct {
	cfg *config.Config
}

// New builds a Combiner against cfg.
func New(cfg *config.Config) *Combiner {
	return &Combiner{cfg: cfg}
}

// Combine produces the final combined score for one candidate pair. hasLCCN
// reports whether this candidate was matched by LCCN rather than by
// similarity; per the fixed floor decided for spec §9 Open Question 2, an
// LCCN match is never scored below Thresholds.LCCNFloor regardless of the
// weighted field scores.
func (c *Combiner) Combine(titleScore, authorScore, publisherScore float64, marcPub, copyrightPub *pub.Publication, hasGenericTitle bool, hasLCCN bool) float64 {
	weights := c.weightsFor(marcPub, copyrightPub, hasGenericTitle)

	combined := titleScore*weights.Title + authorScore*weights.Author + publisherScore*weights.Publisher

	if hasLCCN && combined < c.cfg.Thresholds.LCCNFloor {
		combined = c.cfg.Thresholds.LCCNFloor
	}

	return combined
}

func (c *Combiner) weightsFor(marcPub, copyrightPub *pub.Publication, hasGenericTitle bool) config.ScoringWeights {
	missingFields := detectMissingFields(marcPub, copyrightPub)

	marcHasPublisher := hasText(marcPub.Publisher)
	copyrightHasPublisher := hasText(copyrightPub.Publisher) || hasText(copyrightPub.FullText)

	var original config.ScoringWeights
	if !marcHasPublisher && !copyrightHasPublisher {
		if hasGenericTitle {
			original = c.cfg.ScoringWeightsFor("generic_no_publisher")
		} else {
			original = c.cfg.ScoringWeightsFor("normal_no_publisher")
		}
	} else {
		if hasGenericTitle {
			original = c.cfg.ScoringWeightsFor("generic_with_publisher")
		} else {
			original = c.cfg.ScoringWeightsFor("normal_with_publisher")
		}
	}

	return redistributeWeights(original, missingFields)
}

// detectMissingFields reports which scored fields are genuinely absent (not
// merely poorly matched). Grounded on _detect_missing_fields.
func detectMissingFields(marcPub, copyrightPub *pub.Publication) map[string]bool {
	marcHasPublisher := hasText(marcPub.Publisher)
	copyrightHasPublisher := hasText(copyrightPub.Publisher) || hasText(copyrightPub.FullText)
	return map[string]bool{
		"publisher": !(marcHasPublisher && copyrightHasPublisher),
	}
}

// redistributeWeights moves the weight of missing fields proportionally onto
// the remaining fields, per _redistribute_weights.
func redistributeWeights(original config.ScoringWeights, missing map[string]bool) config.ScoringWeights {
	weights := map[string]float64{
		"title":     original.Title,
		"author":    original.Author,
		"publisher": original.Publisher,
	}

	missingWeight := 0.0
	for field, isMissing := range missing {
		if isMissing {
			missingWeight += weights[field]
		}
	}
	if missingWeight == 0 {
		return original
	}

	remainingFields := make([]string, 0, len(weights))
	remainingWeight := 0.0
	for field, w := range weights {
		if !missing[field] {
			remainingFields = append(remainingFields, field)
			remainingWeight += w
		}
	}
	if remainingWeight == 0 {
		return original
	}

	for _, field := range remainingFields {
		proportion := weights[field] / remainingWeight
		weights[field] += missingWeight * proportion
	}
	for field, isMissing := range missing {
		if isMissing {
			weights[field] = 0.0
		}
	}

	return config.ScoringWeights{Title: weights["title"], Author: weights["author"], Publisher: weights["publisher"]}
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}
