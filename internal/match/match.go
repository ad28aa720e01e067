// Package match implements the Matching Engine (spec §4.9): for each input
// record, it retrieves candidates from an Index, scores them, and tracks the
// single best match.
package match

import (
	"github.com/pulibrary/marc-pd-tool-sub003/internal/config"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/derived"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/generic"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/index"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/score"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/similarity"
)

// Thresholds carries the tunables find_best reads, mirroring spec §4.9's
// contract so callers can override per-run without touching *config.Config.
type Thresholds struct {
	Title            float64
	Author           float64
	Publisher        float64
	YearTolerance    int
	EarlyExitTitle   float64
	EarlyExitAuthor  float64
	ScoreEverything  bool
}

// ThresholdsFrom builds Thresholds from a Config.
func ThresholdsFrom(cfg *config.Config) Thresholds {
	return Thresholds{
		Title:           cfg.Thresholds.Title,
		Author:          cfg.Thresholds.Author,
		Publisher:       cfg.Thresholds.Publisher,
		YearTolerance:   cfg.Thresholds.YearTolerance,
		EarlyExitTitle:  cfg.Thresholds.EarlyExitTitle,
		EarlyExitAuthor: cfg.Thresholds.EarlyExitAuthor,
		ScoreEverything: cfg.Analysis.ScoreEverything,
	}
}

// Engine ties together an Index, a Similarity Calculator, a Score Combiner,
// and the Generic-Title and Derived-Work detectors. Grounded on
// original_source default_matching.py's DefaultMatchingEngine.
type Engine struct {
	idx        *index.Index
	sim        *similarity.Calculator
	combiner   *score.Combiner
	genericDet *generic.Detector
	derivedDet *derived.Detector
}

// New builds an Engine. genericDet and derivedDet may be nil to disable
// those signals (e.g. during unit tests).
func New(idx *index.Index, sim *similarity.Calculator, combiner *score.Combiner, genericDet *generic.Detector, derivedDet *derived.Detector) *Engine {
	return &Engine{idx: idx, sim: sim, combiner: combiner, genericDet: genericDet, derivedDet: derivedDet}
}

// FindBest finds the best matching reference publication for query, or nil
// if none clears the gates (and score_everything is off). Grounded on
// find_best_match, with the LCCN short-circuit from spec §4.9 step 1 applied
// via the Index itself (index.Candidates already returns the LCCN set alone
// when a direct hit exists).
func (e *Engine) FindBest(query *pub.Publication, th Thresholds) *pub.MatchResult {
	if query.Title == "" {
		return nil
	}

	candidateIDs := e.idx.Candidates(query, th.YearTolerance)
	if len(candidateIDs) == 0 {
		return nil
	}

	matchedViaLCCN := query.NormalizedLCCN != "" && lccnShortCircuit(e.idx, query, candidateIDs)

	var best *pub.MatchResult
	bestScore := 0.0

	for id := range candidateIDs {
		candidate := e.idx.Get(id)
		if candidate.Title == "" {
			continue
		}

		if query.Year != 0 && candidate.Year != 0 {
			diff := query.Year - candidate.Year
			if diff < 0 {
				diff = -diff
			}
			if diff > th.YearTolerance {
				continue
			}
		}

		titleScore := e.sim.Title(query.FullTitle(), candidate.Title, query.LanguageCode)
		if titleScore < th.Title && !th.ScoreEverything {
			continue
		}

		authorScore245c := 0.0
		if query.Author != "" && candidate.Author != "" {
			authorScore245c = e.sim.Author(query.Author, candidate.Author)
		}
		authorScore1xx := 0.0
		if query.MainAuthor != "" && candidate.Author != "" {
			authorScore1xx = e.sim.Author(query.MainAuthor, candidate.Author)
		}
		authorScore := authorScore245c
		if authorScore1xx > authorScore {
			authorScore = authorScore1xx
		}

		publisherScore := 0.0
		if query.Publisher != "" {
			fullText := ""
			if candidate.Source == pub.SourceRenewal {
				fullText = candidate.FullText
			}
			publisherScore = e.sim.Publisher(query.Publisher, candidate.Publisher, fullText)
		}

		hasGenericTitle := e.isGenericEither(query, candidate)

		combined := e.combiner.Combine(titleScore, authorScore, publisherScore, query, candidate, hasGenericTitle, matchedViaLCCN && candidate.NormalizedLCCN == query.NormalizedLCCN)

		derivedPenaltyApplied := false
		if e.derivedDet != nil {
			marcInfo, refInfo := e.derivedDet.Detect(query.Title, candidate.Title, query.LanguageCode)
			penalized, adjusted := derived.ShouldPenalize(marcInfo, refInfo, combined)
			if penalized {
				combined = adjusted
				derivedPenaltyApplied = true
			}
		}

		hasAuthorData := (query.Author != "" && candidate.Author != "") || (query.MainAuthor != "" && candidate.Author != "")
		authorThresholdMet := !hasAuthorData || authorScore >= th.Author
		publisherThresholdMet := query.Publisher == "" || publisherScore >= th.Publisher

		passesGates := authorThresholdMet && publisherThresholdMet
		if !passesGates && !th.ScoreEverything {
			continue
		}

		if combined > bestScore {
			bestScore = combined
			best = &pub.MatchResult{
				ReferenceID:        candidate.ID,
				MatchedTitle:       candidate.Title,
				MatchedAuthor:      candidate.Author,
				MatchedPublisher:   candidate.Publisher,
				ReferenceYear:      candidate.Year,
				YearDifference:     query.Year - candidate.Year,
				TitleScore:         titleScore,
				AuthorScore:        authorScore,
				PublisherScore:     publisherScore,
				CombinedScore:      combined,
				HasGenericTitle:    hasGenericTitle,
				DerivedWorkPenalty: derivedPenaltyApplied,
				MatchedViaLCCN:     matchedViaLCCN && candidate.NormalizedLCCN == query.NormalizedLCCN,
			}
		}

		if titleScore >= th.EarlyExitTitle && hasAuthorData && authorScore >= th.EarlyExitAuthor {
			break
		}
	}

	return best
}

func (e *Engine) isGenericEither(query, candidate *pub.Publication) bool {
	if e.genericDet == nil {
		return false
	}
	return e.genericDet.IsGeneric(query.Title, query.LanguageCode) || e.genericDet.IsGeneric(candidate.Title, candidate.LanguageCode)
}

// lccnShortCircuit reports whether the candidate set was produced by the
// Index's LCCN short-circuit (every candidate already shares query's LCCN).
func lccnShortCircuit(idx *index.Index, query *pub.Publication, candidateIDs map[int]struct{}) bool {
	for id := range candidateIDs {
		if idx.Get(id).NormalizedLCCN != query.NormalizedLCCN {
			return false
		}
	}
	return len(candidateIDs) > 0
}
