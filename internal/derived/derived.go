// Package derived implements the Derived-Work Detector (spec §4.5): it
// flags titles that are indexes, bibliographies, or supplements of other
// works, used to penalize cross-type matches.
package derived

import (
	"regexp"
	"strings"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/textnorm"
)

// Info describes whether a title appears to be a derived work.
type Info struct {
	IsDerived      bool
	PatternMatched string
	Confidence     float64
	LanguageHint   pub.Language
}

type pattern struct {
	re   *regexp.Regexp
	conf float64
	name string
}

// Detector holds the compiled per-language pattern sets. Grounded field for
// field on original_source derived_work_detector.py's DerivedWorkDetector.
type Detector struct {
	patterns map[pub.Language][]pattern
}

func compile(defs [][3]interface{}) []pattern {
	out := make([]pattern, len(defs))
	for i, d := range defs {
		out[i] = pattern{
			re:   regexp.MustCompile("(?i)" + d[0].(string)),
			conf: d[1].(float64),
			name: d[2].(string),
		}
	}
	return out
}

// New builds a Detector with the fixed pattern sets for eng/fre/ger/spa/ita.
func New() *Detector {
	english := [][3]interface{}{
		{`^index\s+(to|of|for)\s+`, 0.95, "index"},
		{`^bibliography\s+(of|for|on)\s+`, 0.95, "bibliography"},
		{`^supplement\s+(to|for)\s+`, 0.9, "supplement"},
		{`^guide\s+(to|for)\s+`, 0.8, "guide"},
		{`^handbook\s+(of|for|on)\s+`, 0.8, "handbook"},
		{`^companion\s+(to|for)\s+`, 0.85, "companion"},
		{`^introduction\s+to\s+`, 0.7, "introduction"},
		{`^abstracts?\s+(of|from)\s+`, 0.9, "abstract"},
		{`^digest\s+(of|from)\s+`, 0.85, "digest"},
		{`^concordance\s+(to|of)\s+`, 0.95, "concordance"},
		{`^selected\s+(readings?|works?|papers?)\s+(from|of)\s+`, 0.8, "selection"},
		{`^excerpts?\s+(from|of)\s+`, 0.85, "excerpt"},
		{`\s+index$`, 0.9, "index_suffix"},
		{`\s+bibliography$`, 0.9, "bibliography_suffix"},
		{`\s+supplement$`, 0.85, "supplement_suffix"},
	}
	french := [][3]interface{}{
		{`^index\s+(de|des|du|pour)\s+`, 0.95, "index"},
		{`^bibliographie\s+(de|des|du|sur)\s+`, 0.95, "bibliographie"},
		{`^supplement\s+(au?|de|du|pour)\s+`, 0.9, "supplement"},
		{`^guide\s+(de|des|du|pour)\s+`, 0.8, "guide"},
		{`^manuel\s+(de|des|du)\s+`, 0.8, "manuel"},
		{`^introduction\s+a\s+`, 0.7, "introduction"},
		{`^abrege\s+(de|des|du)\s+`, 0.85, "abrege"},
		{`^extraits?\s+(de|des|du)\s+`, 0.85, "extrait"},
		{`^concordance\s+(de|des|du)\s+`, 0.95, "concordance"},
		{`\s+index$`, 0.9, "index_suffix"},
		{`\s+bibliographie$`, 0.9, "bibliographie_suffix"},
	}
	german := [][3]interface{}{
		{`^index\s+(zu|von|fur)\s+`, 0.95, "index"},
		{`^register\s+(zu|von|fur)\s+`, 0.95, "register"},
		{`^bibliographie\s+(zu|von|uber)\s+`, 0.95, "bibliographie"},
		{`^erganzung\s+(zu|zur|zum|von)\s+`, 0.9, "ergaenzung"},
		{`^nachtrag\s+(zu|zur|zum|von)\s+`, 0.9, "nachtrag"},
		{`^handbuch\s+(der|des|zu|zur|zum|uber)\s+`, 0.8, "handbuch"},
		{`^einfuhrung\s+in\s+`, 0.7, "einfuehrung"},
		{`^auszuge?\s+(aus|von)\s+`, 0.85, "auszug"},
		{`^konkordanz\s+(zu|zur|zum|von)\s+`, 0.95, "konkordanz"},
	}
	spanish := [][3]interface{}{
		{`^indice\s+(de|del|para)\s+`, 0.95, "indice"},
		{`^bibliografia\s+(de|del|sobre)\s+`, 0.95, "bibliografia"},
		{`^suplemento\s+(de|del|al?|para)\s+`, 0.9, "suplemento"},
		{`^guia\s+(de|del|para)\s+`, 0.8, "guia"},
		{`^manual\s+(de|del)\s+`, 0.8, "manual"},
		{`^introduccion\s+a\s+`, 0.7, "introduccion"},
		{`^extractos?\s+(de|del)\s+`, 0.85, "extracto"},
		{`^concordancia\s+(de|del)\s+`, 0.95, "concordancia"},
	}
	italian := [][3]interface{}{
		{`^indice\s+(di|del|per)\s+`, 0.95, "indice"},
		{`^bibliografia\s+(di|del|su)\s+`, 0.95, "bibliografia"},
		{`^supplemento\s+(di|del|al?|per)\s+`, 0.9, "supplemento"},
		{`^guida\s+(di|del|per|a)\s+`, 0.8, "guida"},
		{`^manuale\s+(di|del)\s+`, 0.8, "manuale"},
		{`^introduzione\s+a\s+`, 0.7, "introduzione"},
		{`^estratti?\s+(da|di|del)\s+`, 0.85, "estratto"},
		{`^concordanza\s+(di|del)\s+`, 0.95, "concordanza"},
	}

	return &Detector{patterns: map[pub.Language][]pattern{
		pub.LangEng: compile(english),
		pub.LangFre: compile(french),
		pub.LangGer: compile(german),
		pub.LangSpa: compile(spanish),
		pub.LangIta: compile(italian),
	}}
}

// Detect checks both the MARC and reference titles for derived-work
// patterns in the given language.
func (d *Detector) Detect(marcTitle, referenceTitle string, language pub.Language) (Info, Info) {
	return d.checkSingle(marcTitle, language), d.checkSingle(referenceTitle, language)
}

func (d *Detector) checkSingle(title string, language pub.Language) Info {
	if title == "" {
		return Info{}
	}

	normalized := strings.ToLower(strings.TrimSpace(textnorm.AsciiFold(title)))

	langPatterns, ok := d.patterns[language]
	if !ok {
		langPatterns = d.patterns[pub.LangEng]
	}

	best := Info{}
	for _, p := range langPatterns {
		if p.re.MatchString(normalized) && p.conf > best.Confidence {
			best = Info{IsDerived: true, PatternMatched: p.name, Confidence: p.conf, LanguageHint: language}
		}
	}

	if language != pub.LangEng {
		for _, p := range d.patterns[pub.LangEng] {
			if p.re.MatchString(normalized) {
				adjusted := p.conf * 0.9
				if adjusted > best.Confidence {
					best = Info{IsDerived: true, PatternMatched: p.name + "_eng", Confidence: adjusted, LanguageHint: pub.LangEng}
				}
			}
		}
	}

	return best
}

// ShouldPenalize determines whether a match should be penalized for
// derived-work patterns and returns the adjusted score. Grounded on
// original_source derived_work_detector.py's should_penalize_match.
func ShouldPenalize(marcInfo, refInfo Info, baseScore float64) (bool, float64) {
	if !marcInfo.IsDerived && !refInfo.IsDerived {
		return false, baseScore
	}

	if marcInfo.IsDerived && refInfo.IsDerived {
		avgConfidence := (marcInfo.Confidence + refInfo.Confidence) / 2
		if marcInfo.PatternMatched == refInfo.PatternMatched {
			return true, baseScore * (1.0 - avgConfidence*0.1)
		}
		return true, baseScore * (1.0 - avgConfidence*0.3)
	}

	if marcInfo.IsDerived {
		return true, baseScore * (1.0 - marcInfo.Confidence*0.5)
	}
	return true, baseScore * (1.0 - refInfo.Confidence*0.5)
}

// PenaltyReason returns a human-readable explanation of the penalty applied,
// matching original_source's get_penalty_reason.
func PenaltyReason(marcInfo, refInfo Info) string {
	if !marcInfo.IsDerived && !refInfo.IsDerived {
		return "no derived work detected"
	}
	if marcInfo.IsDerived && refInfo.IsDerived {
		if marcInfo.PatternMatched == refInfo.PatternMatched {
			return "both are " + marcInfo.PatternMatched + " works"
		}
		return "marc is " + marcInfo.PatternMatched + ", reference is " + refInfo.PatternMatched
	}
	if marcInfo.IsDerived {
		return "marc appears to be " + marcInfo.PatternMatched
	}
	return "reference appears to be " + refInfo.PatternMatched
}
