// Package pub defines the universal bibliographic record shared by every
// downstream component: the indexer, the similarity calculator, the matching
// engine, and the status classifier all operate on pub.Publication values.
package pub

// Source identifies which corpus a Publication came from.
type Source string

const (
	SourceInput        Source = "input"
	SourceRegistration Source = "registration"
	SourceRenewal      Source = "renewal"
)

// CountryClassification is the outcome of resolving a raw MARC country code.
type CountryClassification string

const (
	CountryUS      CountryClassification = "us"
	CountryNonUS   CountryClassification = "non_us"
	CountryUnknown CountryClassification = "unknown"
)

// Language is one of the fixed processing languages the rest of the system
// understands; everything else falls back to Eng.
type Language string

const (
	LangEng Language = "eng"
	LangFre Language = "fre"
	LangGer Language = "ger"
	LangSpa Language = "spa"
	LangIta Language = "ita"
)

// LanguageDetectionStatus records how a Language was arrived at.
type LanguageDetectionStatus string

const (
	LangDetected        LanguageDetectionStatus = "detected"
	LangFallbackEnglish LanguageDetectionStatus = "fallback_english"
	LangUnknownCode     LanguageDetectionStatus = "unknown_code"
)

// Publication is the universal record described in spec §3. It is immutable
// after ingestion except for the year back-fill (extracted from PubDate when
// Year is absent) and match attachment, both of which happen exactly once.
type Publication struct {
	// Identity
	ID             string
	Source         Source
	NormalizedLCCN string // empty if the record has no LCCN

	// Content, as transcribed
	Title        string
	PartNumber   string
	PartName     string
	Author       string // transcribed author (e.g. MARC 245$c)
	MainAuthor   string // heading form (e.g. MARC 1xx)
	Publisher    string
	Place        string
	PubDate      string // free text
	Year         int    // 0 means absent
	FullText     string // renewal records only: raw entry blob
	RawLCCN      string
	RawCountry   string // raw 3-char MARC country code
	RawLanguage  string // raw MARC language tag

	// Classification inputs, derived once at ingestion
	Country         CountryClassification
	LanguageCode    Language
	LangStatus      LanguageDetectionStatus

	// MatchResult attachments, at most one per reference source
	RegistrationMatch *MatchResult
	RenewalMatch      *MatchResult
}

// FullTitle concatenates title and part fields the way registration records
// do (volume text folded into the title); renewal records never concatenate
// their part fields into the title, per spec §6.
func (p *Publication) FullTitle() string {
	t := p.Title
	if p.Source == SourceRenewal {
		return t
	}
	if p.PartNumber != "" {
		t += " " + p.PartNumber
	}
	if p.PartName != "" {
		t += " " + p.PartName
	}
	return t
}

// HasPublisherData reports whether this side of a comparison can contribute
// publisher evidence at all (a direct publisher string, or for renewals, a
// full_text blob a publisher name might be extracted from).
func (p *Publication) HasPublisherData() bool {
	return p.Publisher != "" || p.FullText != ""
}

// MatchResult is attached to an input Publication at most once per reference
// source. It carries a snapshot of the matched reference record's needed
// fields rather than a back-pointer, per spec §9 (no cyclic references).
type MatchResult struct {
	ReferenceID        string
	MatchedTitle       string
	MatchedAuthor      string
	MatchedPublisher   string
	ReferenceYear      int
	YearDifference     int
	TitleScore         float64
	AuthorScore        float64
	PublisherScore     float64
	CombinedScore      float64
	HasGenericTitle    bool
	DerivedWorkPenalty bool
	MatchedViaLCCN     bool
	ReasonCodes        []string
}
