// Package status implements the Status Classifier (spec §4.11): a pure
// function from match outcomes, country classification, and year to a
// copyright-status label.
package status

import (
	"github.com/pulibrary/marc-pd-tool-sub003/internal/config"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

// Label is one of the fixed outcome labels named in spec §4.11.
type Label string

const (
	PDPreThreshold           Label = "pd_pre_threshold"
	PDUSNoRenewal            Label = "pd_us_no_renewal"
	PDUSRegNoRenewal         Label = "pd_us_reg_no_renewal"
	InCopyright              Label = "in_copyright"
	UndeterminedUSNoData     Label = "undetermined_us_no_data"
	UndeterminedCountryUnknown Label = "undetermined_country_unknown"
	ResearchRequired         Label = "research_required"
)

// Classify derives the copyright-status label. It consults no external
// state: given the same inputs it always returns the same label.
func Classify(registrationMatch, renewalMatch *pub.MatchResult, country pub.CountryClassification, year int, cfg *config.Config) Label {
	if year != 0 && year < cfg.PDCutoffYear {
		return PDPreThreshold
	}

	switch country {
	case pub.CountryUS:
		return classifyUS(registrationMatch, renewalMatch, year, cfg)
	case pub.CountryNonUS:
		if renewalMatch != nil {
			return InCopyright
		}
		return ResearchRequired
	default:
		return UndeterminedCountryUnknown
	}
}

func classifyUS(registrationMatch, renewalMatch *pub.MatchResult, year int, cfg *config.Config) Label {
	if registrationMatch == nil {
		return UndeterminedUSNoData
	}
	if renewalMatch != nil {
		return InCopyright
	}

	inRenewalWindow := year >= cfg.RenewalRequiredWindowStart && year <= cfg.RenewalRequiredWindowEnd
	if inRenewalWindow {
		return PDUSNoRenewal
	}
	return PDUSRegNoRenewal
}
