// Package lang implements the Language and Country Resolver (spec §4.2).
package lang

import (
	"strings"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

// marcLanguageMapping maps MARC 2- and 3-letter language variants to one of
// the five fixed processing languages. Grounded on original_source
// marc_utilities.py's MARC_LANGUAGE_MAPPING, ported field for field.
var marcLanguageMapping = map[string]pub.Language{
	"eng": pub.LangEng, "en": pub.LangEng,
	"fre": pub.LangFre, "fr": pub.LangFre, "fra": pub.LangFre,
	"ger": pub.LangGer, "de": pub.LangGer, "deu": pub.LangGer,
	"spa": pub.LangSpa, "es": pub.LangSpa, "esp": pub.LangSpa,
	"ita": pub.LangIta, "it": pub.LangIta, "ital": pub.LangIta,
}

// ResolveLanguage maps a raw MARC language tag to a processing language and
// reports how the mapping was determined.
func ResolveLanguage(tag string) (pub.Language, pub.LanguageDetectionStatus) {
	if tag == "" {
		return pub.LangEng, pub.LangFallbackEnglish
	}
	clean := strings.ToLower(strings.TrimSpace(tag))
	if clean == "" {
		return pub.LangEng, pub.LangFallbackEnglish
	}
	if mapped, ok := marcLanguageMapping[clean]; ok {
		return mapped, pub.LangDetected
	}
	return pub.LangEng, pub.LangUnknownCode
}

// usCountryCodes is the official MARC country-code set for US states and
// territories, ported from original_source marc_utilities.py's
// US_COUNTRY_CODES.
var usCountryCodes = map[string]struct{}{
	"aku": {}, "alu": {}, "aru": {}, "azu": {}, "cau": {}, "cou": {}, "ctu": {},
	"dcu": {}, "deu": {}, "flu": {}, "gau": {}, "hiu": {}, "iau": {}, "idu": {},
	"ilu": {}, "inu": {}, "ksu": {}, "kyu": {}, "lau": {}, "mau": {}, "mdu": {},
	"meu": {}, "miu": {}, "mnu": {}, "mou": {}, "msu": {}, "mtu": {}, "nbu": {},
	"ncu": {}, "ndu": {}, "nhu": {}, "nju": {}, "nmu": {}, "nvu": {}, "nyu": {},
	"ohu": {}, "oku": {}, "oru": {}, "pau": {}, "riu": {}, "scu": {}, "sdu": {},
	"tnu": {}, "txu": {}, "utu": {}, "vau": {}, "vtu": {}, "wau": {}, "wvu": {},
	"wyu": {}, "xxu": {},
}

// countryCodeRepairs handles mixed pipe/space patterns that indicate missing
// data, per original_source marc_utilities.py's _repair_country_code.
// "|||" is intentionally not in this table: it might be a valid malformed
// code rather than missing data.
var countryCodeRepairs = map[string]string{
	"| |": "",
	"|| ": "",
	" ||": "",
}

func repairCountryCode(code string) string {
	if code == "" {
		return code
	}
	if repaired, ok := countryCodeRepairs[code]; ok {
		return repaired
	}
	return code
}

// ResolveCountry extracts the country code at positions 15-17 of a MARC 008
// control field and classifies it as US, NonUS, or Unknown. Grounded on
// original_source marc_utilities.py's extract_country_from_marc_008.
func ResolveCountry(field008 string) (string, pub.CountryClassification) {
	if len(field008) < 18 {
		return "", pub.CountryUnknown
	}

	countryCode := strings.TrimSpace(field008[15:18])
	if countryCode == "" {
		return "", pub.CountryUnknown
	}

	countryCode = repairCountryCode(countryCode)
	if countryCode == "" {
		return "", pub.CountryUnknown
	}

	if !isValidCountryCodeFormat(countryCode) {
		return countryCode, pub.CountryUnknown
	}

	if _, ok := usCountryCodes[strings.ToLower(countryCode)]; ok {
		return countryCode, pub.CountryUS
	}
	return countryCode, pub.CountryNonUS
}

func isValidCountryCodeFormat(code string) bool {
	if len(code) < 1 || len(code) > 3 {
		return false
	}
	for _, r := range code {
		if !isAlpha(r) {
			return false
		}
		switch r {
		case '|', '-', '/':
			return false
		}
	}
	return true
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
