package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/batch"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

var csvHeader = []string{
	"id", "title", "author", "publisher", "year", "country", "status",
	"registration_ref_id", "registration_score",
	"renewal_ref_id", "renewal_score",
	"matched_via_lccn", "has_generic_title", "derived_work_penalty",
}

// writeResults is the export collaborator's minimal implementation: it
// threads the operator's format/path choice through to a CSV or JSON sink,
// per spec §9's note that the core does not implement exporters.
func writeResults(formats []string, outputPath string, singleFile bool, results []batch.Result) error {
	for _, format := range formats {
		path := outputPath
		if !singleFile {
			path = outputPath + "." + format
		}
		var err error
		switch strings.ToLower(format) {
		case "csv":
			err = writeCSV(path, results)
		case "json":
			err = writeJSON(path, results)
		default:
			err = fmt.Errorf("unsupported output format %q", format)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, results []batch.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		if r.Status == "" {
			continue
		}
		rec := r.Record
		row := []string{
			rec.ID, rec.Title, rec.Author, rec.Publisher,
			yearString(rec.Year), string(rec.Country), r.Status,
			matchRefID(rec.RegistrationMatch), matchScore(rec.RegistrationMatch),
			matchRefID(rec.RenewalMatch), matchScore(rec.RenewalMatch),
			boolString(matchedViaLCCN(rec)),
			boolString(hasGenericTitle(rec)),
			boolString(hasDerivedPenalty(rec)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, results []batch.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")

	type row struct {
		ID                 string  `json:"id"`
		Title              string  `json:"title"`
		Author             string  `json:"author"`
		Publisher          string  `json:"publisher"`
		Year               int     `json:"year"`
		Country            string  `json:"country"`
		Status             string  `json:"status"`
		RegistrationRefID  string  `json:"registration_ref_id,omitempty"`
		RegistrationScore  float64 `json:"registration_score,omitempty"`
		RenewalRefID       string  `json:"renewal_ref_id,omitempty"`
		RenewalScore       float64 `json:"renewal_score,omitempty"`
		MatchedViaLCCN     bool    `json:"matched_via_lccn"`
		HasGenericTitle    bool    `json:"has_generic_title"`
		DerivedWorkPenalty bool    `json:"derived_work_penalty"`
	}

	rows := make([]row, 0, len(results))
	for _, r := range results {
		if r.Status == "" {
			continue
		}
		rec := r.Record
		entry := row{
			ID: rec.ID, Title: rec.Title, Author: rec.Author, Publisher: rec.Publisher,
			Year: rec.Year, Country: string(rec.Country), Status: r.Status,
			MatchedViaLCCN:     matchedViaLCCN(rec),
			HasGenericTitle:    hasGenericTitle(rec),
			DerivedWorkPenalty: hasDerivedPenalty(rec),
		}
		if rec.RegistrationMatch != nil {
			entry.RegistrationRefID = rec.RegistrationMatch.ReferenceID
			entry.RegistrationScore = rec.RegistrationMatch.CombinedScore
		}
		if rec.RenewalMatch != nil {
			entry.RenewalRefID = rec.RenewalMatch.ReferenceID
			entry.RenewalScore = rec.RenewalMatch.CombinedScore
		}
		rows = append(rows, entry)
	}
	return enc.Encode(rows)
}

func yearString(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func matchRefID(m *pub.MatchResult) string {
	if m == nil {
		return ""
	}
	return m.ReferenceID
}

func matchScore(m *pub.MatchResult) string {
	if m == nil {
		return ""
	}
	return strconv.FormatFloat(m.CombinedScore, 'f', 2, 64)
}

func matchedViaLCCN(rec *pub.Publication) bool {
	return (rec.RegistrationMatch != nil && rec.RegistrationMatch.MatchedViaLCCN) ||
		(rec.RenewalMatch != nil && rec.RenewalMatch.MatchedViaLCCN)
}

func hasGenericTitle(rec *pub.Publication) bool {
	return (rec.RegistrationMatch != nil && rec.RegistrationMatch.HasGenericTitle) ||
		(rec.RenewalMatch != nil && rec.RenewalMatch.HasGenericTitle)
}

func hasDerivedPenalty(rec *pub.Publication) bool {
	return (rec.RegistrationMatch != nil && rec.RegistrationMatch.DerivedWorkPenalty) ||
		(rec.RenewalMatch != nil && rec.RenewalMatch.DerivedWorkPenalty)
}
