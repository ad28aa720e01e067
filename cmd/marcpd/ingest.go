package main

import (
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/config"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/lang"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/lccn"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

// marcRecord is the simplified MARC-XML shape named in spec §6: a
// MARC-shaped input record carries title, optional part, transcribed and
// heading author, publisher, place, raw country/language codes, raw LCCN,
// and free-text pub_date.
type marcRecord struct {
	XMLName    xml.Name `xml:"record"`
	ID         string   `xml:"id,attr"`
	Title      string   `xml:"title"`
	PartNumber string   `xml:"part_number"`
	PartName   string   `xml:"part_name"`
	Author     string   `xml:"author"`
	MainAuthor string   `xml:"main_author"`
	Publisher  string   `xml:"publisher"`
	Place      string   `xml:"place"`
	Country    string   `xml:"country"`
	Language   string   `xml:"language"`
	LCCN       string   `xml:"lccn"`
	PubDate    string   `xml:"pub_date"`
}

type marcRecords struct {
	XMLName xml.Name     `xml:"records"`
	Records []marcRecord `xml:"record"`
}

var fourDigitYearRe = regexp.MustCompile(`\b(1[5-9]\d{2}|20\d{2})\b`)

// extractYear finds the first plausible 4-digit year in free text, mirroring
// original_source text_utils.py's extract_year behavior.
func extractYear(freeText string) int {
	m := fourDigitYearRe.FindString(freeText)
	if m == "" {
		return 0
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return y
}

// classifyCountry adapts lang.ResolveCountry (which expects a full MARC 008
// control field) to the raw 3-char country code the spec's Publication
// carries directly, by padding it into the field's country-code slot.
func classifyCountry(raw string) pub.CountryClassification {
	if raw == "" {
		return pub.CountryUnknown
	}
	field008 := strings.Repeat(" ", 15) + raw + strings.Repeat(" ", 3)
	_, classification := lang.ResolveCountry(field008)
	return classification
}

func yearInRange(year int, yf config.YearFilters) bool {
	if year == 0 {
		return yf.BruteForceMissingYear
	}
	return year >= yf.MinYear && year <= yf.MaxYear
}

// loadPublications reads a single MARC XML or TSV file into Publications.
func loadPublications(path string, source pub.Source, cfg *config.Config) ([]*pub.Publication, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return loadMARCXML(path, source, cfg)
	case ".tsv":
		return loadTSV(path, source, cfg)
	default:
		return nil, fmt.Errorf("unsupported input extension for %s (expected .xml or .tsv)", path)
	}
}

// loadPublicationsFromDir walks dir non-recursively for .xml/.tsv files,
// the shape a reference-corpus directory takes per spec §6.
func loadPublicationsFromDir(dir string, source pub.Source, cfg *config.Config) ([]*pub.Publication, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus directory %s: %w", dir, err)
	}

	var all []*pub.Publication
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".xml" && ext != ".tsv" {
			continue
		}
		recs, err := loadPublications(filepath.Join(dir, e.Name()), source, cfg)
		if err != nil {
			// Ingestion errors on a single file are recovered locally and
			// skipped with a warning (spec §7); the file is simply omitted.
			continue
		}
		all = append(all, recs...)
	}
	return all, nil
}

// loadKnownStatuses reads the optional "known_status" column (TSV) or
// <known_status> element (XML) keyed by record ID, for the ground_truth_mode
// diagnostic named in spec §6 and supplemented from original_source's
// ground_truth_csv_exporter.py. A missing column yields an empty map, never
// an error: ground truth data is optional input, not a required one.
func loadKnownStatuses(path string) map[string]string {
	known := make(map[string]string)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv":
		f, err := os.Open(path)
		if err != nil {
			return known
		}
		defer f.Close()
		r := csv.NewReader(f)
		r.Comma = '\t'
		r.LazyQuotes = true
		r.FieldsPerRecord = -1
		header, err := r.Read()
		if err != nil {
			return known
		}
		idCol, statusCol := -1, -1
		for i, name := range header {
			switch strings.ToLower(strings.TrimSpace(name)) {
			case "source_id":
				idCol = i
			case "known_status":
				statusCol = i
			}
		}
		if statusCol < 0 {
			return known
		}
		for {
			row, err := r.Read()
			if err == io.EOF {
				break
			}
			if err != nil || statusCol >= len(row) {
				continue
			}
			id := ""
			if idCol >= 0 && idCol < len(row) {
				id = row[idCol]
			}
			if id != "" && row[statusCol] != "" {
				known[id] = row[statusCol]
			}
		}
	case ".xml":
		f, err := os.Open(path)
		if err != nil {
			return known
		}
		defer f.Close()
		type knownRecord struct {
			ID           string `xml:"id,attr"`
			KnownStatus  string `xml:"known_status"`
		}
		var recs struct {
			Records []knownRecord `xml:"record"`
		}
		if err := xml.NewDecoder(f).Decode(&recs); err != nil && err != io.EOF {
			return known
		}
		for _, r := range recs.Records {
			if r.ID != "" && r.KnownStatus != "" {
				known[r.ID] = r.KnownStatus
			}
		}
	}

	return known
}

func loadMARCXML(path string, source pub.Source, cfg *config.Config) ([]*pub.Publication, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var recs marcRecords
	if err := xml.NewDecoder(f).Decode(&recs); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing MARC XML %s: %w", path, err)
	}

	out := make([]*pub.Publication, 0, len(recs.Records))
	for _, r := range recs.Records {
		if r.Title == "" {
			continue
		}
		year := extractYear(r.PubDate)
		if !yearInRange(year, cfg.YearFilters) {
			continue
		}
		langCode, langStatus := lang.ResolveLanguage(r.Language)
		out = append(out, &pub.Publication{
			ID:           r.ID,
			Source:       source,
			Title:        r.Title,
			PartNumber:   r.PartNumber,
			PartName:     r.PartName,
			Author:       r.Author,
			MainAuthor:   r.MainAuthor,
			Publisher:    r.Publisher,
			Place:        r.Place,
			PubDate:      r.PubDate,
			Year:         year,
			RawLCCN:      r.LCCN,
			NormalizedLCCN: lccn.Normalize(r.LCCN),
			RawCountry:   r.Country,
			RawLanguage:  r.Language,
			Country:      classifyCountry(r.Country),
			LanguageCode: langCode,
			LangStatus:   langStatus,
		})
	}
	return out, nil
}

// loadTSV reads a tab-separated reference corpus. Column names are read
// from the header row; recognized columns are title, part_number,
// part_name, author, main_author, publisher, place, country, language,
// lccn, pub_date, full_text, source_id.
func loadTSV(path string, source pub.Source, cfg *config.Config) ([]*pub.Publication, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading TSV header %s: %w", path, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var out []*pub.Publication
	rowNum := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed row is skipped with a warning, never fatal (spec §7).
			continue
		}
		rowNum++

		title := field(row, "title")
		if title == "" {
			continue
		}
		pubDate := field(row, "pub_date")
		year := extractYear(pubDate)
		if !yearInRange(year, cfg.YearFilters) {
			continue
		}

		id := field(row, "source_id")
		if id == "" {
			id = fmt.Sprintf("%s-%d", filepath.Base(path), rowNum)
		}

		rawCountry := field(row, "country")
		rawLanguage := field(row, "language")
		langCode, langStatus := lang.ResolveLanguage(rawLanguage)
		rawLCCN := field(row, "lccn")

		out = append(out, &pub.Publication{
			ID:             id,
			Source:         source,
			Title:          title,
			PartNumber:     field(row, "part_number"),
			PartName:       field(row, "part_name"),
			Author:         field(row, "author"),
			MainAuthor:     field(row, "main_author"),
			Publisher:      field(row, "publisher"),
			Place:          field(row, "place"),
			PubDate:        pubDate,
			Year:           year,
			FullText:       field(row, "full_text"),
			RawLCCN:        rawLCCN,
			NormalizedLCCN: lccn.Normalize(rawLCCN),
			RawCountry:     rawCountry,
			RawLanguage:    rawLanguage,
			Country:        classifyCountry(rawCountry),
			LanguageCode:   langCode,
			LangStatus:     langStatus,
		})
	}
	return out, nil
}
