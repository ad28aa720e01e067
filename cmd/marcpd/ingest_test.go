package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/config"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

func TestExtractYearFindsFourDigitYear(t *testing.T) {
	require.Equal(t, 1923, extractYear("copyright 1923, renewed 1951"))
	require.Equal(t, 0, extractYear("no year here"))
}

func TestClassifyCountryUS(t *testing.T) {
	require.Equal(t, pub.CountryUS, classifyCountry("nyu"))
	require.Equal(t, pub.CountryUnknown, classifyCountry(""))
}

func TestYearInRangeRespectsBruteForce(t *testing.T) {
	yf := config.YearFilters{MinYear: 1900, MaxYear: 1970, BruteForceMissingYear: false}
	require.True(t, yearInRange(1950, yf))
	require.False(t, yearInRange(1800, yf))
	require.False(t, yearInRange(0, yf))

	yf.BruteForceMissingYear = true
	require.True(t, yearInRange(0, yf))
}

func TestLoadMARCXMLSkipsEmptyTitleAndOutOfRangeYear(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.xml")
	xmlContent := `<records>
  <record id="1"><title>A Study in Scarlet</title><author>Doyle, Arthur Conan</author><country>enk</country><language>eng</language><pub_date>1887</pub_date></record>
  <record id="2"><title></title><pub_date>1900</pub_date></record>
  <record id="3"><title>Out of Range</title><pub_date>1200</pub_date></record>
</records>`
	require.NoError(t, os.WriteFile(path, []byte(xmlContent), 0o644))

	cfg := config.Default()
	recs, err := loadMARCXML(path, pub.SourceInput, cfg)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "A Study in Scarlet", recs[0].Title)
	require.Equal(t, 1887, recs[0].Year)
}

func TestLoadTSVMapsColumnsBySourceID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "renewals.tsv")
	tsvContent := "title\tauthor\tpub_date\tfull_text\tsource_id\n" +
		"Collected Poems\tSmith, Jane\t1940\tCollected Poems by Jane Smith, pub. Acme Press\tR123456\n"
	require.NoError(t, os.WriteFile(path, []byte(tsvContent), 0o644))

	cfg := config.Default()
	recs, err := loadTSV(path, pub.SourceRenewal, cfg)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "R123456", recs[0].ID)
	require.Equal(t, pub.SourceRenewal, recs[0].Source)
	require.Contains(t, recs[0].FullText, "Acme Press")
}
