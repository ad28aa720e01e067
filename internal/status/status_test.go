package status

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/config"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

func TestClassifyPrePreThresholdYear(t *testing.T) {
	cfg := config.Default()
	got := Classify(nil, nil, pub.CountryUS, 1900, cfg)
	require.Equal(t, PDPreThreshold, got)
}

func TestClassifyUSRegisteredNotRenewedInWindow(t *testing.T) {
	cfg := config.Default()
	reg := &pub.MatchResult{ReferenceID: "r1"}
	got := Classify(reg, nil, pub.CountryUS, 1940, cfg)
	require.Equal(t, PDUSNoRenewal, got)
}

func TestClassifyUSRegisteredAndRenewed(t *testing.T) {
	cfg := config.Default()
	reg := &pub.MatchResult{ReferenceID: "r1"}
	ren := &pub.MatchResult{ReferenceID: "n1"}
	got := Classify(reg, ren, pub.CountryUS, 1940, cfg)
	require.Equal(t, InCopyright, got)
}

func TestClassifyUSNoRegistration(t *testing.T) {
	cfg := config.Default()
	got := Classify(nil, nil, pub.CountryUS, 1940, cfg)
	require.Equal(t, UndeterminedUSNoData, got)
}

func TestClassifyNonUSNoRenewal(t *testing.T) {
	cfg := config.Default()
	got := Classify(nil, nil, pub.CountryNonUS, 1940, cfg)
	require.Equal(t, ResearchRequired, got)
}

func TestClassifyUnknownCountry(t *testing.T) {
	cfg := config.Default()
	got := Classify(nil, nil, pub.CountryUnknown, 1940, cfg)
	require.Equal(t, UndeterminedCountryUnknown, got)
}
