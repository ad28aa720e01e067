package lccn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"n78-890351", "n78890351"},
		{"n78-89035", "n78089035"},
		{"n 78890351 ", "n78890351"},
		{" 85000002 ", "85000002"},
		{"85-2 ", "85000002"},
		{"2001-000002", "2001000002"},
		{"75-425165//r75", "75425165"},
		{" 79139101 /AC/r932", "79139101"},
		{"", ""},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Normalize(c.in), "Normalize(%q)", c.in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"n78-890351", "85000002", "2001-000002", "n 78890351 "}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		require.Equal(t, once, twice, "Normalize not idempotent for %q", in)
	}
}

func TestPrefixYearSerial(t *testing.T) {
	n := Normalize("n78-890351")
	require.Equal(t, "n", Prefix(n))
	require.Equal(t, "78", Year(n))
	require.Equal(t, "890351", Serial(n))

	n2 := Normalize("2001-000002")
	require.Equal(t, "", Prefix(n2))
	require.Equal(t, "2001", Year(n2))
	require.Equal(t, "000002", Serial(n2))
}
