package textnorm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandAbbreviationsExpandsAbbreviatedWord(t *testing.T) {
	dict := map[string]string{"dept": "department", "co": "company"}
	require.Equal(t, "the department. of state", ExpandAbbreviations("the dept. of state", dict))
}

func TestExpandAbbreviationsLeavesLongUnperiodedWordAlone(t *testing.T) {
	dict := map[string]string{"bibliography": "bibliographic works"}
	require.Equal(t, "a bibliography here", ExpandAbbreviations("a bibliography here", dict))
}

func TestExpandAbbreviationsHandlesEmpty(t *testing.T) {
	require.Equal(t, "", ExpandAbbreviations("", map[string]string{}))
}
