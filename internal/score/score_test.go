package score

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/config"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

func TestCombineNormalWithPublisher(t *testing.T) {
	cfg := config.Default()
	c := New(cfg)
	marc := &pub.Publication{Publisher: "Scribner"}
	copyrightPub := &pub.Publication{Publisher: "Scribner's Sons"}

	got := c.Combine(80, 70, 60, marc, copyrightPub, false, false)
	want := 80*0.5 + 70*0.3 + 60*0.2
	require.InDelta(t, want, got, 0.001)
}

func TestCombineRedistributesMissingPublisher(t *testing.T) {
	cfg := config.Default()
	c := New(cfg)
	marc := &pub.Publication{}
	copyrightPub := &pub.Publication{}

	got := c.Combine(80, 70, 0, marc, copyrightPub, false, false)
	want := 80*0.6 + 70*0.4
	require.InDelta(t, want, got, 0.001)
}

func TestCombineLCCNFloorAppliesWhenBelow(t *testing.T) {
	cfg := config.Default()
	c := New(cfg)
	marc := &pub.Publication{}
	copyrightPub := &pub.Publication{}

	got := c.Combine(10, 10, 0, marc, copyrightPub, false, true)
	require.Equal(t, cfg.Thresholds.LCCNFloor, got)
}

func TestCombineLCCNFloorDoesNotLowerHighScore(t *testing.T) {
	cfg := config.Default()
	c := New(cfg)
	marc := &pub.Publication{Publisher: "Scribner"}
	copyrightPub := &pub.Publication{Publisher: "Scribner"}

	got := c.Combine(100, 100, 100, marc, copyrightPub, false, true)
	require.Equal(t, 100.0, got)
}
