package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/config"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/logging"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

func TestPartitionSplitsIntoChunks(t *testing.T) {
	records := make([]*pub.Publication, 5)
	for i := range records {
		records[i] = &pub.Publication{ID: string(rune('a' + i))}
	}
	chunks := Partition(records, 2)
	require.Len(t, chunks, 3)
	require.Len(t, chunks[0].Records, 2)
	require.Len(t, chunks[2].Records, 1)
}

func TestDriverRunPreservesOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Processing.BatchSize = 2
	log := logging.New(logging.LevelQuiet)
	d := New(cfg, log)

	records := make([]*pub.Publication, 10)
	for i := range records {
		records[i] = &pub.Publication{ID: string(rune('a' + i))}
	}

	results, stats := d.Run(context.Background(), records, func(_ context.Context, r *pub.Publication) Result {
		return Result{Record: r, Status: "classified"}
	})

	require.Len(t, results, 10)
	require.Equal(t, 10, stats.RecordsProcessed)
	for i, r := range results {
		require.Equal(t, records[i].ID, r.Record.ID)
	}
}

func TestDriverRunEmptyInput(t *testing.T) {
	cfg := config.Default()
	log := logging.New(logging.LevelQuiet)
	d := New(cfg, log)

	results, stats := d.Run(context.Background(), nil, func(_ context.Context, r *pub.Publication) Result {
		return Result{Record: r}
	})
	require.Empty(t, results)
	require.Equal(t, 0, stats.TotalInput)
}
