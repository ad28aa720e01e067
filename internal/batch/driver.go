// Package batch implements the parallelism half of the Batch Driver (spec
// §4.10): it partitions an input stream into chunks, dispatches them across
// a bounded worker pool, and re-sequences results for ordered output.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/config"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/logging"
	"github.com/pulibrary/marc-pd-tool-sub003/internal/pub"
)

// NumWorkers computes the worker pool size named in spec §4.10:
// max(1, cpu_count - 2). Grounded on eutils/utils.go's SetTunings, which
// derives a worker count from CPU topology; this is the spec's simpler
// fixed formula rather than the teacher's fuller tuning logic.
func NumWorkers(cfg *config.Config) int {
	if cfg.Processing.MaxWorkers > 0 {
		return cfg.Processing.MaxWorkers
	}
	n := runtime.NumCPU() - 2
	if n < 1 {
		n = 1
	}
	return n
}

// ProcessFunc scores one input record against whatever reference state the
// caller closed over (indices, detectors) and returns its Result.
type ProcessFunc func(ctx context.Context, record *pub.Publication) Result

// Stats summarizes one Run, reported in the final run summary (spec §7).
type Stats struct {
	TotalInput       int
	RecordsProcessed int
	RecordsSkipped   int
	ErrorCount       int
	Cancelled        bool
}

// Driver owns the worker pool and chunk re-sequencing described in spec
// §4.10 and §5. No worker mutates shared state; ProcessFunc closures are
// expected to only read shared indices/detectors/config.
type Driver struct {
	cfg *config.Config
	log *logging.Logger
}

// New builds a Driver.
func New(cfg *config.Config, log *logging.Logger) *Driver {
	return &Driver{cfg: cfg, log: log}
}

// Run partitions records into chunks, processes them across a bounded
// worker pool, and returns Results in original input order. Cancellation is
// cooperative: once ctx is done, no new chunks are submitted, in-flight
// chunks drain to completion, and Stats.Cancelled is set (spec §4.10,
// §5 "Cancellation semantics").
func (d *Driver) Run(ctx context.Context, records []*pub.Publication, process ProcessFunc) ([]Result, Stats) {
	stats := Stats{TotalInput: len(records)}
	if len(records) == 0 {
		return nil, stats
	}

	chunks := Partition(records, d.cfg.Processing.BatchSize)
	workers := NumWorkers(d.cfg)

	chunkIn := make(chan Chunk, len(chunks))
	for _, c := range chunks {
		chunkIn <- c
	}
	close(chunkIn)

	chunkOut := make(chan ChunkResult, len(chunks))
	unshuffled := Unshuffle(chunkOut)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for chunk := range chunkIn {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				results := make([]Result, 0, len(chunk.Records))
				for _, record := range chunk.Records {
					results = append(results, process(gctx, record))
				}
				chunkOut <- ChunkResult{Index: chunk.Index, Results: results}
			}
			return nil
		})
	}

	go func() {
		g.Wait()
		close(chunkOut)
	}()

	all := make([]Result, 0, len(records))
	for cr := range unshuffled {
		all = append(all, cr.Results...)
	}

	if err := g.Wait(); err != nil {
		stats.Cancelled = true
		d.log.Warnf("batch run cancelled: %v", err)
	}

	for _, r := range all {
		if r.Err != nil {
			stats.ErrorCount++
			continue
		}
		if r.Status == "" {
			stats.RecordsSkipped++
			continue
		}
		stats.RecordsProcessed++
	}

	return all, stats
}
