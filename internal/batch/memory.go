package batch

import (
	"context"
	"runtime"
	"time"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/logging"
)

// MemoryMonitor samples process memory at a fixed interval and logs a
// warning when a threshold is exceeded (spec §4.10). It approximates "RSS"
// with runtime.MemStats.Sys, the same proxy eutils' PrintMemory uses, since
// the standard library does not expose true process RSS without
// platform-specific syscalls.
type MemoryMonitor struct {
	log           *logging.Logger
	interval      time.Duration
	thresholdBytes uint64
}

// NewMemoryMonitor builds a monitor. A zero thresholdBytes disables warnings.
func NewMemoryMonitor(log *logging.Logger, interval time.Duration, thresholdBytes uint64) *MemoryMonitor {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &MemoryMonitor{log: log, interval: interval, thresholdBytes: thresholdBytes}
}

// Run samples until ctx is cancelled. Intended to run in its own goroutine.
func (m *MemoryMonitor) Run(ctx context.Context) {
	if m.thresholdBytes == 0 {
		return
	}
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var stats runtime.MemStats
			runtime.ReadMemStats(&stats)
			if stats.Sys > m.thresholdBytes {
				m.log.MemoryWarningThresholdExceeded(stats.Sys, m.thresholdBytes)
			}
		}
	}
}
