// Package logging provides the stderr logger threaded through the system.
// There is no global logger instance; callers construct one in main and pass
// it down explicitly, matching the Config pattern in internal/config.
package logging

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"
)

// Level controls verbosity.
type Level int

const (
	LevelQuiet Level = iota
	LevelNormal
	LevelVerbose
	LevelDebug
)

// Logger writes timestamped, leveled lines to stderr.
type Logger struct {
	level     Level
	startTime time.Time
}

// New constructs a Logger at the given level and records the start time used
// by Duration's elapsed-time report.
func New(level Level) *Logger {
	return &Logger{level: level, startTime: time.Now()}
}

func (l *Logger) log(prefix, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s %s %s\n", time.Now().Format("15:04:05"), prefix, msg)
}

// Infof logs at LevelNormal and above.
func (l *Logger) Infof(format string, args ...interface{}) {
	if l.level >= LevelNormal {
		l.log("info", format, args...)
	}
}

// Verbosef logs at LevelVerbose and above.
func (l *Logger) Verbosef(format string, args ...interface{}) {
	if l.level >= LevelVerbose {
		l.log("verbose", format, args...)
	}
}

// Debugf logs at LevelDebug only.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.level >= LevelDebug {
		l.log("debug", format, args...)
	}
}

// Warnf always logs, colorized yellow, matching the teacher's use of ANSI
// highlighting for attention-worthy lines.
func (l *Logger) Warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	color.New(color.FgYellow).Fprintf(os.Stderr, "%s warn %s\n", time.Now().Format("15:04:05"), msg)
}

// Errorf always logs, colorized red.
func (l *Logger) Errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "%s error %s\n", time.Now().Format("15:04:05"), msg)
}

// Duration reports elapsed wall-clock time since New, mirroring eutils's
// PrintDuration.
func (l *Logger) Duration(label string) {
	if l.level < LevelNormal {
		return
	}
	elapsed := time.Since(l.startTime)
	l.log("timing", "%s took %s", label, elapsed.Round(time.Millisecond))
}

// MemoryStats reports current process memory and total system memory,
// mirroring eutils's PrintMemory / PrintStats, which use runtime.MemStats and
// memory.TotalMemory() respectively.
func (l *Logger) MemoryStats() {
	if l.level < LevelVerbose {
		return
	}
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	total := memory.TotalMemory()
	l.log("memory", "alloc=%dMB sys=%dMB total_system=%dMB",
		m.Alloc/1024/1024, m.Sys/1024/1024, total/1024/1024)
}

// CPUStats reports CPU topology, mirroring eutils's PrintStats use of
// cpuid.CPU.ThreadsPerCore and cpuid.CPU.LogicalCores.
func (l *Logger) CPUStats() {
	if l.level < LevelVerbose {
		return
	}
	l.log("cpu", "logical_cores=%d threads_per_core=%d gomaxprocs=%d",
		cpuid.CPU.LogicalCores, cpuid.CPU.ThreadsPerCore, runtime.GOMAXPROCS(0))
}

// MemoryWarningThresholdExceeded logs the batch driver's memory-monitor
// warning (spec §4.10: "logs a warning when threshold exceeded").
func (l *Logger) MemoryWarningThresholdExceeded(rssBytes, thresholdBytes uint64) {
	l.Warnf("process RSS %dMB exceeds threshold %dMB", rssBytes/1024/1024, thresholdBytes/1024/1024)
}
