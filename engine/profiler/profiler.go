// package profiler logs frame rate and memory statistics for the render loop.
package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler accumulates per-frame timing and reports, once per interval,
// frames per second, worst frame time, heap usage, allocation rate, and GC
// pauses observed since the previous report.
type Profiler struct {
	frameCount int
	worstFrame time.Duration
	lastFrame  time.Time
	lastReport time.Time

	interval time.Duration

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a profiler reporting once per second.
//
// Returns:
//   - *Profiler: the new profiler
func NewProfiler() *Profiler {
	now := time.Now()
	return &Profiler{
		lastFrame:  now,
		lastReport: now,
		interval:   time.Second,
	}
}

// Tick records one frame. When the reporting interval has elapsed, writes the
// accumulated statistics to the log and resets the window.
//
// Returns:
//   - bool: true when a report was written this tick
func (p *Profiler) Tick() bool {
	now := time.Now()
	frame := now.Sub(p.lastFrame)
	p.lastFrame = now
	p.frameCount++
	if frame > p.worstFrame {
		p.worstFrame = frame
	}

	elapsed := now.Sub(p.lastReport)
	if elapsed < p.interval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	maxPauseUs := p.maxPauseSince(p.lastGCCount, gcCount)

	log.Printf("[vista] fps %.1f (worst frame %.1f ms) | heap %.1f MB | alloc %.2f MB/s | gc %d (max pause %d µs) | sys %.1f MB",
		fps, float64(p.worstFrame.Microseconds())/1000, heapMB, allocRateMB, gcCount, maxPauseUs, sysMB)

	p.frameCount = 0
	p.worstFrame = 0
	p.lastReport = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// maxPauseSince scans the GC pause ring for the longest pause between two GC
// counts. PauseNs keeps the last 256 pauses.
func (p *Profiler) maxPauseSince(from, to uint32) uint64 {
	if to == 0 {
		return 0
	}
	if to-from > 256 {
		from = to - 256
	}
	var maxUs uint64
	for i := from; i < to; i++ {
		if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxUs {
			maxUs = pause
		}
	}
	return maxUs
}
