// Package observ measures the phases of a command for --timings.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one measured step. A phase that was begun but not ended has a
// zero Dur.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer collects phases in the order they were started. Scan workers end
// phases concurrently, so every method locks.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

func NewTimer() *Timer { return &Timer{} }

// Begin starts a phase and returns the handle for End.
func (t *Timer) Begin(name string) int {
	return t.add(Phase{Name: name, Start: time.Now()})
}

// End closes the phase idx; unknown handles are ignored.
func (t *Timer) End(idx int, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur, p.Note = time.Since(p.Start), note
}

// Record adds a phase measured by someone else, e.g. a driver.PhaseObserver.
func (t *Timer) Record(name string, dur time.Duration, note string) {
	t.add(Phase{Name: name, Start: time.Now().Add(-dur), Dur: dur, Note: note})
}

func (t *Timer) add(p Phase) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, p)
	return len(t.phases) - 1
}

// PhaseReport is a phase in milliseconds, ready for JSON.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report sums the phases; TotalMS adds durations, nested phases count twice.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var r Report
	for _, p := range t.phases {
		ms := millis(p.Dur)
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: ms, Note: p.Note})
		r.TotalMS += ms
	}
	return r
}

// Summary renders the report as an aligned table for stderr.
func (t *Timer) Summary() string {
	r := t.Report()
	width := len("total")
	for _, p := range r.Phases {
		width = max(width, len(p.Name))
	}
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-*s %8.2f ms", width, p.Name, p.DurationMS)
		if p.Note != "" {
			fmt.Fprintf(&sb, "  // %s", p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-*s %8.2f ms\n", width, "total", r.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
