package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"layoutlex/internal/driver"
	"layoutlex/internal/observ"
)

// newTimer returns a timer when --timings is set, nil otherwise.
func newTimer(cmd *cobra.Command) (*observ.Timer, error) {
	enabled, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if !enabled {
		return nil, nil
	}
	return observ.NewTimer(), nil
}

// timePhase starts a named phase and returns the function that ends it.
// A nil timer makes both no-ops.
func timePhase(timer *observ.Timer, name string) func() {
	if timer == nil {
		return func() {}
	}
	idx := timer.Begin(name)
	return func() { timer.End(idx, "") }
}

// phaseObserver records the phases a scan reports into timer.
func phaseObserver(timer *observ.Timer) driver.PhaseObserver {
	if timer == nil {
		return nil
	}
	return func(ev driver.PhaseEvent) {
		if ev.Status == driver.PhaseEnd {
			timer.Record(ev.Name, ev.Elapsed, "")
		}
	}
}

func printTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	if _, err := io.WriteString(out, timer.Summary()); err != nil {
		panic(err)
	}
}
