package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"layoutlex/internal/driver"
	"layoutlex/internal/ui"
)

type scanOutcome struct {
	result *driver.ScanResult
	err    error
}

// runScanWithUI runs the scan in the background and renders its progress
// events until the scan finishes.
func runScanWithUI(ctx context.Context, title string, req *driver.ScanRequest) (*driver.ScanResult, error) {
	if req == nil {
		return nil, fmt.Errorf("missing scan request")
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan scanOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Scan(ctx, reqCopy)
		outcomeCh <- scanOutcome{result: res, err: err}
		close(events)
	}()

	uiErr := ui.Run(title, events, tea.WithOutput(os.Stdout))
	if uiErr != nil {
		// дочитываем события, чтобы сканер не заблокировался
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
