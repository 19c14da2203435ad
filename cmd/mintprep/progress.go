package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/mattn/go-isatty"
)

const progressLabelLimit = 10

// renderProgress starts a terminal tracker for the CID batch and returns a
// per-completion callback plus a finish func that stops rendering.
func renderProgress(out io.Writer, total int) (func(int), func()) {
	pw := progress.NewWriter()
	pw.SetOutputWriter(out)
	pw.SetTrackerLength(25)
	pw.SetUpdateFrequency(100 * time.Millisecond)
	pw.Style().Visibility.ETA = false
	pw.Style().Visibility.Time = false

	tracker := &progress.Tracker{Message: progressLabel(total), Total: int64(total)}
	pw.AppendTracker(tracker)
	go pw.Render()

	onDone := func(int) {
		tracker.Increment(1)
	}
	finish := func() {
		if !tracker.IsDone() {
			tracker.MarkAsDone()
		}
		pw.Stop()
		for pw.IsRenderInProgress() {
			time.Sleep(10 * time.Millisecond)
		}
	}
	return onDone, finish
}

// progressLabel names the first ten pending indices plus a count of the rest.
func progressLabel(total int) string {
	shown := total
	if shown > progressLabelLimit {
		shown = progressLabelLimit
	}
	parts := make([]string, 0, shown)
	for i := 0; i < shown; i++ {
		parts = append(parts, fmt.Sprintf("#%03d", i))
	}
	label := "Calculating CID for " + strings.Join(parts, " ")
	if total > progressLabelLimit {
		label += fmt.Sprintf(" (+ %d others)", total-progressLabelLimit)
	}
	return label
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
