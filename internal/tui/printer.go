package tui

import (
	"fmt"
	"io"

	"panothumb/internal/batch"
	"panothumb/internal/thumbnail"
)

// EventLines formats one progress update as console lines.
func EventLines(update batch.ProgressUpdate) []string {
	if update.Kind == batch.EventStarted {
		return []string{fmt.Sprintf("\tProcessing %s", update.Display)}
	}

	var lines []string
	for _, save := range update.FailedSaves {
		lines = append(lines, fmt.Sprintf("\t\tSaving errored for image at %s", save.Path))
	}
	if update.Outcome != thumbnail.Succeeded {
		lines = append(lines, "\t"+update.Outcome.Reason())
	}
	return append(lines, fmt.Sprintf("\tProcessed %s", update.Display))
}

// Printer writes progress lines without a live view, for pipes and logs.
type Printer struct {
	W io.Writer
}

// Drain prints every update until the channel is closed.
func (p Printer) Drain(updates <-chan batch.ProgressUpdate) {
	for update := range updates {
		for _, line := range EventLines(update) {
			fmt.Fprintln(p.W, line)
		}
	}
}
