package batch

import (
	"panothumb/internal/thumbnail"
)

// Processor handles one input file. *thumbnail.Generator implements it.
type Processor interface {
	Process(path string) thumbnail.Result
}

type Options struct {
	// Workers is the pool size. Zero or less means runtime.NumCPU().
	Workers int
}

type Job struct {
	Path    string
	Display string
}

type EventKind int

const (
	EventStarted EventKind = iota
	EventFinished
)

type ProgressUpdate struct {
	Kind    EventKind
	Display string

	// Set on EventFinished only.
	Outcome     thumbnail.Outcome
	FailedSaves []thumbnail.SaveResult
}

type Summary struct {
	Total int

	// Processed counts Succeeded outcomes.
	Processed  int
	Outcomes   map[thumbnail.Outcome]int
	SaveErrors int
}

// Failed counts files that did not succeed.
func (s Summary) Failed() int {
	return s.Total - s.Processed
}
