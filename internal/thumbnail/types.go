package thumbnail

import (
	"errors"

	"panothumb/pkg/imgutil"
)

// Outcome is the terminal state of processing one input file.
type Outcome int

const (
	Succeeded Outcome = iota
	RejectedAspectRatio
	NotAnImage
	DeleteFailed
	SaveFailed
	OutputExists
	ReadFailed
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case RejectedAspectRatio:
		return "rejected aspect ratio"
	case NotAnImage:
		return "not an image"
	case DeleteFailed:
		return "delete failed"
	case SaveFailed:
		return "save failed"
	case OutputExists:
		return "output exists"
	case ReadFailed:
		return "read failed"
	default:
		return "unknown"
	}
}

// Reason is the operator-facing explanation for a non-success outcome.
func (o Outcome) Reason() string {
	switch o {
	case RejectedAspectRatio:
		return "File must be an image with an aspect ratio of 2:1"
	case NotAnImage:
		return "File is not an image"
	case DeleteFailed:
		return "Could not delete file"
	case SaveFailed:
		return "Could not save every thumbnail"
	case OutputExists:
		return "A thumbnail with the same name already exists"
	case ReadFailed:
		return "Could not read file"
	default:
		return ""
	}
}

// SavePolicy decides whether a failed derived-image save fails the file.
type SavePolicy int

const (
	// SavePolicyLenient reports Succeeded once every save was attempted,
	// even if some failed. Failures stay visible in Result.Saves.
	SavePolicyLenient SavePolicy = iota
	// SavePolicyStrict reports SaveFailed if any save failed.
	SavePolicyStrict
)

var (
	ErrAspectRatio  = errors.New("aspect ratio is not 2:1")
	ErrOutputExists = errors.New("derived output already exists")
)

// SaveResult records one derived-image write.
type SaveResult struct {
	Path string
	Err  error
}

type Result struct {
	Path    string
	Outcome Outcome
	Kind    imgutil.Kind
	Width   int
	Height  int
	Saves   []SaveResult
	Err     error
}

// FailedSaves returns the saves that did not complete.
func (r Result) FailedSaves() []SaveResult {
	var failed []SaveResult
	for _, s := range r.Saves {
		if s.Err != nil {
			failed = append(failed, s)
		}
	}
	return failed
}
