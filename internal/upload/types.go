package upload

import (
	"github.com/five82/raceshot-upload/internal/raceshot"
)

// Batch is everything one user action submits: the shared form fields plus
// the files to send. Price stays raw text so validation can report a
// non-numeric entry.
type Batch struct {
	Credential string
	Files      []string
	EventID    string
	BibNumber  string
	Location   string
	Price      string
}

// Request is a single file's submission, built fresh for every file.
type Request struct {
	Credential string
	ImagePath  string
	EventID    string
	BibNumber  string
	Location   string
	Price      int
}

func (r Request) photo() raceshot.Photo {
	return raceshot.Photo{
		Path:      r.ImagePath,
		EventID:   r.EventID,
		BibNumber: r.BibNumber,
		Location:  r.Location,
		Price:     r.Price,
	}
}

// Kind classifies why a file failed.
type Kind int

const (
	KindNone Kind = iota
	KindFileNotFound
	KindNetwork
	KindParse
	KindApplication
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindFileNotFound:
		return "file_not_found"
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	case KindApplication:
		return "application"
	default:
		return "unexpected"
	}
}

// Result is the outcome for one file. StatusCode is zero when no HTTP
// response was received.
type Result struct {
	Success        bool
	Path           string
	FileName       string
	PhotoID        string
	OriginalFileID string
	CloudflareID   string
	Message        string
	ErrorDetail    string
	StatusCode     int
	Kind           Kind
}

// BatchResult holds one Result per submitted file, in submission order.
type BatchResult []Result

// Succeeded reports whether every file succeeded. An empty batch never
// counts as a success.
func (b BatchResult) Succeeded() bool {
	if len(b) == 0 {
		return false
	}
	for _, r := range b {
		if !r.Success {
			return false
		}
	}
	return true
}

// Counts returns the number of succeeded and failed files.
func (b BatchResult) Counts() (succeeded, failed int) {
	for _, r := range b {
		if r.Success {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
