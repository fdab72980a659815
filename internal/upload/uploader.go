package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/raceshot-upload/internal/raceshot"
)

const (
	msgUnknownError = "unknown error"
	msgParseFailure = "could not parse response"
)

// CredentialSaver persists a credential that a batch has proven valid.
type CredentialSaver interface {
	Save(token string)
}

// Uploader sends a batch one file at a time.
type Uploader struct {
	client raceshot.Uploader
	logger *slog.Logger
}

// New returns an Uploader. A nil logger discards log output.
func New(client raceshot.Uploader, logger *slog.Logger) *Uploader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Uploader{client: client, logger: logger}
}

// Run validates the batch and, if it passes, uploads every file in order.
// A *ValidationError means nothing was sent. Per-file failures never abort
// the batch; they are recorded in the returned results.
func (u *Uploader) Run(ctx context.Context, b Batch) (BatchResult, error) {
	if u == nil || u.client == nil {
		return nil, errors.New("uploader has no client")
	}
	price, err := Validate(b)
	if err != nil {
		u.logger.Warn("batch rejected", "reason", err.Error())
		return nil, err
	}

	logger := u.logger.With("batch", uuid.NewString())
	logger.Info("batch started",
		"files", len(b.Files),
		"event_id", strings.TrimSpace(b.EventID),
		"location", strings.TrimSpace(b.Location),
		"price", price)

	results := make(BatchResult, 0, len(b.Files))
	for _, path := range b.Files {
		req := Request{
			Credential: strings.TrimSpace(b.Credential),
			ImagePath:  path,
			EventID:    strings.TrimSpace(b.EventID),
			BibNumber:  strings.TrimSpace(b.BibNumber),
			Location:   strings.TrimSpace(b.Location),
			Price:      price,
		}
		results = append(results, u.uploadOne(ctx, logger, req))
	}

	succeeded, failed := results.Counts()
	logger.Info("batch finished", "succeeded", succeeded, "failed", failed)
	return results, nil
}

// Submit runs the batch and hands the credential to saver only when every
// file succeeded.
func (u *Uploader) Submit(ctx context.Context, b Batch, saver CredentialSaver) (BatchResult, error) {
	results, err := u.Run(ctx, b)
	if err != nil {
		return nil, err
	}
	if saver != nil && results.Succeeded() {
		saver.Save(b.Credential)
	}
	return results, nil
}

func (u *Uploader) uploadOne(ctx context.Context, logger *slog.Logger, req Request) Result {
	result := Result{Path: req.ImagePath, FileName: filepath.Base(req.ImagePath)}

	if _, err := os.Stat(req.ImagePath); errors.Is(err, os.ErrNotExist) {
		logger.Warn("image missing", "file", req.ImagePath)
		return fileNotFound(result)
	}

	start := time.Now()
	resp, err := u.client.Upload(ctx, req.Credential, req.photo())
	elapsed := time.Since(start)
	if err != nil {
		result = classifyError(result, err)
		logger.Warn("upload failed",
			"file", result.FileName,
			"kind", result.Kind.String(),
			"status", result.StatusCode,
			"duration", elapsed,
			"error", err)
		return result
	}

	result.StatusCode = resp.StatusCode
	if !resp.Accepted() {
		result.Kind = KindApplication
		result.Message = strings.TrimSpace(resp.Body.Error)
		if result.Message == "" {
			result.Message = msgUnknownError
		}
		logger.Warn("upload rejected",
			"file", result.FileName,
			"status", resp.StatusCode,
			"duration", elapsed,
			"error", result.Message)
		return result
	}

	result.Success = true
	result.PhotoID = resp.Body.PhotoID.String()
	result.OriginalFileID = resp.Body.OriginalFileID.String()
	result.CloudflareID = resp.Body.CloudflareID.String()
	result.Message = resp.Body.Message
	logger.Info("upload succeeded",
		"file", result.FileName,
		"photo_id", result.PhotoID,
		"duration", elapsed)
	return result
}

func fileNotFound(r Result) Result {
	r.Kind = KindFileNotFound
	r.Message = "file not found: " + r.Path
	return r
}

func classifyError(r Result, err error) Result {
	var netErr *raceshot.NetworkError
	var parseErr *raceshot.ParseError
	switch {
	case errors.As(err, &netErr):
		r.Kind = KindNetwork
		r.Message = fmt.Sprintf("network error: %v", netErr.Err)
	case errors.As(err, &parseErr):
		r.Kind = KindParse
		r.Message = msgParseFailure
		r.StatusCode = parseErr.StatusCode
	case errors.Is(err, os.ErrNotExist):
		return fileNotFound(r)
	default:
		r.Kind = KindUnexpected
		r.Message = fmt.Sprintf("unexpected error: %v", err)
	}
	r.ErrorDetail = err.Error()
	return r
}
