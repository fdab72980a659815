package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/five82/raceshot-upload/internal/config"
	"github.com/five82/raceshot-upload/internal/raceshot"
	"github.com/five82/raceshot-upload/internal/upload"
)

var (
	// ErrPlaceholderToken means the sample token was never replaced.
	ErrPlaceholderToken = errors.New("api token is still " + config.PlaceholderToken + "; set api_token, " + config.EnvToken + " or --token")

	// ErrBatchFailed means at least one file did not upload.
	ErrBatchFailed = errors.New("one or more uploads failed")
)

// Overrides are command-line values layered over the config. Empty fields
// leave the config value in place.
type Overrides struct {
	Token     string
	Endpoint  string
	EventID   string
	BibNumber string
	Location  string
	Price     string
	Images    []string
}

// Apply returns cfg with the overrides applied and the batch it describes.
func (o Overrides) Apply(cfg config.Config) (config.Config, upload.Batch) {
	if o.Token != "" {
		cfg.Token = o.Token
	}
	if o.Endpoint != "" {
		cfg.Endpoint = o.Endpoint
	}
	b := cfg.Batch()
	if o.EventID != "" {
		b.EventID = o.EventID
	}
	if o.BibNumber != "" {
		b.BibNumber = o.BibNumber
	}
	if o.Location != "" {
		b.Location = o.Location
	}
	if o.Price != "" {
		b.Price = o.Price
	}
	if len(o.Images) > 0 {
		b.Files = append([]string(nil), o.Images...)
	}
	return cfg, b
}

// Upload sends the configured batch and prints one line per file followed
// by the totals. It returns a *upload.ValidationError, ErrPlaceholderToken
// or ErrBatchFailed when the run should exit non-zero.
func Upload(ctx context.Context, cfg config.Config, o Overrides, out io.Writer, logger *slog.Logger) error {
	cfg, b := o.Apply(cfg)
	if cfg.HasPlaceholderToken() {
		return ErrPlaceholderToken
	}

	client, err := raceshot.NewClient(cfg.Endpoint, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("init raceshot client: %w", err)
	}

	fmt.Fprintf(out, "Event: %s, bib: %s, location: %s\n",
		strings.TrimSpace(b.EventID), strings.TrimSpace(b.BibNumber), strings.TrimSpace(b.Location))

	results, err := upload.New(client, logger).Run(ctx, b)
	if err != nil {
		fmt.Fprintln(out, upload.RejectionLine(err))
		return err
	}

	summary := upload.Report(results)
	fmt.Fprintln(out, summary.Text)
	fmt.Fprintln(out, summary.Totals())
	if !summary.OK {
		return ErrBatchFailed
	}
	return nil
}

// Check validates the configuration without contacting the API.
func Check(cfg config.Config, o Overrides, out io.Writer) error {
	cfg, b := o.Apply(cfg)
	if cfg.HasPlaceholderToken() {
		return ErrPlaceholderToken
	}
	client, err := raceshot.NewClient(cfg.Endpoint, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}
	if _, err := upload.Validate(b); err != nil {
		fmt.Fprintln(out, upload.RejectionLine(err))
		return err
	}

	var total uint64
	var missing []string
	for _, path := range b.Files {
		info, err := os.Stat(path)
		if err != nil {
			missing = append(missing, path)
			continue
		}
		total += uint64(info.Size())
	}

	fmt.Fprintf(out, "Endpoint: %s\n", client.Endpoint())
	fmt.Fprintf(out, "Event: %s, bib: %s, location: %s, price: %s\n",
		strings.TrimSpace(b.EventID), strings.TrimSpace(b.BibNumber), strings.TrimSpace(b.Location), strings.TrimSpace(b.Price))
	fmt.Fprintf(out, "Images: %d (%s)\n", len(b.Files)-len(missing), humanize.Bytes(total))
	for _, path := range missing {
		fmt.Fprintf(out, "⚠️ file not found: %s\n", path)
	}
	return nil
}
