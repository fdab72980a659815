package ui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/five82/raceshot-upload/internal/upload"
)

const (
	titleSucceeded = "All uploads succeeded"
	titleFailed    = "Upload failed"
	titleRejected  = "Cannot upload"
	uploadingText  = "Uploading, please wait..."
)

type uploadDoneMsg struct {
	batch   upload.Batch
	results upload.BatchResult
	err     error
}

// uploadCmd runs the whole batch inside one command. The model ignores input
// until the resulting uploadDoneMsg arrives.
func uploadCmd(ctx context.Context, up *upload.Uploader, b upload.Batch, saver upload.CredentialSaver) tea.Cmd {
	return func() tea.Msg {
		results, err := up.Submit(ctx, b, saver)
		return uploadDoneMsg{batch: b, results: results, err: err}
	}
}

// startUpload validates the form and, when it passes, locks the form and
// starts the batch.
func (m Model) startUpload() (tea.Model, tea.Cmd) {
	b := m.form.batch()
	if _, err := upload.Validate(b); err != nil {
		m.showRejection(err)
		return m, nil
	}
	if m.uploader == nil {
		m.showRejection(errors.New("uploader is not configured"))
		return m, nil
	}

	m.uploading = true
	m.statusOK = false
	m.statusMsg = ""
	m.status.SetContent(m.renderStatus())
	m.logger.Info("upload requested",
		"files", len(b.Files),
		"bytes", humanize.Bytes(uint64(m.form.totalSize())))
	return m, tea.Batch(
		m.spinner.Tick,
		uploadCmd(m.ctx, m.uploader, b, m.credentials),
	)
}

func (m *Model) finishUpload(msg uploadDoneMsg) {
	m.uploading = false

	if msg.err != nil {
		m.showRejection(msg.err)
		return
	}

	m.prefs.Remember(msg.batch.EventID, msg.batch.Location, msg.batch.Price, msg.batch.BibNumber)
	m.savePrefs()

	summary := upload.Report(msg.results)
	m.statusOK = summary.OK
	m.statusMsg = summary.Text + "\n\n" + summary.Totals()
	m.status.SetContent(m.renderStatus())
	m.status.GotoTop()

	title := titleFailed
	if summary.OK {
		title = titleSucceeded
	}
	m.modal = resultModal{ok: summary.OK, title: title, detail: summary.Totals()}
}

func (m *Model) showRejection(err error) {
	line := upload.RejectionLine(err)
	m.statusOK = false
	m.statusMsg = line
	m.status.SetContent(m.renderStatus())
	m.modal = resultModal{title: titleRejected, detail: strings.TrimPrefix(line, "❌ ")}
}
