package ui

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/raceshot-upload/internal/prefs"
	"github.com/five82/raceshot-upload/internal/raceshot"
	"github.com/five82/raceshot-upload/internal/upload"
)

type stubClient struct {
	calls  int
	status int
	err    error
}

func (s *stubClient) Upload(context.Context, string, raceshot.Photo) (*raceshot.Response, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.status != http.StatusOK && s.status != 0 {
		return &raceshot.Response{StatusCode: s.status, Body: raceshot.Body{Error: "bad bib"}}, nil
	}
	return &raceshot.Response{StatusCode: http.StatusOK, Body: raceshot.Body{Success: true, PhotoID: "p1", Message: "ok"}}, nil
}

type recordingSaver struct {
	saved []string
}

func (r *recordingSaver) Save(token string) { r.saved = append(r.saved, token) }

func containsText(rendered, want string) bool {
	return strings.Contains(ansi.Strip(rendered), want)
}

func newTestModel(t *testing.T, client *stubClient, saver upload.CredentialSaver, values prefs.Prefs) Model {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	m := New(Options{
		Uploader:    upload.New(client, nil),
		Credentials: saver,
		Credential:  "tok",
		Prefs:       values,
		PrefsPath:   filepath.Join(t.TempDir(), "prefs.toml"),
		StartDir:    t.TempDir(),
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func withImage(t *testing.T, m Model) Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.jpg")
	if err := os.WriteFile(path, []byte("jpeg"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	m.form.toggleFile(path)
	return m
}

func press(m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

var (
	ctrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
	ctrlT = tea.KeyMsg{Type: tea.KeyCtrlT}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSubmit_InvalidFormIsRejectedWithoutUploading(t *testing.T) {
	client := &stubClient{}
	m := newTestModel(t, client, nil, prefs.Prefs{EventID: "evt", Location: "Finish", Price: "100"})

	m, cmd := press(m, ctrlS)

	if cmd != nil {
		t.Fatal("rejected submit should not return a command")
	}
	if m.uploading {
		t.Fatal("form locked after rejection")
	}
	if m.statusMsg != "❌ "+upload.ReasonNoFiles {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
	modal, ok := m.modal.(resultModal)
	if !ok || modal.ok || modal.title != titleRejected || modal.detail != upload.ReasonNoFiles {
		t.Fatalf("modal = %#v", m.modal)
	}
	if client.calls != 0 {
		t.Fatalf("client called %d times", client.calls)
	}
}

func TestSubmit_LocksFormUntilBatchFinishes(t *testing.T) {
	client := &stubClient{}
	saver := &recordingSaver{}
	m := withImage(t, newTestModel(t, client, saver, prefs.Prefs{EventID: "evt", Location: "Finish", Price: "100"}))
	m.form.focusOn(fieldEventID)

	m, cmd := press(m, ctrlS)
	if !m.uploading || cmd == nil {
		t.Fatalf("uploading = %v, cmd = %v; want locked form and a command", m.uploading, cmd)
	}
	if !containsText(m.View(), uploadingText) {
		t.Fatal("view does not show the uploading message")
	}

	m, _ = press(m, runes("x"))
	if got := m.form.eventID.Value(); got != "evt" {
		t.Fatalf("event id edited while uploading: %q", got)
	}

	done := uploadCmd(m.ctx, m.uploader, m.form.batch(), m.credentials)()
	next, _ := m.Update(done)
	m = next.(Model)

	if m.uploading {
		t.Fatal("form still locked after batch finished")
	}
	if !m.statusOK || !strings.Contains(m.statusMsg, "✅ a.jpg uploaded (photo id p1): ok") {
		t.Fatalf("status = %v %q", m.statusOK, m.statusMsg)
	}
	modal, ok := m.modal.(resultModal)
	if !ok || !modal.ok || modal.title != titleSucceeded {
		t.Fatalf("modal = %#v", m.modal)
	}
	if len(saver.saved) != 1 || saver.saved[0] != "tok" {
		t.Fatalf("saved = %v, want [tok]", saver.saved)
	}

	p, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.EventID != "evt" || p.Location != "Finish" || p.Price != "100" {
		t.Fatalf("remembered prefs = %+v", p)
	}
}

func TestSubmit_FailedBatchDoesNotSaveCredential(t *testing.T) {
	client := &stubClient{status: http.StatusBadRequest}
	saver := &recordingSaver{}
	m := withImage(t, newTestModel(t, client, saver, prefs.Prefs{EventID: "evt", Location: "Finish", Price: "100"}))

	m, _ = press(m, ctrlS)
	next, _ := m.Update(uploadCmd(m.ctx, m.uploader, m.form.batch(), m.credentials)())
	m = next.(Model)

	if m.statusOK {
		t.Fatal("status reports success for a failed batch")
	}
	if !strings.Contains(m.statusMsg, "❌ a.jpg failed: bad bib (status 400)") {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
	if modal, ok := m.modal.(resultModal); !ok || modal.title != titleFailed {
		t.Fatalf("modal = %#v", m.modal)
	}
	if len(saver.saved) != 0 {
		t.Fatalf("credential saved after failure: %v", saver.saved)
	}
}

func TestSubmit_NetworkFailureIsReported(t *testing.T) {
	client := &stubClient{err: &raceshot.NetworkError{Err: errors.New("connection refused")}}
	m := withImage(t, newTestModel(t, client, nil, prefs.Prefs{EventID: "evt", Location: "Finish", Price: "100"}))

	m, _ = press(m, ctrlS)
	next, _ := m.Update(uploadCmd(m.ctx, m.uploader, m.form.batch(), nil)())
	m = next.(Model)

	if !strings.Contains(m.statusMsg, "network error: connection refused") {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
}

func TestModal_AnyKeyDismisses(t *testing.T) {
	m := newTestModel(t, &stubClient{}, nil, prefs.Prefs{})
	m.modal = resultModal{title: titleFailed}

	if !containsText(m.View(), titleFailed) {
		t.Fatal("modal not rendered")
	}
	m, _ = press(m, runes("q"))
	if m.modal != nil {
		t.Fatal("modal still open")
	}
	if got := m.form.credential.Value(); got != "tok" {
		t.Fatalf("dismiss key reached the form: %q", got)
	}
}

func TestCycleTheme_PersistsPreference(t *testing.T) {
	m := newTestModel(t, &stubClient{}, nil, prefs.Prefs{Theme: "Nightfox"})

	m, _ = press(m, ctrlT)
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	p, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q", p.Theme)
	}
}

func TestLogsView_LoadsTail(t *testing.T) {
	m := newTestModel(t, &stubClient{}, nil, prefs.Prefs{})
	m.logPath = filepath.Join(t.TempDir(), "upload.log")
	line := `time=2026-10-19T09:30:01.000Z level=WARN msg="upload rejected" file=b.jpg status=400`
	if err := os.WriteFile(m.logPath, []byte(line+"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.currentView != ViewLogs || cmd == nil {
		t.Fatalf("view = %v, cmd = %v", m.currentView, cmd)
	}
	next, _ := m.Update(cmd())
	m = next.(Model)

	out := m.View()
	for _, want := range []string{"09:30:01", "WARN", "upload rejected", "file=b.jpg"} {
		if !containsText(out, want) {
			t.Fatalf("log view missing %q", want)
		}
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.currentView != ViewForm {
		t.Fatalf("esc left view at %v", m.currentView)
	}
}

func TestFormatLogLine_PassesThroughUnstructured(t *testing.T) {
	styles := GetTheme("Slate").Styles()
	if got := formatLogLine(styles, "panic: boom"); got != "panic: boom" {
		t.Fatalf("formatLogLine = %q", got)
	}
}
