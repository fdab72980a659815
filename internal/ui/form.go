package ui

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/raceshot-upload/internal/upload"
)

// field identifies a focusable row of the form.
type field int

const (
	fieldCredential field = iota
	fieldFiles
	fieldEventID
	fieldLocation
	fieldPrice
	fieldBib
	fieldSubmit
	fieldCount
)

func (f field) label() string {
	switch f {
	case fieldCredential:
		return "API token"
	case fieldFiles:
		return "Images"
	case fieldEventID:
		return "Event ID"
	case fieldLocation:
		return "Location"
	case fieldPrice:
		return "Price"
	case fieldBib:
		return "Bib number"
	default:
		return ""
	}
}

// formValues seeds the form.
type formValues struct {
	Credential string
	EventID    string
	Location   string
	Price      string
	BibNumber  string
}

type selectedFile struct {
	path string
	size int64
}

// form is the view-model behind the upload screen. Each text field is bound
// to its own textinput; batch reads them back explicitly.
type form struct {
	credential textinput.Model
	eventID    textinput.Model
	location   textinput.Model
	price      textinput.Model
	bib        textinput.Model

	files []selectedFile
	focus field
}

func newForm(v formValues) form {
	f := form{
		credential: newInput("Bearer token", v.Credential),
		eventID:    newInput("e.g. 00000", v.EventID),
		location:   newInput("e.g. Finish line", v.Location),
		price:      newInput("greater than 60", v.Price),
		bib:        newInput("optional", v.BibNumber),
	}
	f.credential.EchoMode = textinput.EchoPassword
	f.credential.EchoCharacter = '•'
	f.price.CharLimit = 9
	f.focusOn(fieldCredential)
	return f
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.Width = inputWidth
	ti.CharLimit = 256
	ti.SetValue(value)
	return ti
}

// input returns the text field for f, or nil for rows that are not text.
func (f *form) input(fd field) *textinput.Model {
	switch fd {
	case fieldCredential:
		return &f.credential
	case fieldEventID:
		return &f.eventID
	case fieldLocation:
		return &f.location
	case fieldPrice:
		return &f.price
	case fieldBib:
		return &f.bib
	default:
		return nil
	}
}

func (f *form) focusOn(fd field) tea.Cmd {
	if in := f.input(f.focus); in != nil {
		in.Blur()
	}
	f.focus = fd
	if in := f.input(fd); in != nil {
		return in.Focus()
	}
	return nil
}

func (f *form) next() tea.Cmd {
	return f.focusOn((f.focus + 1) % fieldCount)
}

func (f *form) prev() tea.Cmd {
	return f.focusOn((f.focus + fieldCount - 1) % fieldCount)
}

// update forwards a message to the focused text field.
func (f *form) update(msg tea.Msg) tea.Cmd {
	in := f.input(f.focus)
	if in == nil {
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

// toggleFile adds path to the batch, or removes it when already selected.
func (f *form) toggleFile(path string) {
	path = filepath.Clean(path)
	if i := slices.IndexFunc(f.files, func(s selectedFile) bool { return s.path == path }); i >= 0 {
		f.files = slices.Delete(f.files, i, i+1)
		return
	}
	sel := selectedFile{path: path}
	if info, err := os.Stat(path); err == nil {
		sel.size = info.Size()
	}
	f.files = append(f.files, sel)
}

func (f *form) clearFiles() {
	f.files = nil
}

func (f form) totalSize() int64 {
	var total int64
	for _, s := range f.files {
		total += s.size
	}
	return total
}

func (f form) paths() []string {
	paths := make([]string, 0, len(f.files))
	for _, s := range f.files {
		paths = append(paths, s.path)
	}
	return paths
}

// batch reads the current field values.
func (f form) batch() upload.Batch {
	return upload.Batch{
		Credential: f.credential.Value(),
		Files:      f.paths(),
		EventID:    f.eventID.Value(),
		BibNumber:  f.bib.Value(),
		Location:   f.location.Value(),
		Price:      f.price.Value(),
	}
}
