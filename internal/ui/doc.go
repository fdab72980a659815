// Package ui implements the interactive upload form on Bubble Tea.
//
// # Screens
//
//   - Form: API token (masked), selected images, event ID, location, price,
//     optional bib number and an Upload button, above a status region that
//     shows the report for the last batch
//   - Picker: a filepicker limited to .jpg, .jpeg, .png, .heic and .heif;
//     each selection toggles the file in or out of the batch
//   - Log: the tail of the client's own log file
//
// # Uploading
//
// ctrl+s (or enter on the Upload button) validates the form first. A
// rejected batch is reported in the status region and a dialog without
// anything being sent. A valid batch runs inside a single tea.Cmd; until its
// result arrives every key except ctrl+c is ignored and a spinner replaces
// the button. The finished report colors the status region green or red and
// a dialog reads "All uploads succeeded" or "Upload failed".
//
// The credential is handed to the configured CredentialSaver only when every
// file succeeded. The event, location, price and bib values are written to
// the preferences file after each batch that passed validation, together
// with the theme.
//
// # Keys
//
// Letters belong to the text fields, so global bindings use modifiers:
// ctrl+t cycles the theme, ctrl+l toggles the log view, f1 shows help.
package ui
