package raceshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Photo is one image plus the form fields sent alongside it.
type Photo struct {
	Path      string
	EventID   string
	BibNumber string
	Location  string
	Price     int
}

// Response pairs the HTTP status with the decoded JSON body.
type Response struct {
	StatusCode int
	Body       Body
}

// Accepted reports whether the server took the photo.
func (r *Response) Accepted() bool {
	return r != nil && r.StatusCode == http.StatusOK && r.Body.Success
}

// Body mirrors the upload endpoint payload for both outcomes.
type Body struct {
	Success        bool   `json:"success"`
	PhotoID        ID     `json:"photoId"`
	OriginalFileID ID     `json:"originalFileId"`
	CloudflareID   ID     `json:"cloudflareId"`
	Message        string `json:"message"`
	Error          string `json:"error"`
}

// ID holds an identifier the API may send as either a JSON string or number.
type ID string

// UnmarshalJSON accepts strings, numbers, and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the raw identifier.
func (id ID) String() string {
	return string(id)
}

// NetworkError wraps a transport failure: refused connection, timeout, DNS, or
// a body that could not be read.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("execute request: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError reports a response body that was not valid JSON.
type ParseError struct {
	StatusCode int
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decode response (status %d): %v", e.StatusCode, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
