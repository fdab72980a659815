package raceshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// Uploader defines the single call the upload workflow needs.
// This interface is implemented by *Client and can be used for testing.
type Uploader interface {
	Upload(ctx context.Context, token string, photo Photo) (*Response, error)
}

// Ensure Client implements Uploader at compile time.
var _ Uploader = (*Client)(nil)

// Client talks to the photographer upload endpoint.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultEndpoint is the production photographer upload URL.
	DefaultEndpoint  = "https://api.raceshot.app/api/photographer/upload"
	defaultUserAgent = "raceshot-upload/0.1"

	imageField     = "image"
	eventIDField   = "eventId"
	bibNumberField = "bibNumber"
	locationField  = "location"
	priceField     = "price"

	sniffLimit = 3072
)

// NewClient builds a Client for the given endpoint. A zero timeout leaves the
// http.Client default (no timeout) in place.
func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	return &Client{
		endpoint: u,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Endpoint returns the resolved upload URL.
func (c *Client) Endpoint() string {
	if c == nil || c.endpoint == nil {
		return ""
	}
	return c.endpoint.String()
}

// Upload posts one photo as a multipart form. A non-nil Response is returned
// whenever the server answered with a JSON body, whatever its status code.
// Transport failures come back as *NetworkError and non-JSON bodies as
// *ParseError.
func (c *Client) Upload(ctx context.Context, token string, photo Photo) (*Response, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}

	file, err := os.Open(photo.Path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = file.Close() }()

	body, contentType, err := encodeForm(file, photo)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(token))
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}

	var payload Body
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &ParseError{StatusCode: resp.StatusCode, Err: err}
	}
	return &Response{StatusCode: resp.StatusCode, Body: payload}, nil
}

func encodeForm(file io.Reader, photo Photo) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := filepath.Base(photo.Path)
	contentType, content, err := detectContentType(name, file)
	if err != nil {
		return nil, "", err
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, imageField, quoteEscaper.Replace(name)))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create image part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}

	fields := [][2]string{
		{eventIDField, photo.EventID},
		{bibNumberField, photo.BibNumber},
		{locationField, photo.Location},
		{priceField, strconv.Itoa(photo.Price)},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

var extensionTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".heic": "image/heif",
	".heif": "image/heif",
}

// detectContentType prefers the file extension and only sniffs the leading
// bytes when the extension is unknown. The returned reader replays any bytes
// consumed while sniffing.
func detectContentType(name string, r io.Reader) (string, io.Reader, error) {
	if ct, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct, r, nil
	}
	head := make([]byte, sniffLimit)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, fmt.Errorf("read image: %w", err)
	}
	head = head[:n]
	mime := mimetype.Detect(head)
	return mime.String(), io.MultiReader(bytes.NewReader(head), r), nil
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse endpoint %q: missing host", endpoint)
	}
	u.Fragment = ""
	return u, nil
}
