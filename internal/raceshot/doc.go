// Package raceshot provides an HTTP client for the photographer upload API.
//
// # Overview
//
// The client sends one photo per call as a multipart/form-data POST and
// decodes the JSON reply. It knows nothing about batches, validation, or
// credential storage; those belong to the upload workflow.
//
// # Request Shape
//
//	POST <endpoint>
//	Authorization: Bearer <token>
//	Accept: application/json
//	User-Agent: raceshot-upload/0.1
//
//	image      binary file part, filename = base name of the path
//	eventId    string
//	bibNumber  string, may be empty
//	location   string
//	price      decimal integer
//
// The image part's Content-Type is chosen from the extension (.jpg, .jpeg,
// .png, .heic, .heif). Other extensions are sniffed from the first bytes of
// the file.
//
// # Response Handling
//
// Upload returns a *Response for any JSON reply, including 4xx and 5xx
// statuses, so callers can surface the server's "error" text together with
// the status code. Two typed errors cover the remaining cases:
//
//   - *NetworkError: connection refused, timeout, DNS failure, broken body
//   - *ParseError: the server replied with something other than JSON
//
// Any other error (for example a file that vanished between the caller's
// existence check and the open) is returned wrapped with fmt.Errorf.
//
// Identifiers in the reply may be JSON strings or numbers; both decode into
// the ID type.
//
// # Endpoint Formats
//
//   - "" → DefaultEndpoint
//   - "api.raceshot.app/api/photographer/upload" → https://api.raceshot.app/...
//   - "http://127.0.0.1:8080/upload" → used as-is
//
// # Testing
//
// Subpackage raceshottest runs a fake upload endpoint on httptest.Server that
// records every form it receives.
package raceshot
