// Package raceshottest runs a fake photographer upload endpoint for tests.
package raceshottest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// UploadPath is the route the fake server listens on.
const UploadPath = "/api/photographer/upload"

// Upload captures one received multipart submission.
type Upload struct {
	Authorization string
	FileName      string
	ContentType   string
	Content       []byte
	EventID       string
	BibNumber     string
	Location      string
	Price         string
}

// Reply controls what the server sends back. When Raw is set it is written
// verbatim as text/html; otherwise Body is encoded as JSON.
type Reply struct {
	Status int
	Body   any
	Raw    string
}

// Responder picks a reply for a received upload.
type Responder func(Upload) Reply

// Server is a fake upload endpoint that records every submission.
type Server struct {
	srv *httptest.Server

	mu      sync.Mutex
	uploads []Upload
}

// NewServer starts a server that answers with respond and closes it when the
// test ends.
func NewServer(t testing.TB, respond Responder) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{}
	r := gin.New()
	r.POST(UploadPath, func(c *gin.Context) {
		header, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "image is required"})
			return
		}
		upload := Upload{
			Authorization: c.GetHeader("Authorization"),
			FileName:      header.Filename,
			ContentType:   header.Header.Get("Content-Type"),
			EventID:       c.PostForm("eventId"),
			BibNumber:     c.PostForm("bibNumber"),
			Location:      c.PostForm("location"),
			Price:         c.PostForm("price"),
		}
		if f, err := header.Open(); err == nil {
			upload.Content, _ = io.ReadAll(f)
			_ = f.Close()
		}

		s.mu.Lock()
		s.uploads = append(s.uploads, upload)
		s.mu.Unlock()

		reply := respond(upload)
		if reply.Status == 0 {
			reply.Status = http.StatusOK
		}
		if reply.Raw != "" {
			c.Data(reply.Status, "text/html; charset=utf-8", []byte(reply.Raw))
			return
		}
		c.JSON(reply.Status, reply.Body)
	})

	s.srv = httptest.NewServer(r)
	t.Cleanup(s.srv.Close)
	return s
}

// URL returns the full upload endpoint.
func (s *Server) URL() string {
	return s.srv.URL + UploadPath
}

// Uploads returns a copy of everything received so far, in arrival order.
func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Upload, len(s.uploads))
	copy(out, s.uploads)
	return out
}

// Accept answers every upload with a success body whose photo id is derived
// from the file name.
func Accept(u Upload) Reply {
	base := strings.TrimSuffix(u.FileName, ".jpg")
	return Reply{Body: gin.H{
		"success":        true,
		"photoId":        "photo-" + base,
		"originalFileId": "orig-" + base,
		"message":        "ok",
	}}
}

// UnreachableURL returns an endpoint on a port nothing listens on anymore.
func UnreachableURL(t testing.TB) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + UploadPath
	srv.Close()
	return url
}
