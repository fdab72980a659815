package upload

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/raceshot-upload/internal/raceshot"
	"github.com/five82/raceshot-upload/internal/raceshot/raceshottest"
)

type recordingClient struct {
	calls []raceshot.Photo
	reply func(raceshot.Photo) (*raceshot.Response, error)
}

func (c *recordingClient) Upload(_ context.Context, _ string, photo raceshot.Photo) (*raceshot.Response, error) {
	c.calls = append(c.calls, photo)
	if c.reply == nil {
		return &raceshot.Response{StatusCode: http.StatusOK, Body: raceshot.Body{Success: true}}, nil
	}
	return c.reply(photo)
}

type countingSaver struct {
	tokens []string
}

func (s *countingSaver) Save(token string) {
	s.tokens = append(s.tokens, token)
}

func writeImages(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("img-"+name), 0o600))
		paths = append(paths, path)
	}
	return paths
}

func TestRun_InvalidBatchSendsNothing(t *testing.T) {
	for _, price := range []string{"60", "0", "-5", "abc", "61.5"} {
		t.Run(price, func(t *testing.T) {
			client := &recordingClient{}
			b := validBatch()
			b.Files = writeImages(t, "a.jpg", "b.jpg")
			b.Price = price

			results, err := New(client, nil).Run(context.Background(), b)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "error %v is not a *ValidationError", err)
			assert.Nil(t, results)
			assert.Empty(t, client.calls)
		})
	}
}

func TestRun_OneRequestPerFileInOrder(t *testing.T) {
	client := &recordingClient{}
	b := validBatch()
	b.Files = writeImages(t, "c.jpg", "a.jpg", "b.jpg")
	b.EventID = "  evt-9 "
	b.BibNumber = "123"

	results, err := New(client, nil).Run(context.Background(), b)
	require.NoError(t, err)

	require.Len(t, client.calls, 3)
	require.Len(t, results, 3)
	for i, path := range b.Files {
		assert.Equal(t, path, client.calls[i].Path)
		assert.Equal(t, "evt-9", client.calls[i].EventID)
		assert.Equal(t, "123", client.calls[i].BibNumber)
		assert.Equal(t, 100, client.calls[i].Price)
		assert.Equal(t, filepath.Base(path), results[i].FileName)
	}
	assert.True(t, results.Succeeded())
}

func TestRun_MissingFileSkipsRequest(t *testing.T) {
	client := &recordingClient{}
	existing := writeImages(t, "a.jpg", "c.jpg")
	missing := filepath.Join(t.TempDir(), "b.jpg")

	b := validBatch()
	b.Files = []string{existing[0], missing, existing[1]}

	results, err := New(client, nil).Run(context.Background(), b)
	require.NoError(t, err)

	require.Len(t, results, 3)
	require.Len(t, client.calls, 2)
	assert.Equal(t, existing[0], client.calls[0].Path)
	assert.Equal(t, existing[1], client.calls[1].Path)

	assert.False(t, results[1].Success)
	assert.Equal(t, KindFileNotFound, results[1].Kind)
	assert.Equal(t, "file not found: "+missing, results[1].Message)
	assert.True(t, results[0].Success)
	assert.True(t, results[2].Success)
	assert.False(t, results.Succeeded())
}

func TestRun_MixedOutcomesAgainstFakeAPI(t *testing.T) {
	srv := raceshottest.NewServer(t, func(u raceshottest.Upload) raceshottest.Reply {
		if u.FileName == "a.jpg" {
			return raceshottest.Reply{Body: gin.H{"success": true, "photoId": "p1", "originalFileId": "o1", "message": "ok"}}
		}
		return raceshottest.Reply{Status: http.StatusBadRequest, Body: gin.H{"success": false, "error": "bad bib"}}
	})
	client, err := raceshot.NewClient(srv.URL(), 0)
	require.NoError(t, err)

	b := validBatch()
	b.Files = writeImages(t, "a.jpg", "b.jpg")

	results, err := New(client, nil).Run(context.Background(), b)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].Success)
	assert.Equal(t, "a.jpg", results[0].FileName)
	assert.Equal(t, "p1", results[0].PhotoID)
	assert.Equal(t, "o1", results[0].OriginalFileID)
	assert.Equal(t, "ok", results[0].Message)
	assert.Equal(t, http.StatusOK, results[0].StatusCode)

	assert.False(t, results[1].Success)
	assert.Equal(t, "b.jpg", results[1].FileName)
	assert.Equal(t, "bad bib", results[1].Message)
	assert.Equal(t, http.StatusBadRequest, results[1].StatusCode)
	assert.Equal(t, KindApplication, results[1].Kind)

	assert.False(t, results.Succeeded())

	uploads := srv.Uploads()
	require.Len(t, uploads, 2)
	assert.Equal(t, "Bearer tok", uploads[0].Authorization)
	assert.Equal(t, "100", uploads[1].Price)
}

func TestRun_SuccessFlagWithoutErrorIsUnknownError(t *testing.T) {
	srv := raceshottest.NewServer(t, func(raceshottest.Upload) raceshottest.Reply {
		return raceshottest.Reply{Body: gin.H{"success": false}}
	})
	client, err := raceshot.NewClient(srv.URL(), 0)
	require.NoError(t, err)

	b := validBatch()
	b.Files = writeImages(t, "a.jpg")

	results, err := New(client, nil).Run(context.Background(), b)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "unknown error", results[0].Message)
	assert.Equal(t, http.StatusOK, results[0].StatusCode)
}

func TestRun_NonJSONResponseIsParseFailure(t *testing.T) {
	srv := raceshottest.NewServer(t, func(raceshottest.Upload) raceshottest.Reply {
		return raceshottest.Reply{Status: http.StatusBadGateway, Raw: "<html>oops</html>"}
	})
	client, err := raceshot.NewClient(srv.URL(), 0)
	require.NoError(t, err)

	b := validBatch()
	b.Files = writeImages(t, "a.jpg", "b.jpg")

	results, err := New(client, nil).Run(context.Background(), b)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, KindParse, r.Kind)
		assert.Equal(t, "could not parse response", r.Message)
		assert.Equal(t, http.StatusBadGateway, r.StatusCode)
	}
	assert.Len(t, srv.Uploads(), 2)
}

func TestRun_UnreachableEndpointRecordsEveryFile(t *testing.T) {
	client, err := raceshot.NewClient(raceshottest.UnreachableURL(t), 0)
	require.NoError(t, err)

	b := validBatch()
	b.Files = writeImages(t, "a.jpg", "b.jpg", "c.jpg")

	results, err := New(client, nil).Run(context.Background(), b)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.False(t, r.Success)
		assert.Equal(t, KindNetwork, r.Kind)
		assert.Contains(t, r.Message, "network error")
		assert.Zero(t, r.StatusCode)
	}
}

func TestRun_UnexpectedClientError(t *testing.T) {
	client := &recordingClient{reply: func(raceshot.Photo) (*raceshot.Response, error) {
		return nil, errors.New("boom")
	}}
	b := validBatch()
	b.Files = writeImages(t, "a.jpg")

	results, err := New(client, nil).Run(context.Background(), b)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, KindUnexpected, results[0].Kind)
	assert.Equal(t, "boom", results[0].ErrorDetail)
}

func TestSubmit_SavesCredentialOnlyWhenAllSucceed(t *testing.T) {
	failSecond := func(p raceshot.Photo) (*raceshot.Response, error) {
		if filepath.Base(p.Path) == "b.jpg" {
			return &raceshot.Response{StatusCode: http.StatusForbidden, Body: raceshot.Body{Error: "forbidden"}}, nil
		}
		return &raceshot.Response{StatusCode: http.StatusOK, Body: raceshot.Body{Success: true}}, nil
	}

	t.Run("all succeed", func(t *testing.T) {
		saver := &countingSaver{}
		b := validBatch()
		b.Credential = " tok "
		b.Files = writeImages(t, "a.jpg", "c.jpg")

		results, err := New(&recordingClient{reply: failSecond}, nil).Submit(context.Background(), b, saver)
		require.NoError(t, err)
		assert.True(t, results.Succeeded())
		assert.Equal(t, []string{" tok "}, saver.tokens)
	})

	t.Run("one fails", func(t *testing.T) {
		saver := &countingSaver{}
		b := validBatch()
		b.Files = writeImages(t, "a.jpg", "b.jpg")

		results, err := New(&recordingClient{reply: failSecond}, nil).Submit(context.Background(), b, saver)
		require.NoError(t, err)
		assert.False(t, results.Succeeded())
		assert.Empty(t, saver.tokens)
	})

	t.Run("validation fails", func(t *testing.T) {
		saver := &countingSaver{}
		b := validBatch()
		b.Location = ""

		_, err := New(&recordingClient{}, nil).Submit(context.Background(), b, saver)
		require.Error(t, err)
		assert.Empty(t, saver.tokens)
	})

	t.Run("nil saver", func(t *testing.T) {
		b := validBatch()
		b.Files = writeImages(t, "a.jpg")

		_, err := New(&recordingClient{}, nil).Submit(context.Background(), b, nil)
		require.NoError(t, err)
	})
}
