package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cloudsync/internal/common"
	"github.com/dmitrijs2005/cloudsync/internal/logging"
)

// ---- helpers ----

type recordingNotifier struct {
	mu       sync.Mutex
	errors   []string
	succeses []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.succeses = append(n.succeses, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errors...)
}

func staticToken(token string) TokenSource {
	return TokenSourceFunc(func() string { return token })
}

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *recordingNotifier) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	n := &recordingNotifier{}
	c := New(srv.URL, staticToken(token), logging.NewDefault(), WithNotifier(n))
	return c, n
}

// ---- transport contract ----

func TestClient_DecoratesRequests(t *testing.T) {
	var gotAuth, gotReqID, gotContentType string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	})

	c, _ := newTestClient(t, handler, "tok123")
	_, err := c.Profile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.NotEmpty(t, gotReqID)
	assert.Empty(t, gotContentType, "GET without body must not claim a content type")
}

func TestClient_NoTokenNoAuthorizationHeader(t *testing.T) {
	var gotAuth string
	sawAuth := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, sawAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	})

	c, _ := newTestClient(t, handler, "")
	_, err := c.Profile(context.Background())
	require.NoError(t, err)

	assert.Empty(t, gotAuth)
	assert.False(t, sawAuth)
}

func TestClient_Unauthorized_FiresHookAndSkipsToast(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	})

	c, n := newTestClient(t, handler, "stale")

	var hookCalls atomic.Int32
	c.OnUnauthorized(func() { hookCalls.Add(1) })

	_, err := c.Profile(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "token expired", apiErr.Message)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	assert.Equal(t, int32(1), hookCalls.Load(), "401 must reach the hook")
	assert.Empty(t, n.Errors(), "401 is not toasted, the redirect is the UX")
}

func TestClient_ServerError_ToastsExtractedMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"database on fire"}`))
	})

	c, n := newTestClient(t, handler, "tok")
	_, err := c.Profile(context.Background())

	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "database on fire", apiErr.Message)
	assert.Equal(t, []string{"database on fire"}, n.Errors())
}

func TestClient_ServerError_FallsBackToGenericMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"not json", "oops"},
		{"json without message", `{"error":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				io.WriteString(w, tt.body)
			})

			c, n := newTestClient(t, handler, "tok")
			_, err := c.Profile(context.Background())

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, genericErrorMessage, apiErr.Message)
			assert.Equal(t, []string{genericErrorMessage}, n.Errors())
		})
	}
}

func TestClient_NetworkFailure_ClassifiedUnavailable(t *testing.T) {
	n := &recordingNotifier{}
	c := New("http://127.0.0.1:1", staticToken("tok"), logging.NewDefault(), WithNotifier(n))

	_, err := c.Profile(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnavailable))
	assert.Equal(t, []string{genericErrorMessage}, n.Errors())
}

func TestClient_MultipartUpload(t *testing.T) {
	var fileName, content string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		fileName, content = hdr.Filename, string(data)
		w.Write([]byte(`{"id":"f1","originalName":"notes.txt"}`))
	})

	c, _ := newTestClient(t, handler, "tok")
	meta, err := c.UploadFile(context.Background(), "g1", "notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)

	assert.Equal(t, "notes.txt", fileName)
	assert.Equal(t, "hello", content)
	assert.Equal(t, "f1", meta.ID)
}

func TestClient_BlobDownload(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0x01, 0x02, 0x03})
	})

	c, _ := newTestClient(t, handler, "tok")
	data, err := c.DownloadFile(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, data)
}
