package server_test

import (
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdmakr/claude-notify/internal/model"
	"github.com/nerdmakr/claude-notify/internal/server"
	"github.com/nerdmakr/claude-notify/tests/testutil"
)

// fakeIngestor records Add calls for assertions.
type fakeIngestor struct {
	mu    sync.Mutex
	calls []model.Notification
}

func (f *fakeIngestor) Add(project, path, message string, startTime, endTime *time.Time, modelID string) model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := model.Notification{
		Project:   project,
		Path:      path,
		Message:   message,
		Timestamp: time.Now(),
		StartTime: startTime,
		EndTime:   endTime,
		Model:     modelID,
	}
	f.calls = append(f.calls, n)
	return n
}

func (f *fakeIngestor) added() []model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Notification(nil), f.calls...)
}

func startServer(t *testing.T) (*server.Server, *fakeIngestor) {
	t.Helper()

	ingestor := &fakeIngestor{}
	srv := server.New(ingestor, testutil.NewTestLogger())
	require.NoError(t, srv.Start(0))
	t.Cleanup(srv.Stop)

	return srv, ingestor
}

// roundTrip sends one raw request and returns the full raw response.
func roundTrip(t *testing.T, port int, raw string) string {
	t.Helper()

	conn, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte(raw))
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	data, err := io.ReadAll(conn)
	require.NoError(t, err)
	return string(data)
}

func request(method, path, body string) string {
	req := fmt.Sprintf("%s %s HTTP/1.1\r\nHost: 127.0.0.1\r\n", method, path)
	if body != "" {
		req += fmt.Sprintf("Content-Type: application/json\r\nContent-Length: %d\r\n", len(body))
	}
	return req + "\r\n" + body
}

func TestServer_Health(t *testing.T) {
	srv, _ := startServer(t)

	resp := roundTrip(t, srv.Port(), request("GET", "/health", ""))

	assert.True(t, strings.HasPrefix(resp, "HTTP/1.1 200 OK\r\n"))
	assert.Contains(t, resp, "Content-Type: text/plain\r\n")
	assert.Contains(t, resp, "Content-Length: 2\r\n")
	assert.Contains(t, resp, "Connection: close\r\n")
	assert.True(t, strings.HasSuffix(resp, "\r\n\r\nok"))
}

func TestServer_NotifyMinimalPayload(t *testing.T) {
	srv, ingestor := startServer(t)

	body := `{"project": "/home/u/projects/demo"}`
	resp := roundTrip(t, srv.Port(), request("POST", "/notify", body))

	assert.True(t, strings.HasPrefix(resp, "HTTP/1.1 200 OK\r\n"))

	calls := ingestor.added()
	require.Len(t, calls, 1)
	assert.Equal(t, "demo", calls[0].Project)
	assert.Equal(t, "/home/u/projects/demo", calls[0].Path)
	assert.Empty(t, calls[0].Message)
	assert.Nil(t, calls[0].StartTime)
	assert.Nil(t, calls[0].EndTime)
}

func TestServer_NotifyFullPayload(t *testing.T) {
	srv, ingestor := startServer(t)

	body := `{
		"project": "/home/u/projects/demo",
		"message": "Refactor finished",
		"model": "claude-opus-4-1-20250805",
		"startTime": "2025-06-01T10:00:00.000Z",
		"endTime": "2025-06-01T10:03:30.500Z"
	}`
	resp := roundTrip(t, srv.Port(), request("POST", "/notify", body))

	assert.True(t, strings.HasPrefix(resp, "HTTP/1.1 200 OK\r\n"))

	calls := ingestor.added()
	require.Len(t, calls, 1)
	n := calls[0]
	assert.Equal(t, "Refactor finished", n.Message)
	assert.Equal(t, "claude-opus-4-1-20250805", n.Model)
	require.NotNil(t, n.StartTime)
	require.NotNil(t, n.EndTime)
	assert.Equal(t, 210500*time.Millisecond, n.EndTime.Sub(*n.StartTime))
}

func TestServer_NotifyInvalidJSON(t *testing.T) {
	srv, ingestor := startServer(t)

	resp := roundTrip(t, srv.Port(), request("POST", "/notify", "{not json"))

	assert.True(t, strings.HasPrefix(resp, "HTTP/1.1 400 Bad Request\r\n"))
	assert.True(t, strings.HasSuffix(resp, "\r\n\r\nInvalid JSON"))
	assert.Empty(t, ingestor.added())
}

func TestServer_NotifyEmptyBody(t *testing.T) {
	srv, ingestor := startServer(t)

	resp := roundTrip(t, srv.Port(), request("POST", "/notify", ""))

	assert.True(t, strings.HasPrefix(resp, "HTTP/1.1 400 Bad Request\r\n"))
	assert.Empty(t, ingestor.added())
}

func TestServer_NotifyMissingProject(t *testing.T) {
	srv, ingestor := startServer(t)

	resp := roundTrip(t, srv.Port(), request("POST", "/notify", `{"message": "hi"}`))

	assert.True(t, strings.HasPrefix(resp, "HTTP/1.1 400 Bad Request\r\n"))
	assert.Empty(t, ingestor.added())
}

func TestServer_NotifyUnparsableTimesAreAbsent(t *testing.T) {
	srv, ingestor := startServer(t)

	body := `{"project": "/p/demo", "startTime": "yesterday", "endTime": ""}`
	resp := roundTrip(t, srv.Port(), request("POST", "/notify", body))

	assert.True(t, strings.HasPrefix(resp, "HTTP/1.1 200 OK\r\n"))

	calls := ingestor.added()
	require.Len(t, calls, 1)
	assert.Nil(t, calls[0].StartTime)
	assert.Nil(t, calls[0].EndTime)
}

func TestServer_UnknownPath(t *testing.T) {
	srv, _ := startServer(t)

	resp := roundTrip(t, srv.Port(), request("GET", "/nope", ""))

	assert.True(t, strings.HasPrefix(resp, "HTTP/1.1 404 Not Found\r\n"))
	assert.True(t, strings.HasSuffix(resp, "\r\n\r\nNot Found"))
}

func TestServer_NotifyRequiresPost(t *testing.T) {
	srv, ingestor := startServer(t)

	resp := roundTrip(t, srv.Port(), request("GET", "/notify", ""))

	assert.True(t, strings.HasPrefix(resp, "HTTP/1.1 404 Not Found\r\n"))
	assert.Empty(t, ingestor.added())
}

func TestServer_HealthAnyMethod(t *testing.T) {
	srv, _ := startServer(t)

	resp := roundTrip(t, srv.Port(), request("POST", "/health", ""))

	assert.True(t, strings.HasPrefix(resp, "HTTP/1.1 200 OK\r\n"))
}

func TestServer_ClosesConnectionAfterResponse(t *testing.T) {
	srv, _ := startServer(t)

	conn, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", srv.Port()))
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte(request("GET", "/health", "")))
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	data, err := io.ReadAll(conn)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// A second read hits EOF because the server closed the connection.
	n, err := conn.Read(make([]byte, 1))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}
