// Package server implements the local ingestion endpoint: a minimal
// loopback HTTP listener that translates completion events from coding
// assistant hooks into registry mutations. Each connection carries
// exactly one request and is closed after the response; there is no
// keep-alive, chunked transfer, or pipelining.
package server

import (
	"encoding/json"
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nerdmakr/claude-notify/internal/model"
)

// maxRequestBytes bounds the single read a connection gets. The whole
// request, headers and body, must arrive within it.
const maxRequestBytes = 64 * 1024

// Ingestor is the slice of the registry the endpoint drives.
type Ingestor interface {
	Add(project, path, message string, startTime, endTime *time.Time, modelID string) model.Notification
}

// notifyPayload is the JSON body accepted by POST /notify.
type notifyPayload struct {
	Project   string `json:"project"`
	Message   string `json:"message"`
	Model     string `json:"model"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Server accepts loopback connections and routes the two supported
// endpoints: GET /health and POST /notify.
type Server struct {
	ingestor Ingestor
	listener net.Listener
	logger   *logrus.Logger
}

// New creates a Server that feeds the given ingestor.
func New(ingestor Ingestor, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{ingestor: ingestor, logger: logger}
}

// Start binds 127.0.0.1:port and begins accepting connections on a
// background goroutine. Port 0 picks a free port, used by tests.
func (s *Server) Start(port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return fmt.Errorf("binding ingestion port %d: %w", port, err)
	}
	s.listener = ln
	s.logger.WithField("addr", ln.Addr().String()).Info("ingestion endpoint listening")

	go s.acceptLoop()
	return nil
}

// Stop closes the listener; in-flight connections finish on their own.
func (s *Server) Stop() {
	if s.listener != nil {
		s.listener.Close()
	}
}

// Port returns the bound port, valid after Start.
func (s *Server) Port() int {
	if s.listener == nil {
		return 0
	}
	return s.listener.Addr().(*net.TCPAddr).Port
}

// acceptLoop accepts connections until the listener closes. Each
// connection is handled on its own goroutine; mutations are serialized
// downstream by the registry loop, so handlers share no mutable state.
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handleConn(conn)
	}
}

// handleConn reads one request, writes one response, and closes. The
// request is assumed to arrive in a single read.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	buf := make([]byte, maxRequestBytes)
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		return
	}

	response := s.handleRequest(string(buf[:n]))
	if _, err := conn.Write([]byte(response)); err != nil {
		s.logger.WithError(err).Debug("failed to write response")
	}
}

// handleRequest parses the raw request text and routes it.
func (s *Server) handleRequest(request string) string {
	lines := strings.Split(request, "\r\n")
	if len(lines) == 0 {
		return httpResponse(400, "Bad Request")
	}

	parts := strings.Split(lines[0], " ")
	if len(parts) < 2 {
		return httpResponse(400, "Bad Request")
	}
	method, path := parts[0], parts[1]

	if path == "/health" {
		return httpResponse(200, "ok")
	}

	if path == "/notify" && method == "POST" {
		return s.handleNotify(request)
	}

	return httpResponse(404, "Not Found")
}

// handleNotify extracts the body after the blank-line separator, decodes
// the payload, and creates the record. No state is mutated on a bad
// payload.
func (s *Server) handleNotify(request string) string {
	_, body, found := strings.Cut(request, "\r\n\r\n")
	if !found {
		return httpResponse(400, "Invalid JSON")
	}

	var payload notifyPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil || payload.Project == "" {
		return httpResponse(400, "Invalid JSON")
	}

	projectName := filepath.Base(payload.Project)
	startTime := parseInstant(payload.StartTime)
	endTime := parseInstant(payload.EndTime)

	s.ingestor.Add(
		projectName,
		payload.Project,
		payload.Message,
		startTime,
		endTime,
		payload.Model,
	)

	return httpResponse(200, "ok")
}

// parseInstant parses an ISO-8601 timestamp with optional fractional
// seconds. An empty or unparsable value is treated as absent, not as an
// error.
func parseInstant(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil
	}
	return &t
}

// httpResponse renders a minimal close-delimited HTTP response.
func httpResponse(status int, body string) string {
	var reason string
	switch status {
	case 200:
		reason = "OK"
	case 400:
		reason = "Bad Request"
	default:
		reason = "Not Found"
	}

	return fmt.Sprintf(
		"HTTP/1.1 %d %s\r\nContent-Type: text/plain\r\nContent-Length: %d\r\nConnection: close\r\n\r\n%s",
		status, reason, len(body), body,
	)
}
