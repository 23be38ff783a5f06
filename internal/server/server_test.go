package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/xoshiro/internal/config"
	"github.com/lox/xoshiro/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, seed uint64, chunkSize int) (*Server, string) {
	t.Helper()

	cfg := config.Default()
	cfg.Stream.Seed = seed
	cfg.Stream.ChunkSize = chunkSize

	s := New(cfg, log.New(io.Discard), nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		_ = s.Stop()
		ts.Close()
	})

	return s, "ws" + strings.TrimPrefix(ts.URL, "http")
}

func readChunks(t *testing.T, url string, n int) [][]byte {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url+"/stream", nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	chunks := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		kind, data, err := conn.ReadMessage()
		require.NoError(t, err)
		require.Equal(t, websocket.BinaryMessage, kind)
		chunks = append(chunks, data)
	}
	return chunks
}

func TestStreamIsDeterministicForSeed(t *testing.T) {
	_, url := newTestServer(t, 7, 64)

	chunks := readChunks(t, url, 3)

	// The first connection streams the base generator itself.
	expected := rng.SeedFromUint64(7)
	for i, chunk := range chunks {
		want := make([]byte, 64)
		expected.FillBytes(want)
		assert.Equal(t, want, chunk, "chunk %d", i)
	}
}

func TestConnectionsGetDisjointSubstreams(t *testing.T) {
	_, url := newTestServer(t, 7, 64)

	first := readChunks(t, url, 1)[0]
	second := readChunks(t, url, 1)[0]

	// The second connection starts one jump (2^128 draws) ahead.
	expected := rng.SeedFromUint64(7)
	expected.Jump()
	want := make([]byte, 64)
	expected.FillBytes(want)

	assert.Equal(t, want, second)
	assert.NotEqual(t, first, second)
}

func TestHealthEndpoint(t *testing.T) {
	cfg := config.Default()
	s := New(cfg, log.New(io.Discard), nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}
