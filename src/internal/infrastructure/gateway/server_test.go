package gateway

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Niko-MM/BonusLinkBot/src/internal/application/dialog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubHandler records the updates it receives and returns a configured error.
type stubHandler struct {
	updates []dialog.Update
	err     error
}

func (h *stubHandler) HandleUpdate(u dialog.Update) error {
	h.updates = append(h.updates, u)
	return h.err
}

func testServer(handler UpdateHandler) *httptest.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httptest.NewServer(NewServer(":0", handler, logger).Router())
}

// Test 1: a well-formed update is decoded and handed to the dispatcher
func TestServer_HandleUpdate_DeliversToDispatcher(t *testing.T) {
	// Arrange
	handler := &stubHandler{}
	srv := testServer(handler)
	defer srv.Close()

	body := `{"actor_id":100,"username":"ivan","full_name":"Иван Петров","text":"/start"}`

	// Act
	resp, err := http.Post(srv.URL+"/v1/updates", "application/json", strings.NewReader(body))

	// Assert
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	require.Len(t, handler.updates, 1)
	assert.Equal(t, int64(100), handler.updates[0].ActorID)
	assert.Equal(t, "/start", handler.updates[0].Text)
	assert.Empty(t, handler.updates[0].CallbackPayload)
}

// Test 2: a callback update carries the payload through
func TestServer_HandleUpdate_CallbackPayload(t *testing.T) {
	// Arrange
	handler := &stubHandler{}
	srv := testServer(handler)
	defer srv.Close()

	body := `{"actor_id":555,"callback_payload":"purchase_confirm:483920:14"}`

	// Act
	resp, err := http.Post(srv.URL+"/v1/updates", "application/json", strings.NewReader(body))

	// Assert
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	require.Len(t, handler.updates, 1)
	assert.Equal(t, "purchase_confirm:483920:14", handler.updates[0].CallbackPayload)
}

// Test 3: malformed JSON is rejected with 400 and never reaches the dispatcher
func TestServer_HandleUpdate_MalformedPayload(t *testing.T) {
	// Arrange
	handler := &stubHandler{}
	srv := testServer(handler)
	defer srv.Close()

	// Act
	resp, err := http.Post(srv.URL+"/v1/updates", "application/json", strings.NewReader("{not json"))

	// Assert
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, handler.updates)
}

// Test 4: a dispatcher failure maps to 500
func TestServer_HandleUpdate_DispatcherFailure(t *testing.T) {
	// Arrange
	handler := &stubHandler{err: errors.New("notifier unavailable")}
	srv := testServer(handler)
	defer srv.Close()

	// Act
	resp, err := http.Post(srv.URL+"/v1/updates", "application/json",
		strings.NewReader(`{"actor_id":100,"text":"/start"}`))

	// Assert
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

// Test 5: the health endpoint answers ok
func TestServer_Healthz(t *testing.T) {
	// Arrange
	srv := testServer(&stubHandler{})
	defer srv.Close()

	// Act
	resp, err := http.Get(srv.URL + "/healthz")

	// Assert
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"status":"ok"`)
}
