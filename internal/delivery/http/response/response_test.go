package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "storefront/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool           `json:"success"`
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
	Meta *struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func newResponseTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestSuccess_CarriesRequestID(t *testing.T) {
	c, rec := newResponseTestContext(t)
	deliverycontext.SetRequestID(c, "req-123")

	require.NoError(t, Success(c, http.StatusOK, map[string]any{"id": float64(1)}, ""))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, http.StatusOK, body.Code)
	assert.Equal(t, "Success", body.Message)
	assert.Equal(t, float64(1), body.Data["id"])
	assert.Nil(t, body.Error)
	require.NotNil(t, body.Meta)
	assert.Equal(t, "req-123", body.Meta.RequestID)
}

func TestError_Envelope(t *testing.T) {
	c, rec := newResponseTestContext(t)
	deliverycontext.SetRequestID(c, "req-456")

	require.NoError(t, Error(c, http.StatusConflict, "DUPLICATE_EMAIL", "Email already in use", "unique constraint"))
	require.Equal(t, http.StatusConflict, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, http.StatusConflict, body.Code)
	assert.Equal(t, "Email already in use", body.Message)
	require.NotNil(t, body.Error)
	assert.Equal(t, "DUPLICATE_EMAIL", body.Error.Code)
	assert.Equal(t, "unique constraint", body.Error.Details)
	require.NotNil(t, body.Meta)
	assert.Equal(t, "req-456", body.Meta.RequestID)
}

func TestError_DefaultsMessageToStatusText(t *testing.T) {
	c, rec := newResponseTestContext(t)

	require.NoError(t, Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "", ""))

	body := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusText(http.StatusNotFound), body.Message)

	// Without the request-ID middleware a fresh ID is still assigned, so the
	// meta block is always present.
	require.NotNil(t, body.Meta)
	assert.NotEmpty(t, body.Meta.RequestID)
}
