package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/skylinehq/building-api/internal/pkg/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, map[string]any{"hello": "world"}, resp.Data)
}

func TestMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Message(rec, http.StatusOK, "Apartment booked successfully")

	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Apartment booked successfully", resp.Message)
	assert.Nil(t, resp.Data)
}

func TestErrorAPIError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, apierrors.NewConflictError("Apartment already booked"))

	assert.Equal(t, http.StatusConflict, rec.Code)

	resp := decode(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "conflict", resp.Code)
	assert.Equal(t, "Apartment already booked", resp.Message)
}

func TestErrorUnknownError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, errors.New("pgx: broken pipe"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decode(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "internal_error", resp.Code)
	// The driver error text must never reach the client.
	assert.NotContains(t, resp.Message, "pgx")
}
