package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mrlokans/madinah-companion/internal/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRespondValidationError_FieldDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondValidationError(c, &validation.Error{Fields: map[string]string{"theme": "must be one of: light dark system"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "validation_failed", resp.Code)
	assert.Equal(t, map[string]any{"theme": "must be one of: light dark system"}, resp.Details)
}

func TestRespondValidationError_PlainError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondValidationError(c, errors.New("bad input"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "bad input", resp.Error)
	assert.Empty(t, resp.Code)
}

func TestRespondInternalError_HidesCause(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondInternalError(c, zap.New(core), errors.New("disk on fire"), "saving")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk on fire")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "saving", logs.All()[0].ContextMap()["context"])
}

func TestBindJSON(t *testing.T) {
	type request struct {
		Time string `json:"time" validate:"required,hhmm"`
	}

	tests := []struct {
		name     string
		body     string
		wantOK   bool
		wantCode int
	}{
		{name: "valid", body: `{"time":"07:30"}`, wantOK: true, wantCode: http.StatusOK},
		{name: "malformed JSON", body: `{"time":`, wantOK: false, wantCode: http.StatusBadRequest},
		{name: "fails validation", body: `{"time":"7:30"}`, wantOK: false, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("PUT", "/", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var req request
			ok := bindJSON(c, validation.New(), &req)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
