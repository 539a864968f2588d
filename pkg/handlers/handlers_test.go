package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/cmdreview/pkg/handlers"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RespondJSON(rec, http.StatusCreated, struct {
		ID int `json:"id"`
	}{ID: 42})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":42}`, rec.Body.String())
}

func TestRespondError(t *testing.T) {
	t.Run("client error keeps message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handlers.RespondError(rec, slog.Default(), http.StatusBadRequest, errors.New("invalid command id filter"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"invalid command id filter"}`, rec.Body.String())
	})

	t.Run("server error is generic and logged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		rec := httptest.NewRecorder()

		handlers.RespondError(rec, logger, http.StatusInternalServerError, errors.New(`pq: relation "users" does not exist`))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
		assert.Contains(t, buf.String(), "relation")
	})
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Action string `json:"action"`
	}

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", `{"action":"next_command"}`, false},
		{"malformed", `{"action":`, true},
		{"unknown field", `{"action":"x","extra":1}`, true},
		{"trailing data", `{"action":"x"}{"action":"y"}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.input))
			var got body
			err := handlers.DecodeJSON(httptest.NewRecorder(), req, &got)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, handlers.ErrInvalidBody)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "next_command", got.Action)
		})
	}
}

func TestDecodeJSONOversized(t *testing.T) {
	payload, _ := json.Marshal(map[string]string{"action": strings.Repeat("x", 2<<20)})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))

	var got map[string]string
	assert.ErrorIs(t, handlers.DecodeJSON(httptest.NewRecorder(), req, &got), handlers.ErrInvalidBody)
}
