package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()

	RespondWithJSON(w, http.StatusCreated, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "value", body["key"])
}

func TestRespondWithJSON_NilPayload(t *testing.T) {
	w := httptest.NewRecorder()

	RespondWithJSON(w, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()

	RespondWithError(w, http.StatusBadRequest, "Invalid request body")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body Response
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Invalid request body", body.Message)
}
