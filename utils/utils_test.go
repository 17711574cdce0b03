package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, http.StatusNotFound, "Machine not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Machine not found"}`, rec.Body.String())
}

func TestRespondWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithJSON(rec, http.StatusCreated, M{"favorited": true})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"favorited":true}`, rec.Body.String())
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 1200.5, ParseFloat("1200.5"))
	assert.Zero(t, ParseFloat("not-a-number"))
	assert.Equal(t, 42, ParseInt("42"))
	assert.Zero(t, ParseInt(""))
}

func TestCheckFieldKinds(t *testing.T) {
	kinds := map[string]string{
		"amount":  "number",
		"name":    "string",
		"active":  "bool",
		"address": "object",
	}

	assert.Empty(t, CheckFieldKinds(map[string]interface{}{
		"amount":  4800.0,
		"name":    "Ramesh",
		"active":  true,
		"address": map[string]interface{}{"state": "Haryana"},
		"unknown": "passes through",
	}, kinds))

	assert.NotEmpty(t, CheckFieldKinds(map[string]interface{}{"amount": "abc"}, kinds))
	assert.NotEmpty(t, CheckFieldKinds(map[string]interface{}{"active": "yes"}, kinds))
	assert.NotEmpty(t, CheckFieldKinds(map[string]interface{}{"name": 42.0}, kinds))
	assert.NotEmpty(t, CheckFieldKinds(map[string]interface{}{"address": "Karnal"}, kinds))
}

func TestParseDate(t *testing.T) {
	d := ParseDate("2025-03-15")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), *d)

	assert.Nil(t, ParseDate(""))
	assert.Nil(t, ParseDate("15-03-2025"))
	assert.Nil(t, ParseDate("2025-13-40"))
}
