package home

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestGetHomeContentSections(t *testing.T) {
	router := httprouter.New()
	router.GET("/api/home/:section", GetHomeContent)

	for _, section := range []string{"machines", "types", "seasonal-tips", "locations"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/home/"+section, nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, section)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"), section)
		assert.NotEmpty(t, rec.Body.String(), section)
	}
}

func TestGetHomeContentUnknownSection(t *testing.T) {
	router := httprouter.New()
	router.GET("/api/home/:section", GetHomeContent)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/home/stocks", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
