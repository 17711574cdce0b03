package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"harvestharmony/auth"
	"harvestharmony/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityEcho(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Write([]byte(utils.GetUserIDFromContext(r.Context())))
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)

	Authenticate(identityEcho)(rec, req, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestAuthenticateRejectsBadToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})

	Authenticate(identityEcho)(rec, req, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateAcceptsCookie(t *testing.T) {
	token, err := auth.NewToken("u-42", "suresh", "operator")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})

	Authenticate(identityEcho)(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-42", rec.Body.String())
}

func TestAuthenticateAcceptsBearerHeader(t *testing.T) {
	token, err := auth.NewToken("u-43", "ramesh", "farmer")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	Authenticate(identityEcho)(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-43", rec.Body.String())
}

func TestOptionalAuthPassesThroughAnonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/home/machines", nil)

	OptionalAuth(identityEcho)(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
