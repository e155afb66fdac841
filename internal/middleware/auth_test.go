package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgrid/school-seat-reservation/internal/utils"
)

const testSecret = "middleware-test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured echo.Context
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, captured
}

func TestJWTAuthValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 42, 7, "ADMIN", 15)
	require.NoError(t, err)

	rec, c := runJWT(t, "Bearer "+at.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, uint64(42), c.Get(CtxUserID))
	assert.Equal(t, uint64(7), c.Get(CtxSchoolID))
	assert.Equal(t, "ADMIN", c.Get(CtxRole))
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _ := runJWT(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("some-other-secret", 42, 7, "ADMIN", 15)
	require.NoError(t, err)

	rec, _ := runJWT(t, "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 42, 7, "ADMIN", -5)
	require.NoError(t, err)

	rec, _ := runJWT(t, "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	guard := RequireRole("ADMIN", "EXAMINER")

	run := func(role string, set bool) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if set {
			c.Set(CtxRole, role)
		}
		h := guard(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
		require.NoError(t, h(c))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, run("ADMIN", true))
	assert.Equal(t, http.StatusOK, run("EXAMINER", true))
	assert.Equal(t, http.StatusForbidden, run("STUDENT", true))
	assert.Equal(t, http.StatusForbidden, run("", false)) // no JWTAuth upstream
}

func TestAsUint64(t *testing.T) {
	v, ok := asUint64(float64(12))
	assert.True(t, ok)
	assert.Equal(t, uint64(12), v)

	_, ok = asUint64(float64(-1))
	assert.False(t, ok)

	_, ok = asUint64("12")
	assert.False(t, ok)
}
