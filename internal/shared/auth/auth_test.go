package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "dashboard-secret"

func signed(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func validClaims() Claims {
	return Claims{
		Roles: []string{"ADMIN"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestValidateHS256(t *testing.T) {
	v, err := NewJWTValidator(testSecret, "")
	require.NoError(t, err)

	claims, err := v.Validate(signed(t, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "jti-1", claims.SessionID)
	assert.True(t, claims.HasRole("admin"))
}

func TestValidateRejects(t *testing.T) {
	v, err := NewJWTValidator(testSecret, "")
	require.NoError(t, err)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	noSubject := validClaims()
	noSubject.Subject = ""

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{name: "empty", token: " ", want: ErrMissingToken},
		{name: "garbage", token: "not-a-jwt", want: ErrInvalidToken},
		{name: "expired", token: signed(t, expired), want: ErrInvalidToken},
		{name: "no subject", token: signed(t, noSubject), want: ErrInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := v.Validate(tc.token)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestNewJWTValidatorRejectsBadPEM(t *testing.T) {
	_, err := NewJWTValidator("", "-----BEGIN PUBLIC KEY-----\nnope\n-----END PUBLIC KEY-----")
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	v, err := NewJWTValidator(testSecret, "")
	require.NoError(t, err)
	e := echo.New()
	handler := Middleware(v, "admin", "manager")(func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		require.True(t, ok)
		return c.String(http.StatusOK, claims.Subject)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/tables", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, validClaims()))
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, "user-1", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/ws/dashboard?token="+signed(t, validClaims()), nil)
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	req = httptest.NewRequest(http.MethodGet, "/api/dashboard/tables", nil)
	err = handler(e.NewContext(req, httptest.NewRecorder()))
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)

	waiter := validClaims()
	waiter.Roles = []string{"waiter"}
	req = httptest.NewRequest(http.MethodGet, "/api/dashboard/tables", nil)
	req.Header.Set("Authorization", "bearer "+signed(t, waiter))
	err = handler(e.NewContext(req, httptest.NewRecorder()))
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("  bearer abc "))
	assert.Empty(t, BearerToken("Basic abc"))
	assert.Empty(t, BearerToken("Bearer"))
}
