package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcsm/EVCS-BookingService/internal/auth"
	"github.com/evcsm/EVCS-BookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeVerifier struct {
	claims *auth.Claims
	err    error
}

func (f *fakeVerifier) Parse(string) (*auth.Claims, error) {
	return f.claims, f.err
}

func okHandler(captured **Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := PrincipalFromContext(r.Context()); ok {
			*captured = p
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareStoresPrincipal(t *testing.T) {
	claims := &auth.Claims{Role: string(domain.RoleEVOwner), Nic: "991234567V"}
	claims.Subject = "owner-1"
	mw := NewAuth(&fakeVerifier{claims: claims}, nopLogger{})

	var principal *Principal
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()

	mw.Middleware(okHandler(&principal)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, principal)
	assert.Equal(t, "owner-1", principal.UserID)
	assert.Equal(t, domain.RoleEVOwner, principal.Role)
	assert.Equal(t, "991234567V", principal.Nic)
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	mw := NewAuth(&fakeVerifier{}, nopLogger{})

	var principal *Principal
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()

	mw.Middleware(okHandler(&principal)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, principal)
}

func TestMiddlewareRejectsInvalidToken(t *testing.T) {
	mw := NewAuth(&fakeVerifier{err: errors.New("bad signature")}, nopLogger{})

	var principal *Principal
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()

	mw.Middleware(okHandler(&principal)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, principal)
}

func TestRequireRole(t *testing.T) {
	gate := RequireRole(domain.RoleBackoffice, domain.RoleEVOwner)

	run := func(p *Principal) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
		if p != nil {
			req = req.WithContext(WithPrincipal(req.Context(), p))
		}
		rec := httptest.NewRecorder()
		var captured *Principal
		gate(okHandler(&captured)).ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, run(&Principal{Role: domain.RoleBackoffice}).Code)
	assert.Equal(t, http.StatusOK, run(&Principal{Role: domain.RoleEVOwner}).Code)
	assert.Equal(t, http.StatusForbidden, run(&Principal{Role: domain.RoleStationOperator}).Code)
	assert.Equal(t, http.StatusUnauthorized, run(nil).Code)
}
