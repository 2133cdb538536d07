package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andeshop/tienda-api/internal/common"
)

func TestRequireAuthPassesUserID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "Ana", "ana@example.com", "secret-password")
	require.NoError(t, err)
	result, err := svc.Login(ctx, "ana@example.com", "secret-password")
	require.NoError(t, err)

	mw := Middleware{Service: svc}
	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = common.UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+result.AccessToken)
	rec := httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, created.ID.String(), gotUserID)
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	svc, _ := newTestService(t)
	mw := Middleware{Service: svc}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	mw.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	})).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	base := time.Now()
	svc.WithNow(func() time.Time { return base })
	_, err := svc.Register(ctx, "Ana", "ana@example.com", "secret-password")
	require.NoError(t, err)
	result, err := svc.Login(ctx, "ana@example.com", "secret-password")
	require.NoError(t, err)
	svc.WithNow(func() time.Time { return base.Add(time.Hour) })

	mw := Middleware{Service: svc}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+result.AccessToken)
	rec := httptest.NewRecorder()
	mw.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	})).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "Ana", "ana@example.com", "secret-password")
	require.NoError(t, err)

	mw := Middleware{Service: svc}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	authedReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return req.WithContext(common.WithUserID(req.Context(), created.ID.String()))
	}

	rec := httptest.NewRecorder()
	mw.RequireRole("admin")(next).ServeHTTP(rec, authedReq())
	require.Equal(t, http.StatusForbidden, rec.Code)

	cred := store.users["ana@example.com"]
	cred.Roles = append(cred.Roles, "admin")
	store.users["ana@example.com"] = cred

	rec = httptest.NewRecorder()
	mw.RequireRole("admin")(next).ServeHTTP(rec, authedReq())
	require.Equal(t, http.StatusOK, rec.Code)
}
