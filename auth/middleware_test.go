package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/user/projectman-go/config"
)

func testAuthConfig(secret string) config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            secret,
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 168 * time.Hour,
	}
}

// issueToken signs a token the way the auth service does. The nil pool is
// fine: token generation never touches the store.
func issueToken(t *testing.T, cfg config.AuthConfig, userID int, tokenType string, duration time.Duration) string {
	t.Helper()
	svc := NewAuthService(nil, cfg)
	token, _, err := svc.generateSpecificToken(userID, tokenType, duration)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func TestJWTMiddleware(t *testing.T) {
	cfg := testAuthConfig("test-secret")

	var gotUserID int
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := JWTMiddleware(&cfg)(next)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid access token passes",
			authHeader: "Bearer " + issueToken(t, cfg, 42, tokenTypeAccess, 15*time.Minute),
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header is rejected",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header is rejected",
			authHeader: "Token abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token signed with another secret is rejected",
			authHeader: "Bearer " + issueToken(t, testAuthConfig("other-secret"), 42, tokenTypeAccess, 15*time.Minute),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token is rejected",
			authHeader: "Bearer " + issueToken(t, cfg, 42, tokenTypeAccess, -time.Minute),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "refresh token does not grant access",
			authHeader: "Bearer " + issueToken(t, cfg, 42, tokenTypeRefresh, time.Hour),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID, gotOK = 0, false

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if !gotOK || gotUserID != 42 {
					t.Errorf("context user id = %d (ok=%v), want 42", gotUserID, gotOK)
				}
			}
		})
	}
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	cfg := testAuthConfig("test-secret")
	svc := NewAuthService(nil, cfg)

	access, _, err := svc.generateSpecificToken(7, tokenTypeAccess, 15*time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := svc.RefreshToken(context.Background(), access); err == nil {
		t.Fatal("an access token must not be accepted for refresh")
	}
}
