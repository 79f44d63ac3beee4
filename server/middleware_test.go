// Copyright 2025 SpecForge
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	s := newTestServer(t, nil, newMemJobStore())
	s.cfg.Auth.JWTSecret = "test-secret"

	rec := doJSON(t, s.Router(), http.MethodGet, "/api/v1/jobs", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	s := newTestServer(t, nil, newMemJobStore())
	s.cfg.Auth.JWTSecret = "test-secret"

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", "user-1"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	s := newTestServer(t, nil, newMemJobStore())
	s.cfg.Auth.JWTSecret = "test-secret"

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "user-1"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthMiddleware_DisabledWithoutSecret(t *testing.T) {
	s := newTestServer(t, nil, newMemJobStore())

	rec := doJSON(t, s.Router(), http.MethodGet, "/api/v1/jobs", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	s := newTestServer(t, &fakeEngine{}, newMemJobStore())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated X-Request-ID header")
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "upstream-42")
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "upstream-42" {
		t.Errorf("X-Request-ID = %q, want upstream value preserved", got)
	}
}
