package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"oncodx/internal/service"
)

func authRouter(repo *mockDoctorRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	jwtSvc := service.NewJWTService("secret", 15*time.Minute, 30*time.Minute)
	doctorSvc := service.NewDoctorService(zap.NewNop(), repo, service.NewLoginRateLimiter(time.Minute, 100))
	handler := NewAuthHandler(zap.NewNop(), doctorSvc, jwtSvc)

	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/refresh", handler.Refresh)
	r.GET("/doctor/me", JWTAuthMiddleware(jwtSvc, repo), handler.Me)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthFlow_RegisterLoginMe(t *testing.T) {
	repo := newMockDoctorRepo()
	r := authRouter(repo)

	rec := postJSON(r, "/auth/register", `{
		"full_name": "Dr. Grey",
		"email": "grey@example.com",
		"license_number": "MD-42",
		"password": "scalpel"
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(r, "/auth/login", `{"email": "grey@example.com", "password": "scalpel"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var pair service.TokenPair
	if err := json.Unmarshal(rec.Body.Bytes(), &pair); err != nil {
		t.Fatalf("decode tokens: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token pair, got %s", rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/doctor/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", rec.Code)
	}
	var me map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me["email"] != "grey@example.com" || me["license_number"] != "MD-42" {
		t.Fatalf("unexpected profile: %v", me)
	}
}

func TestAuthFlow_DuplicateRegistration(t *testing.T) {
	r := authRouter(newMockDoctorRepo())

	body := `{"email": "doc@example.com", "password": "pw"}`
	if rec := postJSON(r, "/auth/register", body); rec.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", rec.Code)
	}
	rec := postJSON(r, "/auth/register", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d", rec.Code)
	}
}

func TestAuthFlow_InvalidLogin(t *testing.T) {
	r := authRouter(newMockDoctorRepo())

	if rec := postJSON(r, "/auth/register", `{"email": "doc@example.com", "password": "right"}`); rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", rec.Code)
	}
	rec := postJSON(r, "/auth/login", `{"email": "doc@example.com", "password": "wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthFlow_RefreshRotation(t *testing.T) {
	repo := newMockDoctorRepo()
	r := authRouter(repo)

	postJSON(r, "/auth/register", `{"email": "doc@example.com", "password": "pw"}`)
	rec := postJSON(r, "/auth/login", `{"email": "doc@example.com", "password": "pw"}`)
	var pair service.TokenPair
	if err := json.Unmarshal(rec.Body.Bytes(), &pair); err != nil {
		t.Fatalf("decode tokens: %v", err)
	}

	rec = postJSON(r, "/auth/refresh", `{"refresh_token": "`+pair.RefreshToken+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// El refresh token ya rotado no puede reutilizarse.
	rec = postJSON(r, "/auth/refresh", `{"refresh_token": "`+pair.RefreshToken+`"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("reused refresh: expected 401, got %d", rec.Code)
	}
}
