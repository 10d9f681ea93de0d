package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/farmlinkhq/farmlink-backend/internal/auth"
	pkgerrors "github.com/farmlinkhq/farmlink-backend/pkg/errors"
	"github.com/farmlinkhq/farmlink-backend/pkg/types"
)

type stubAuthService struct {
	req  *auth.LoginRequest
	resp *auth.LoginResponse
	err  error
}

func (s *stubAuthService) Login(_ context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	s.req = &req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := &stubAuthService{resp: &auth.LoginResponse{AccessToken: "token-123", ExpiresIn: 1800}}
	handler := AuthLogin(svc, nil)

	body := `{"email":"buyer@farmlink.example","password":"hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.req == nil || svc.req.Email != "buyer@farmlink.example" {
		t.Fatalf("request not forwarded to the service: %+v", svc.req)
	}

	var envelope struct {
		Data auth.LoginResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Data.AccessToken != "token-123" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestAuthLoginValidatesBody(t *testing.T) {
	tests := map[string]string{
		"missingEmail":    `{"password":"hunter22"}`,
		"malformedEmail":  `{"email":"not-an-email","password":"hunter22"}`,
		"missingPassword": `{"email":"buyer@farmlink.example"}`,
		"notJSON":         `email=buyer`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			svc := &stubAuthService{}
			handler := AuthLogin(svc, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if svc.req != nil {
				t.Fatal("service must not be called for invalid bodies")
			}
		})
	}
}

func TestAuthLoginMapsUnauthorized(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	handler := AuthLogin(svc, nil)

	body := `{"email":"buyer@farmlink.example","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Message != "invalid credentials" {
		t.Fatalf("unexpected error message %q", envelope.Error.Message)
	}
}
