package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/riadov001/Myjantesappv2/internal/domain"
)

func TestFacebookVerifier_Verify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("access_token"); got != "fb-token" {
			t.Errorf("access_token = %q, want %q", got, "fb-token")
		}
		if got := r.URL.Query().Get("fields"); got != "id,name,email,picture" {
			t.Errorf("fields = %q, want id,name,email,picture", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"fb-42","name":"Bob","email":"bob@example.com","picture":{"data":{"url":"https://img.example/b.png"}}}`))
	}))
	defer server.Close()

	verifier := NewFacebookVerifier(server.URL, time.Second, zap.NewNop())
	identity, err := verifier.Verify(context.Background(), "fb-token")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if identity.SubjectID != "fb-42" {
		t.Errorf("SubjectID = %q, want fb-42", identity.SubjectID)
	}
	if identity.Email != "bob@example.com" {
		t.Errorf("Email = %q, want bob@example.com", identity.Email)
	}
	if identity.AvatarURL != "https://img.example/b.png" {
		t.Errorf("AvatarURL = %q, want nested picture url", identity.AvatarURL)
	}
}

func TestFacebookVerifier_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"message":"bad token"}}`, http.StatusUnauthorized)
			},
		},
		{
			name: "missing email",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"id":"fb-42","name":"Bob"}`))
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(test.handler)
			defer server.Close()

			verifier := NewFacebookVerifier(server.URL, time.Second, zap.NewNop())
			if _, err := verifier.Verify(context.Background(), "fb-token"); !errors.Is(err, domain.ErrInvalidProviderToken) {
				t.Fatalf("Verify() error = %v, want ErrInvalidProviderToken", err)
			}
		})
	}
}
