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

func TestGoogleVerifier_Verify(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantErr  bool
		wantMail string
		wantSub  string
	}{
		{
			name: "maps tokeninfo response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("id_token"); got != "valid-token" {
					t.Errorf("id_token = %q, want %q", got, "valid-token")
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"sub":"g-123","email":"alice@example.com","name":"Alice","picture":"https://img.example/a.png"}`))
			},
			wantMail: "alice@example.com",
			wantSub:  "g-123",
		},
		{
			name: "rejects non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"invalid_token"}`, http.StatusBadRequest)
			},
			wantErr: true,
		},
		{
			name: "rejects response without email",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"sub":"g-123"}`))
			},
			wantErr: true,
		},
		{
			name: "rejects malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(test.handler)
			defer server.Close()

			verifier := NewGoogleVerifier(server.URL, time.Second, zap.NewNop())
			identity, err := verifier.Verify(context.Background(), "valid-token")

			if test.wantErr {
				if !errors.Is(err, domain.ErrInvalidProviderToken) {
					t.Fatalf("Verify() error = %v, want ErrInvalidProviderToken", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if identity.Email != test.wantMail {
				t.Errorf("Email = %q, want %q", identity.Email, test.wantMail)
			}
			if identity.SubjectID != test.wantSub {
				t.Errorf("SubjectID = %q, want %q", identity.SubjectID, test.wantSub)
			}
			if identity.Name != "Alice" || identity.AvatarURL != "https://img.example/a.png" {
				t.Errorf("unexpected identity mapping: %+v", identity)
			}
		})
	}
}

// Network failures look identical to rejected tokens from the outside.
func TestGoogleVerifier_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	verifier := NewGoogleVerifier(server.URL, time.Second, zap.NewNop())
	if _, err := verifier.Verify(context.Background(), "any"); !errors.Is(err, domain.ErrInvalidProviderToken) {
		t.Fatalf("Verify() error = %v, want ErrInvalidProviderToken", err)
	}
}
