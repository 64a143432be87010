// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSignAndParseAccountToken(t *testing.T) {
	token, err := SignAccountToken("acct-1", "secret", time.Hour)
	if err != nil {
		t.Fatalf("SignAccountToken() error = %v", err)
	}

	accountID, err := ParseAccountToken(token, "secret")
	if err != nil {
		t.Fatalf("ParseAccountToken() error = %v", err)
	}
	if accountID != "acct-1" {
		t.Errorf("ParseAccountToken() = %q, want %q", accountID, "acct-1")
	}
}

func TestParseAccountToken_WrongSecret(t *testing.T) {
	token, _ := SignAccountToken("acct-1", "secret", time.Hour)

	_, err := ParseAccountToken(token, "other-secret")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseAccountToken_Expired(t *testing.T) {
	token, _ := SignAccountToken("acct-1", "secret", -time.Minute)

	_, err := ParseAccountToken(token, "secret")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseAccountToken_Garbage(t *testing.T) {
	_, err := ParseAccountToken("not-a-jwt", "secret")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid", "Bearer abc123", "abc123", nil},
		{"lowercase scheme", "bearer abc123", "abc123", nil},
		{"missing header", "", "", ErrNoCredential},
		{"wrong scheme", "Basic abc123", "", ErrInvalidToken},
		{"empty token", "Bearer ", "", ErrInvalidToken},
		{"no space", "Bearerabc123", "", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			got, err := BearerToken(r)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("BearerToken() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BearerToken() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("BearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
