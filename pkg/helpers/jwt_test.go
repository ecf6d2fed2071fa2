package helpers

import (
	"errors"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, exp, err := m.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if until := time.Until(exp); until < 59*time.Minute || until > time.Hour {
		t.Fatalf("unexpected expiry: %v from now", until)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("got uid %q, want user-123", claims.UserID)
	}
}

func TestJWTParseRejectsTampered(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	token, _, err := m.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Flip one byte in the signature segment.
	b := []byte(token)
	last := len(b) - 1
	if b[last] == 'A' {
		b[last] = 'B'
	} else {
		b[last] = 'A'
	}

	if _, err := m.Parse(string(b)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestJWTParseRejectsExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)
	token, _, err := m.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := m.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestJWTParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTManager("secret-a", time.Hour).Generate("user-123")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := NewJWTManager("secret-b", time.Hour).Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestJWTParseRejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Parse(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Parse(%q): got %v, want ErrInvalidToken", tok, err)
		}
	}
}
