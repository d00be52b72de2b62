package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPasswordClampsInvalidCost(t *testing.T) {
	for _, cost := range []int{0, -1, 99} {
		hash, err := HashPassword("s3cret", cost)
		if err != nil {
			t.Fatalf("HashPassword(cost=%d): %v", cost, err)
		}
		got, err := bcrypt.Cost([]byte(hash))
		if err != nil {
			t.Fatalf("read cost back: %v", err)
		}
		if got != bcrypt.DefaultCost {
			t.Fatalf("cost %d hashed at %d, want default %d", cost, got, bcrypt.DefaultCost)
		}
		if !VerifyPassword(hash, "s3cret") {
			t.Fatalf("hash from cost %d does not verify", cost)
		}
	}
}

func TestAccessTokenClaims(t *testing.T) {
	const secret = "test-secret"
	at, err := NewAccessToken(secret, "user-42", "customer", 1)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse issued token: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["sub"] != "user-42" {
		t.Fatalf("sub = %v, want user-42", claims["sub"])
	}
	if claims["role"] != "customer" {
		t.Fatalf("role = %v, want customer", claims["role"])
	}
	if at.Exp.IsZero() {
		t.Fatal("expiry not set")
	}
}
