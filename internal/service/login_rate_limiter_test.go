package service

import (
	"testing"
	"time"
)

func TestLoginRateLimiter_AllowsUpToMax(t *testing.T) {
	limiter := NewLoginRateLimiter(time.Minute, 3)
	for i := 0; i < 3; i++ {
		if !limiter.Allow("doc@example.com") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if limiter.Allow("doc@example.com") {
		t.Fatal("fourth attempt should be denied")
	}
	// Otra clave no comparte la ventana.
	if !limiter.Allow("other@example.com") {
		t.Fatal("different key should be allowed")
	}
}
