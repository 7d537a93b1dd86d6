package domain

import (
	"testing"
	"time"
)

func TestResolveTokenState(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token *ValidationToken
		want  TokenState
	}{
		{
			name:  "missing record",
			token: nil,
			want:  TokenStateUnknown,
		},
		{
			name:  "live token",
			token: &ValidationToken{ExpiresAt: now.Add(time.Hour)},
			want:  TokenStateValid,
		},
		{
			name:  "past expiry",
			token: &ValidationToken{ExpiresAt: now.Add(-time.Hour)},
			want:  TokenStateExpired,
		},
		{
			name:  "expiry instant itself is expired",
			token: &ValidationToken{ExpiresAt: now},
			want:  TokenStateExpired,
		},
		{
			name:  "consumed",
			token: &ValidationToken{Used: true, ExpiresAt: now.Add(time.Hour)},
			want:  TokenStateConsumed,
		},
		{
			name:  "consumed wins over expired",
			token: &ValidationToken{Used: true, ExpiresAt: now.Add(-time.Hour)},
			want:  TokenStateConsumed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveTokenState(tt.token, now); got != tt.want {
				t.Fatalf("ResolveTokenState = %q, want %q", got, tt.want)
			}
		})
	}
}
