// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/pdiddy/scribe-engine/pkg/types"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}\n", `{"a": 1}`},
		{"unfenced prose", "not fenced at all", "not fenced at all"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.in); got != tt.want {
				t.Errorf("StripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAlways(t *testing.T) {
	if !Always(true).Online() {
		t.Error("Always(true).Online() = false")
	}
	if Always(false).Online() {
		t.Error("Always(false).Online() = true")
	}
}

func TestConnectivityFunc(t *testing.T) {
	calls := 0
	var c Connectivity = ConnectivityFunc(func() bool {
		calls++
		return true
	})
	if !c.Online() || calls != 1 {
		t.Errorf("Online() wrapping broken: calls = %d", calls)
	}
}

func TestAnthropicWithoutKeyReturnsNoCredential(t *testing.T) {
	client := NewAnthropic(types.AIConfig{})
	_, err := client.Request(context.Background(), "hello", 64)
	if !errors.Is(err, ErrNoCredential) {
		t.Errorf("err = %v, want ErrNoCredential", err)
	}
}
