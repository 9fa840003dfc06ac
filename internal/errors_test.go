package internal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		expected    string
	}{
		{"empty", "application/json", "  ", ""},
		{"detail", "application/json", `{"detail":"Authentication credentials were not provided."}`, "Authentication credentials were not provided."},
		{"error wins", "application/json", `{"error":"boom","detail":"ignored"}`, "boom"},
		{"field errors", "application/json", `{"password":["Too short.","Too common."],"email":["Invalid."]}`, "email: Invalid.; password: Too short. Too common."},
		{"html title", "text/html; charset=utf-8", "<html><head><title>502 Bad\n Gateway</title></head><body>nginx</body></html>", "502 Bad Gateway"},
		{"html h1", "text/html", "<html><body><h1>Server Error (500)</h1></body></html>", "Server Error (500)"},
		{"plain", "text/plain", "upstream timed out\n", "upstream timed out"},
		{"json without known fields", "application/json", `{"count":3}`, `{"count":3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errorMessage(tt.contentType, []byte(tt.body)))
		})
	}
}

func TestErrorMessageTruncates(t *testing.T) {
	msg := errorMessage("text/plain", []byte(strings.Repeat("x", 500)))
	assert.Len(t, msg, maxErrorMessage+3)
	assert.True(t, strings.HasSuffix(msg, "..."))
}
