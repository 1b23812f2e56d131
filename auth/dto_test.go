package auth

import (
	"strings"
	"testing"

	"github.com/user/projectman-go/apperror"
)

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{"valid", RegisterRequest{Username: "alice", Password: "hunter2"}, false},
		{"username at minimum length", RegisterRequest{Username: "abc", Password: "hunter2"}, false},
		{"username too short", RegisterRequest{Username: "ab", Password: "hunter2"}, true},
		{"username too long", RegisterRequest{Username: strings.Repeat("a", 51), Password: "hunter2"}, true},
		{"password too short", RegisterRequest{Username: "alice", Password: "short"}, true},
		{"password at minimum length", RegisterRequest{Username: "alice", Password: "123456"}, false},
		{"empty request", RegisterRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				if !apperror.IsValidationError(err) {
					t.Fatalf("got %v, want a validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
