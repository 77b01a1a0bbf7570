package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/parkd-dev/parkd/internal/navigator"
	"github.com/parkd-dev/parkd/internal/roles"
	"github.com/parkd-dev/parkd/internal/session"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return output.String(), err
}

func TestRoutesCommand(t *testing.T) {
	t.Setenv("ROUTES_FILE", "")

	output, err := execute(t, NewRoutesCmd())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"redirect → /login",
		"/admin/dashboard",
		"role:admin",
		"role:user",
		"lazy",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestCheckCommand(t *testing.T) {
	t.Setenv("ROUTES_FILE", "")

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "anonymous to admin",
			args:     []string{"--to", "/admin/dashboard"},
			expected: "redirect /login",
		},
		{
			name:     "user to admin",
			args:     []string{"--to", "/admin/dashboard", "--username", "bob", "--role", "user"},
			expected: "redirect /login",
		},
		{
			name:     "admin to admin",
			args:     []string{"--to", "/admin/dashboard", "--username", "alice", "--role", "admin"},
			expected: "continue /admin/dashboard",
		},
		{
			name:     "anonymous to login",
			args:     []string{"--to", "/login"},
			expected: "continue /login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := execute(t, NewCheckCmd(), tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(output, tt.expected) {
				t.Errorf("expected %q in output, got: %s", tt.expected, output)
			}
		})
	}
}

func TestCheckCommand_Errors(t *testing.T) {
	t.Setenv("ROUTES_FILE", "")

	_, err := execute(t, NewCheckCmd(), "--to", "/nowhere")
	if !errors.Is(err, navigator.ErrRouteNotFound) {
		t.Errorf("expected ErrRouteNotFound, got %v", err)
	}

	_, err = execute(t, NewCheckCmd(), "--to", "/login", "--role", "owner")
	if !errors.Is(err, roles.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}

	if _, err := execute(t, NewCheckCmd()); err == nil {
		t.Error("expected error when --to is missing")
	}
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("SESSION_SECRET", "cli-secret")

	output, err := execute(t, NewTokenCmd(), "--username", "alice", "--role", "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	codec, err := session.NewTokenCodec("cli-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err := codec.Decode(strings.TrimSpace(output))
	if err != nil {
		t.Fatalf("failed to decode token: %v", err)
	}
	if s.Username != "alice" || s.Role != roles.Admin {
		t.Errorf("unexpected session %+v", s)
	}
}

func TestTokenCommand_NoSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := execute(t, NewTokenCmd(), "--username", "alice")
	if !errors.Is(err, session.ErrNoSecret) {
		t.Errorf("expected ErrNoSecret, got %v", err)
	}
}
