package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      stderrors.New("settings not found"),
			expected: "Error: settings not found",
		},
		{
			name:     "hinted error",
			err:      WithHint(stderrors.New("storage not initialized"), "run 'hush init' first"),
			expected: "Error: storage not initialized\n  hint: run 'hush init' first",
		},
		{
			name:     "wrapped hinted error",
			err:      fmt.Errorf("load: %w", WithHint(stderrors.New("no such file"), "check --config")),
			expected: "Error: load: no such file\n  hint: check --config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestWithHint(t *testing.T) {
	if WithHint(nil, "unused") != nil {
		t.Error("WithHint(nil) should return nil")
	}

	base := stderrors.New("base")
	err := WithHint(base, "do something")
	if !stderrors.Is(err, base) {
		t.Error("hinted error should unwrap to its cause")
	}
	if Hint(base) != "" {
		t.Error("plain error should have no hint")
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("unknown mode %q", "later")
	if got != `Error: unknown mode "later"` {
		t.Errorf("Formatf() = %q", got)
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(WithHint(stderrors.New("test error"), "test hint"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		out := stderr.String()
		if !strings.Contains(out, "Error: test error") || !strings.Contains(out, "hint: test hint") {
			t.Errorf("Fatal() stderr = %q", out)
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

// TestFatal_NilError tests that Fatal does nothing when passed a nil error
func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
