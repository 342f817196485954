package exit

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestSuccess(t *testing.T) {
	message := "usage text"
	result := Success(message)

	if result.ExitCode != CodeSuccess {
		t.Errorf("Success() ExitCode = %d, want %d", result.ExitCode, CodeSuccess)
	}

	if result.Message != message {
		t.Errorf("Success() Message = %q, want %q", result.Message, message)
	}

	if result.Output != os.Stdout {
		t.Error("Success() expected output to stdout")
	}
}

func TestErrorf(t *testing.T) {
	result := Errorf("failed to load %s (document %d)", "a.json", 2)

	if result.ExitCode != CodeFailure {
		t.Errorf("Errorf() ExitCode = %d, want %d", result.ExitCode, CodeFailure)
	}

	expectedMessage := "failed to load a.json (document 2)"
	if result.Message != expectedMessage {
		t.Errorf("Errorf() Message = %q, want %q", result.Message, expectedMessage)
	}

	if result.Output != os.Stderr {
		t.Error("Errorf() expected output to stderr")
	}
}

func TestUsage(t *testing.T) {
	result := Usage(errors.New("no input files specified"), "Usage: jsonset")

	if result.ExitCode != CodeUsage {
		t.Errorf("Usage() ExitCode = %d, want %d", result.ExitCode, CodeUsage)
	}

	want := "Error: no input files specified\n\nUsage: jsonset\n"
	if result.Message != want {
		t.Errorf("Usage() Message = %q, want %q", result.Message, want)
	}

	if result.Output != os.Stderr {
		t.Error("Usage() expected output to stderr")
	}
}

func TestFromError(t *testing.T) {
	result := FromError(errors.New("boom"))

	if result.ExitCode != CodeFailure {
		t.Errorf("FromError() ExitCode = %d, want %d", result.ExitCode, CodeFailure)
	}
	if !strings.HasPrefix(result.Message, "Error: boom") {
		t.Errorf("FromError() Message = %q", result.Message)
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	result := &Result{
		Output:   &buf,
		ExitCode: CodeFailure,
		Message:  "test output",
	}

	result.Print()

	if buf.String() != "test output" {
		t.Errorf("Print() output = %q, want %q", buf.String(), "test output")
	}
}
