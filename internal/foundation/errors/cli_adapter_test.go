package errors

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation error", err: ValidationError("default locale not supported").Build(), expected: 2},
		{name: "config error", err: ConfigError("bad yaml").Build(), expected: 7},
		{name: "content error", err: ContentError("bad meta.json").Build(), expected: 9},
		{name: "locale error", err: LocaleError("missing key").Build(), expected: 9},
		{name: "render error", err: RenderError("template failed").Build(), expected: 11},
		{name: "filesystem error", err: FileSystemError("write failed").Build(), expected: 11},
		{name: "internal error", err: InternalError("bug").Build(), expected: 10},
		{name: "wrapped classified error", err: fmt.Errorf("stage: %w", ContentError("x").Build()), expected: 9},
		{name: "unclassified error", err: &customError{msg: "unknown error"}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.ExitCodeFor(tt.err)
			if got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{name: "nil error", err: nil, contains: ""},
		{
			name:     "internal error hidden in non-verbose mode",
			err:      InternalError("internal issue").Build(),
			contains: "use -v for details",
		},
		{
			name:     "content error shows message and path",
			err:      ContentError("parse work metadata").WithContext("path", "works/foo/meta.json").Build(),
			contains: "path: works/foo/meta.json",
		},
		{
			name:     "unclassified error",
			err:      &customError{msg: "something broke"},
			contains: "something broke",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.FormatError(tt.err)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("FormatError() = %q, want it to contain %q", got, tt.contains)
			}
		})
	}
}

func TestCLIErrorAdapter_VerboseShowsInternal(t *testing.T) {
	adapter := NewCLIErrorAdapter(true, nil)
	got := adapter.FormatError(InternalError("nil bundle").Build())
	if !strings.Contains(got, "nil bundle") {
		t.Errorf("verbose FormatError() = %q, want internal message", got)
	}
}

type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}
