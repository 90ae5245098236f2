package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBumpMode_String verifies that BumpMode values produce the expected
// string representations for CLI output and logging.
func TestBumpMode_String(t *testing.T) {
	tests := []struct {
		mode     BumpMode
		expected string
	}{
		{BumpMajor, "major"},
		{BumpMinor, "minor"},
		{BumpPatch, "patch"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.mode.String())
		})
	}
}

// TestBumpMode_IsValid checks that only defined modes pass validation.
func TestBumpMode_IsValid(t *testing.T) {
	assert.True(t, BumpMajor.IsValid())
	assert.True(t, BumpMinor.IsValid())
	assert.True(t, BumpPatch.IsValid())
	assert.False(t, BumpMode("invalid").IsValid())
	assert.False(t, BumpMode("").IsValid())
}

// TestParseBumpMode verifies string-to-mode conversion, including the "-if"
// conditional suffix, case normalization, and error cases. The effective
// mode returned never carries the suffix — version arithmetic downstream
// must only ever see plain major/minor/patch.
func TestParseBumpMode(t *testing.T) {
	tests := []struct {
		input       string
		expected    BumpMode
		conditional bool
		hasError    bool
	}{
		{"major", BumpMajor, false, false},
		{"minor", BumpMinor, false, false},
		{"patch", BumpPatch, false, false},
		{"major-if", BumpMajor, true, false},
		{"minor-if", BumpMinor, true, false},
		{"patch-if", BumpPatch, true, false},
		{"Patch", BumpPatch, false, false},   // case insensitive
		{"PATCH-IF", BumpPatch, true, false}, // case insensitive
		{" patch ", BumpPatch, false, false}, // surrounding whitespace
		{"-if", "", false, true},             // suffix alone is not a mode
		{"release", "", false, true},         // unknown value
		{"", "", false, true},                // empty string
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, conditional, err := ParseBumpMode(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
			assert.Equal(t, tt.conditional, conditional)
		})
	}
}

// TestOutcomeConstructors verifies that the three outcome constructors fill
// exactly the fields relevant to their kind.
func TestOutcomeConstructors(t *testing.T) {
	skipped := Skipped("my-package", "no changes since last tag")
	assert.Equal(t, OutcomeSkipped, skipped.Kind)
	assert.Equal(t, "my-package", skipped.Package)
	assert.Equal(t, "no changes since last tag", skipped.Reason)
	assert.Empty(t, skipped.Version)

	succeeded := Succeeded("my-package", "1.1.0", "v1.1.0")
	assert.Equal(t, OutcomeSucceeded, succeeded.Kind)
	assert.Equal(t, "1.1.0", succeeded.Version)
	assert.Equal(t, "v1.1.0", succeeded.Tag)
	assert.Empty(t, succeeded.Stage)

	failed := Failed("my-package", "push", "remote rejected")
	assert.Equal(t, OutcomeFailed, failed.Kind)
	assert.Equal(t, "push", failed.Stage)
	assert.Equal(t, "remote rejected", failed.Detail)
	assert.Empty(t, failed.Version)
}

// TestCLIError verifies the Error and Unwrap behavior of CLIError,
// with and without an underlying error.
func TestCLIError(t *testing.T) {
	plain := NewCLIError(ExitNoTag, "no tag found")
	assert.Equal(t, "no tag found", plain.Error())
	assert.Nil(t, plain.Unwrap())
	assert.Equal(t, ExitNoTag, plain.Code)

	underlying := errors.New("exit status 128")
	wrapped := WrapCLIError(ExitGitError, "git push failed", underlying)
	assert.Equal(t, "git push failed: exit status 128", wrapped.Error())

	// errors.Is should find the underlying error through Unwrap.
	assert.True(t, errors.Is(wrapped, underlying))

	// errors.As should recover the CLIError from a wrapped chain.
	var cliErr *CLIError
	require.True(t, errors.As(error(wrapped), &cliErr))
	assert.Equal(t, ExitGitError, cliErr.Code)
}
