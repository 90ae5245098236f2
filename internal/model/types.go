// Package model defines the domain types for the fast-publish CLI.
//
// All entities in this package represent the vocabulary of a release run:
// which version component to bump, whether the run is gated on the presence
// of changes since the last tag, and how a finished run is reported back to
// the caller. These types are used throughout the application for passing
// data between components.
package model

import (
	"fmt"
	"strings"
)

// BumpMode identifies which component of a semantic version is incremented
// by a release run.
type BumpMode string

const (
	// BumpMajor increments the major component and resets minor and patch.
	BumpMajor BumpMode = "major"

	// BumpMinor increments the minor component and resets patch.
	BumpMinor BumpMode = "minor"

	// BumpPatch increments the patch component only.
	BumpPatch BumpMode = "patch"
)

// conditionalSuffix marks a bump mode as gated on the presence of changes
// since the most recent tag ("patch-if", "minor-if", "major-if"). The suffix
// is a pipeline precondition only and is stripped before any version
// arithmetic.
const conditionalSuffix = "-if"

// String returns the string representation of BumpMode.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands and logging.
func (m BumpMode) String() string {
	return string(m)
}

// IsValid checks whether the BumpMode value is one of the
// predefined valid modes.
func (m BumpMode) IsValid() bool {
	switch m {
	case BumpMajor, BumpMinor, BumpPatch:
		return true
	default:
		return false
	}
}

// ParseBumpMode converts a string to a BumpMode, separating the optional
// "-if" conditional suffix from the mode itself. The returned bool reports
// whether the suffix was present, i.e. whether the caller should gate the
// release on changes existing since the last tag.
//
// Returns an error if the string (after suffix stripping) does not match
// any valid mode.
func ParseBumpMode(s string) (BumpMode, bool, error) {
	raw := strings.ToLower(strings.TrimSpace(s))

	conditional := strings.HasSuffix(raw, conditionalSuffix)
	if conditional {
		raw = strings.TrimSuffix(raw, conditionalSuffix)
	}

	mode := BumpMode(raw)
	if !mode.IsValid() {
		return "", false, fmt.Errorf("invalid bump mode: %q (valid: major, minor, patch, optionally suffixed with -if)", s)
	}
	return mode, conditional, nil
}

// OutcomeKind classifies how a release run ended.
type OutcomeKind string

const (
	// OutcomeSkipped indicates the run ended at the gate with nothing
	// written or committed.
	OutcomeSkipped OutcomeKind = "skipped"

	// OutcomeSucceeded indicates every step of the run completed.
	OutcomeSucceeded OutcomeKind = "succeeded"

	// OutcomeFailed indicates some step failed and the run stopped there.
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome is the result of a single pipeline invocation for one directory.
// It is reported once to the caller and never persisted.
type Outcome struct {
	// Kind classifies the result.
	Kind OutcomeKind `json:"kind"`

	// Package is the display name of the released package, derived from
	// the directory base name or the manifest "name" field.
	Package string `json:"package"`

	// Version is the new version for succeeded runs, empty otherwise.
	Version string `json:"version,omitempty"`

	// Tag is the tag that was created (or republished), empty otherwise.
	Tag string `json:"tag,omitempty"`

	// Reason explains a skip (e.g. "no changes since last tag").
	Reason string `json:"reason,omitempty"`

	// Stage names the failing step for failed runs
	// (gate, bump, write, stage, commit, tag, push, registry).
	Stage string `json:"stage,omitempty"`

	// Detail carries raw diagnostic text for failed runs, with terminal
	// color codes already stripped.
	Detail string `json:"detail,omitempty"`
}

// Skipped builds an Outcome for a run that stopped at the gate.
func Skipped(pkg, reason string) Outcome {
	return Outcome{Kind: OutcomeSkipped, Package: pkg, Reason: reason}
}

// Succeeded builds an Outcome for a fully completed run.
func Succeeded(pkg, version, tag string) Outcome {
	return Outcome{Kind: OutcomeSucceeded, Package: pkg, Version: version, Tag: tag}
}

// Failed builds an Outcome for a run that stopped at the named stage.
func Failed(pkg, stage, detail string) Outcome {
	return Outcome{Kind: OutcomeFailed, Package: pkg, Stage: stage, Detail: detail}
}

// ExitCode defines standard CLI exit codes. These codes allow scripts and
// CI systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitManifestError indicates package.json was missing or unparsable,
	// or could not be written back.
	ExitManifestError ExitCode = 2

	// ExitGitError indicates a Git operation (stage/commit/tag/push) failed.
	ExitGitError ExitCode = 3

	// ExitRegistryError indicates the registry publish command failed after
	// the Git steps had already completed.
	ExitRegistryError ExitCode = 4

	// ExitNoTag indicates a retry was requested but the repository has no
	// tag to republish.
	ExitNoTag ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
