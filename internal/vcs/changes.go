package vcs

import (
	"context"
	"strings"
)

// Detector answers whether a repository has changed since its most recent
// tag. It drives the "-if" conditional bump modes: a gated release only
// proceeds when something changed since the last release marker.
type Detector struct {
	strategy Strategy
}

// NewDetector creates a Detector backed by the given strategy.
func NewDetector(strategy Strategy) *Detector {
	return &Detector{strategy: strategy}
}

// HasChangesSinceLastTag reports whether any commits since the most recent
// tag altered the tree. The check is deliberately textual: the diff between
// the last tag and HEAD is non-empty after trimming, nothing more — a
// line-ending-only change counts as changed.
//
// The detector fails open. If no tag exists yet (first release) or any step
// fails, it returns true: blocking a release on an ambiguous detection
// signal is worse than an unnecessary publish, and a fresh repository must
// never silently no-op its first conditional release.
func (d *Detector) HasChangesSinceLastTag(ctx context.Context, dir string) bool {
	ClearStaleLock(dir)

	tag, err := d.strategy.LatestTag(ctx, dir)
	if err != nil {
		return true
	}

	diff, err := d.strategy.DiffSinceTag(ctx, dir, tag)
	if err != nil {
		return true
	}

	return strings.TrimSpace(diff) != ""
}
