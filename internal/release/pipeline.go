// Package release implements the release pipeline: the ordered, fail-fast
// sequence that decides whether a release should proceed, computes the next
// version, rewrites the manifest, and performs the git and registry
// operations with recovery semantics.
//
// The pipeline is a linear state machine:
//
//	Start → (Gate) → Bump → Write → VcsRelease → {Done | Registry → (Recover) → Done}
//
// It is intentionally NOT transactional across the later steps. Once a
// commit and tag exist locally, the policy is always to try to get them
// pushed rather than to attempt a rollback: local history is cheap to leave
// behind, but an unpushed tag silently diverging from the remote is the
// failure mode users most want avoided.
package release

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/asiloisad/pulsar-fast-publish/internal/config"
	"github.com/asiloisad/pulsar-fast-publish/internal/manifest"
	"github.com/asiloisad/pulsar-fast-publish/internal/model"
	"github.com/asiloisad/pulsar-fast-publish/internal/semver"
	"github.com/asiloisad/pulsar-fast-publish/internal/vcs"
)

// Pipeline stage names used in failure outcomes, in addition to the
// vcs.Stage* constants for the git sub-steps.
const (
	StageConfig   = "config"
	StageBump     = "bump"
	StageWrite    = "write"
	StageRegistry = "registry"
	StageNoTag    = "no-tag"
)

// retryHint is appended to registry failure notifications: the commit and
// tag already exist, so the publish can be retried without bumping again.
const retryHint = "the tag was created and pushed; run `fast-publish retry` to publish it again"

// Pipeline orchestrates release runs. All collaborators are injected;
// the zero value is not usable, construct with NewPipeline.
type Pipeline struct {
	notifier Notifier

	// selectStrategy returns the git backend for a directory. Defaults to
	// vcs.Select (probe once, cache process-wide); tests inject doubles.
	selectStrategy func(dir string) vcs.Strategy

	// newRegistry builds the registry publisher for a loaded config.
	// Defaults to the subprocess-backed CommandRegistry.
	newRegistry func(cfg config.RegistryConfig) Registry

	// loadConfig reads the per-package configuration. Defaults to
	// config.Load.
	loadConfig func(dir string) (config.Config, error)
}

// Option customizes a Pipeline. Used by tests to substitute collaborators.
type Option func(*Pipeline)

// WithStrategy replaces the git backend selection.
func WithStrategy(fn func(dir string) vcs.Strategy) Option {
	return func(p *Pipeline) { p.selectStrategy = fn }
}

// WithRegistry replaces the registry publisher construction.
func WithRegistry(fn func(cfg config.RegistryConfig) Registry) Option {
	return func(p *Pipeline) { p.newRegistry = fn }
}

// WithConfigLoader replaces the per-package configuration loader.
func WithConfigLoader(fn func(dir string) (config.Config, error)) Option {
	return func(p *Pipeline) { p.loadConfig = fn }
}

// NewPipeline creates a Pipeline reporting to the given notifier.
func NewPipeline(notifier Notifier, opts ...Option) *Pipeline {
	p := &Pipeline{
		notifier:       notifier,
		selectStrategy: vcs.Select,
		newRegistry: func(cfg config.RegistryConfig) Registry {
			return NewCommandRegistry(cfg)
		},
		loadConfig: config.Load,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one release for the package at dir.
//
// mode selects the version component to bump. conditional gates the run on
// changes existing since the last tag. publish additionally invokes the
// registry publish command after the git steps succeed.
//
// Every error is converted into the returned Outcome and reported to the
// notifier; Run never panics and never returns an error — the caller
// inspects the Outcome.
func (p *Pipeline) Run(ctx context.Context, dir string, mode model.BumpMode, conditional, publish bool) model.Outcome {
	// Start: the package name defaults to the directory base name until the
	// manifest (which may carry a nicer name) has been read.
	pkg := filepath.Base(dir)

	cfg, err := p.loadConfig(dir)
	if err != nil {
		return p.fail(pkg, StageConfig, err.Error())
	}

	strategy := p.selectStrategy(dir)

	// Gate: a conditional run stops here when nothing changed since the
	// last tag. Nothing has been written or committed at this point.
	if conditional {
		detector := vcs.NewDetector(strategy)
		if !detector.HasChangesSinceLastTag(ctx, dir) {
			reason := "no changes since last tag"
			p.notifier.Info(fmt.Sprintf("%s: release skipped", pkg), reason)
			return model.Skipped(pkg, reason)
		}
	}

	// Bump: read the manifest and compute the next version. Failures here
	// are fatal to the run and nothing has been mutated yet.
	m, err := manifest.Load(dir)
	if err != nil {
		return p.fail(pkg, StageBump, err.Error())
	}
	pkg = m.Name()

	current, err := m.Version()
	if err != nil {
		return p.fail(pkg, StageBump, err.Error())
	}

	next := semver.Parse(current).Bump(mode)
	tag := next.Tag(cfg.TagPrefix)
	message := cfg.Message(tag)

	// Write: persist the bumped manifest. On failure the version is bumped
	// in memory only; no git state has changed.
	if err := m.WriteVersion(next.String()); err != nil {
		return p.fail(pkg, StageWrite, err.Error())
	}

	// VcsRelease: stage, commit, tag, push — strictly in order, each
	// depending on the state left by the previous one. The first failure
	// aborts the remaining sub-steps.
	vcs.ClearStaleLock(dir)

	steps := []struct {
		stage string
		run   func() error
	}{
		{vcs.StageAdd, func() error { return strategy.Stage(ctx, dir) }},
		{vcs.StageCommit, func() error { return strategy.Commit(ctx, dir, message) }},
		{vcs.StageTag, func() error { return strategy.Tag(ctx, dir, tag, message) }},
		{vcs.StagePush, func() error { return strategy.Push(ctx, dir, cfg.Remote) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return p.fail(pkg, stageOf(err, step.stage), detailOf(err))
		}
	}

	// Secondary registry publish, only in publish mode. A failure here does
	// NOT undo the commit and tag — Recover pushes them (best-effort, its
	// own errors ignored) so that any state a registry tool committed
	// locally is not stranded unpushed, then the registry error surfaces
	// with a hint that the existing tag can be republished.
	if publish {
		registry := p.newRegistry(cfg.Registry)
		if _, err := registry.Publish(ctx, dir, tag); err != nil {
			_ = strategy.Push(ctx, dir, cfg.Remote)

			detail := stripANSI(err.Error())
			p.notifier.Error(fmt.Sprintf("%s: registry publish failed", pkg),
				detail+"\n"+retryHint)
			return model.Failed(pkg, StageRegistry, detail)
		}
	}

	p.notifier.Success(fmt.Sprintf("%s: released %s", pkg, next),
		fmt.Sprintf("tagged %s and pushed to %s", tag, cfg.Remote))

	return model.Succeeded(pkg, next.String(), tag)
}

// PublishLatestTag republishes the most recent tag to the registry without
// bumping the version. This is the recovery operation for a run whose git
// steps succeeded but whose registry publish failed.
func (p *Pipeline) PublishLatestTag(ctx context.Context, dir string) model.Outcome {
	pkg := filepath.Base(dir)

	cfg, err := p.loadConfig(dir)
	if err != nil {
		return p.fail(pkg, StageConfig, err.Error())
	}

	if m, mErr := manifest.Load(dir); mErr == nil {
		pkg = m.Name()
	}

	strategy := p.selectStrategy(dir)
	vcs.ClearStaleLock(dir)

	tag, err := strategy.LatestTag(ctx, dir)
	if err != nil {
		if errors.Is(err, vcs.ErrNoTag) {
			return p.fail(pkg, StageNoTag, "repository has no tag to publish")
		}
		return p.fail(pkg, stageOf(err, vcs.StageDescribe), detailOf(err))
	}

	registry := p.newRegistry(cfg.Registry)
	if _, err := registry.Publish(ctx, dir, tag); err != nil {
		return p.fail(pkg, StageRegistry, stripANSI(err.Error()))
	}

	version := strings.TrimPrefix(tag, cfg.TagPrefix)
	p.notifier.Success(fmt.Sprintf("%s: published %s", pkg, tag), "")
	return model.Succeeded(pkg, version, tag)
}

// fail builds a failure outcome and reports it to the notifier in one place,
// so every failing path produces exactly one user-facing notification.
func (p *Pipeline) fail(pkg, stage, detail string) model.Outcome {
	detail = strings.TrimSpace(stripANSI(detail))
	p.notifier.Error(fmt.Sprintf("%s: %s failed", pkg, stage), detail)
	return model.Failed(pkg, stage, detail)
}

// stageOf extracts the stage name from a VcsError, falling back to the
// stage the pipeline was executing.
func stageOf(err error, fallback string) string {
	var vcsErr *vcs.VcsError
	if errors.As(err, &vcsErr) && vcsErr.Stage != "" {
		return vcsErr.Stage
	}
	return fallback
}

// detailOf extracts the diagnostic text from a VcsError, falling back to
// the error message.
func detailOf(err error) string {
	var vcsErr *vcs.VcsError
	if errors.As(err, &vcsErr) && vcsErr.Detail != "" {
		return vcsErr.Detail
	}
	return err.Error()
}
