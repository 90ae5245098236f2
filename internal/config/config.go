// Package config loads the optional per-package release configuration file.
//
// A release target may carry a .fast-publish.yaml next to its package.json
// to override the remote name, tag prefix, commit message template, or the
// registry publish command. Every field has a default, so the file is only
// needed when a package deviates from the usual setup.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in each release target
// directory.
const FileName = ".fast-publish.yaml"

// Config holds the per-package release settings.
type Config struct {
	// Remote is the git remote that commits and tags are pushed to.
	Remote string `yaml:"remote"`

	// TagPrefix is prepended to the version when forming the release tag
	// (e.g. "v" produces "v1.2.3").
	TagPrefix string `yaml:"tagPrefix"`

	// CommitMessage is a printf-style template for the release commit and
	// annotated tag message. It receives the prefixed tag as its single
	// argument.
	CommitMessage string `yaml:"commitMessage"`

	// Registry configures the package-registry publish command.
	Registry RegistryConfig `yaml:"registry"`
}

// RegistryConfig describes how the registry publish subprocess is invoked.
type RegistryConfig struct {
	// Command is the registry binary, "ppm" by default (the Pulsar package
	// manager; "apm" works for legacy setups).
	Command string `yaml:"command"`

	// Args are the arguments placed before the tag argument,
	// ["publish", "--tag"] by default. The tag being published is always
	// appended as the final argument.
	Args []string `yaml:"args"`
}

// Default returns the configuration used when no .fast-publish.yaml exists.
func Default() Config {
	return Config{
		Remote:        "origin",
		TagPrefix:     "v",
		CommitMessage: "Prepare %s release",
		Registry: RegistryConfig{
			Command: "ppm",
			Args:    []string{"publish", "--tag"},
		},
	}
}

// Load reads <dir>/.fast-publish.yaml and merges it over the defaults.
// A missing file yields the defaults; an unparsable file is an error, since
// silently ignoring a typo'd config would release with the wrong settings.
func Load(dir string) (Config, error) {
	cfg := Default()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Unmarshal over the defaults: fields absent from the file keep their
	// default values, fields present override them.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// An explicitly empty command or args list falls back to the default;
	// there is no meaningful "publish with no command" configuration.
	if cfg.Registry.Command == "" {
		cfg.Registry.Command = Default().Registry.Command
	}
	if len(cfg.Registry.Args) == 0 {
		cfg.Registry.Args = Default().Registry.Args
	}
	if cfg.Remote == "" {
		cfg.Remote = Default().Remote
	}
	if cfg.CommitMessage == "" {
		cfg.CommitMessage = Default().CommitMessage
	}

	return cfg, nil
}

// Message formats the release commit/tag message for the given tag.
func (c Config) Message(tag string) string {
	return fmt.Sprintf(c.CommitMessage, tag)
}
