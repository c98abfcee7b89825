// Package config loads the judge daemon configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/enforcer"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
	"github.com/alexespinoza28/offline-leetcode-sub000/pkg/utils/logger"
)

const (
	defaultWorkRoot    = "/tmp/judge"
	defaultConcurrency = 4
)

// LanguageConfig overrides one language's defaults. Zero limit fields
// keep the adapter's built-in envelope.
type LanguageConfig struct {
	Limits            spec.ResourceLimits `yaml:"limits"`
	ExtraCompileFlags string              `yaml:"extraCompileFlags"`
}

// JudgeConfig holds grading settings.
type JudgeConfig struct {
	// WorkRoot is where per-submission scratch directories live.
	WorkRoot string `yaml:"workRoot"`

	// MaxConcurrency bounds how many test cases run at once.
	MaxConcurrency int `yaml:"maxConcurrency"`
}

// AppConfig holds the full daemon configuration.
type AppConfig struct {
	Judge     JudgeConfig               `yaml:"judge"`
	Sandbox   enforcer.Config           `yaml:"sandbox"`
	Languages map[string]LanguageConfig `yaml:"languages"`
	Logger    logger.Config             `yaml:"logger"`
}

// Default returns a working configuration for a bare invocation.
func Default() *AppConfig {
	return &AppConfig{
		Judge: JudgeConfig{
			WorkRoot:       defaultWorkRoot,
			MaxConcurrency: defaultConcurrency,
		},
		Sandbox: enforcer.DefaultConfig(),
		Logger: logger.Config{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads a YAML file and applies defaults for everything the file
// leaves unset.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file failed: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file failed: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.Judge.WorkRoot == "" {
		cfg.Judge.WorkRoot = def.Judge.WorkRoot
	}
	if cfg.Judge.MaxConcurrency <= 0 {
		cfg.Judge.MaxConcurrency = def.Judge.MaxConcurrency
	}
	if cfg.Sandbox.HelperPath == "" {
		cfg.Sandbox.HelperPath = def.Sandbox.HelperPath
	}
	if cfg.Sandbox.ReadBackLimitBytes <= 0 {
		cfg.Sandbox.ReadBackLimitBytes = def.Sandbox.ReadBackLimitBytes
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = def.Logger.Level
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = def.Logger.Format
	}
}

// Validate rejects configurations the daemon cannot honor.
func (c *AppConfig) Validate() error {
	if c.Sandbox.EnableSeccomp && c.Sandbox.SeccompProfile == "" {
		return fmt.Errorf("seccomp enabled without a profile path")
	}
	for lang, lc := range c.Languages {
		if err := lc.Limits.ValidateOverride(); err != nil {
			return fmt.Errorf("language %s limits: %w", lang, err)
		}
	}
	return nil
}
