// Package bootstrap wires configuration into a ready orchestrator.
package bootstrap

import (
	"fmt"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/adapter"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/config"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/enforcer"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/orchestrator"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
)

// NewOrchestrator builds the enforcer, every language adapter and the
// orchestrator from one configuration.
func NewOrchestrator(appCfg *config.AppConfig) (*orchestrator.Orchestrator, error) {
	enf, err := enforcer.New(appCfg.Sandbox)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	builders := map[string]func([]string) adapter.Adapter{
		"python":     func(f []string) adapter.Adapter { return adapter.NewPython(enf, f) },
		"cpp":        func(f []string) adapter.Adapter { return adapter.NewCpp(enf, f) },
		"c":          func(f []string) adapter.Adapter { return adapter.NewC(enf, f) },
		"javascript": func(f []string) adapter.Adapter { return adapter.NewJavaScript(enf, f) },
		"java":       func(f []string) adapter.Adapter { return adapter.NewJava(enf, f) },
	}
	adapters := make([]adapter.Adapter, 0, len(builders))
	for lang, build := range builders {
		flags, err := adapter.ParseExtraFlags(appCfg.Languages[lang].ExtraCompileFlags)
		if err != nil {
			return nil, fmt.Errorf("language %s: %w", lang, err)
		}
		adapters = append(adapters, build(flags))
	}

	langLimits := make(map[string]spec.ResourceLimits, len(appCfg.Languages))
	for lang, lc := range appCfg.Languages {
		langLimits[lang] = lc.Limits
	}

	return orchestrator.New(adapter.NewRegistry(adapters...), orchestrator.Options{
		WorkRoot:       appCfg.Judge.WorkRoot,
		MaxConcurrency: appCfg.Judge.MaxConcurrency,
		LanguageLimits: langLimits,
	}), nil
}
