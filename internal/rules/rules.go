// Package rules provides keyword-based category suggestion from a YAML rule
// set. It is the offline fallback for the AI suggester: cheap, deterministic
// and always available.
package rules

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var embeddedRules []byte

// FallbackCategory is returned when no rule matches the description.
const FallbackCategory = "Other"

// Rule maps a category to the keywords that select it. Keywords match
// case-insensitively as substrings of the description.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// Engine evaluates rules in declaration order; the first match wins.
type Engine struct {
	rules []Rule
}

// LoadEmbedded builds an engine from the compiled-in rule set.
func LoadEmbedded() (*Engine, error) {
	return load(embeddedRules)
}

// LoadFromFile builds an engine from an external YAML rules file, letting
// deployments override the built-in keywords.
func LoadFromFile(path string) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return load(data)
}

func load(data []byte) (*Engine, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("rules file contains no rules")
	}
	for i, r := range f.Rules {
		if strings.TrimSpace(r.Category) == "" {
			return nil, fmt.Errorf("rule %d: empty category", i)
		}
		if len(r.Keywords) == 0 {
			return nil, fmt.Errorf("rule %d (%s): no keywords", i, r.Category)
		}
	}
	return &Engine{rules: f.Rules}, nil
}

// Suggest returns the category of the first rule with a keyword contained in
// the description, or FallbackCategory when nothing matches.
func (e *Engine) Suggest(description string) string {
	desc := strings.ToLower(description)
	for _, r := range e.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(desc, strings.ToLower(kw)) {
				return r.Category
			}
		}
	}
	return FallbackCategory
}
