package processor

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/pressroom-io/pressroom/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// CategoryRule maps a category to the keywords that indicate it. Rule order
// is significant: the first matching rule wins.
type CategoryRule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Rules drive the keyword fallback classifier and the boilerplate filter of
// the URL extractor. Loaded from YAML, with an embedded default set.
type Rules struct {
	Kind        string         `yaml:"kind"`
	Version     string         `yaml:"version"`
	Categories  []CategoryRule `yaml:"categories"`
	Boilerplate []string       `yaml:"boilerplate"`
}

func (r *Rules) Validate() error {
	for _, rule := range r.Categories {
		if _, ok := domain.ParseCategory(rule.Category); !ok {
			return fmt.Errorf("rule references unknown category: %s", rule.Category)
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("category %s has no keywords", rule.Category)
		}
	}
	return nil
}

// IsBoilerplate reports whether a paragraph matches any boilerplate pattern.
func (r *Rules) IsBoilerplate(paragraph string) bool {
	lower := strings.ToLower(paragraph)
	for _, pattern := range r.Boilerplate {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// ClassifyByKeywords runs the deterministic keyword classifier. ok is false
// when no rule matches.
func (r *Rules) ClassifyByKeywords(text string) (domain.Category, bool) {
	lower := strings.ToLower(text)
	for _, rule := range r.Categories {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				cat, ok := domain.ParseCategory(rule.Category)
				if ok {
					return cat, true
				}
			}
		}
	}
	return "", false
}

type RulesLoader struct {
	reader io.Reader
}

func NewRulesLoader(reader io.Reader) *RulesLoader {
	return &RulesLoader{reader: reader}
}

func (rl *RulesLoader) Load(validate bool) (*Rules, error) {
	decoder := yaml.NewDecoder(rl.reader)
	var rules Rules
	if err := decoder.Decode(&rules); err != nil {
		return nil, err
	}
	if validate {
		if err := rules.Validate(); err != nil {
			return nil, err
		}
	}
	return &rules, nil
}

// DefaultRules loads the embedded rule set.
func DefaultRules() *Rules {
	rules, err := NewRulesLoader(strings.NewReader(string(defaultRulesYAML))).Load(true)
	if err != nil {
		// The embedded file ships with the binary; failing to parse it is a
		// programming error, not a runtime condition.
		panic(fmt.Sprintf("embedded classifier rules are invalid: %v", err))
	}
	return rules
}
