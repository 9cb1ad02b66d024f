package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"profitum/internal/model"
)

// Rule operators. Scoring weights and thresholds are business data owned by
// the product team; they live in the YAML profile, never in code.
const (
	OpEquals   = "equals"   // scalar equality
	OpIn       = "in"       // scalar is one of Values
	OpContains = "contains" // multi-select contains Value
	OpGTE      = "gte"      // numeric >= Number
	OpLTE      = "lte"      // numeric <= Number
)

// Rule awards Points when the answer to Question matches. Required rules that
// fail make the product ineligible regardless of the other rules.
type Rule struct {
	Question       string   `yaml:"question"`
	Operator       string   `yaml:"operator"`
	Value          string   `yaml:"value,omitempty"`
	Values         []string `yaml:"values,omitempty"`
	Number         float64  `yaml:"number,omitempty"`
	Points         int      `yaml:"points"`
	Required       bool     `yaml:"required,omitempty"`
	Recommendation string   `yaml:"recommendation,omitempty"`
}

// Matches evaluates the rule against one answer.
func (r *Rule) Matches(v model.AnswerValue) bool {
	switch r.Operator {
	case OpEquals:
		return v.Kind == model.AnswerScalar && v.Scalar == r.Value
	case OpIn:
		if v.Kind != model.AnswerScalar {
			return false
		}
		for _, want := range r.Values {
			if v.Scalar == want {
				return true
			}
		}
		return false
	case OpContains:
		if v.Kind != model.AnswerMultiSelect {
			return false
		}
		return v.Matches(r.Value)
	case OpGTE:
		return v.Kind == model.AnswerNumeric && v.Number >= r.Number
	case OpLTE:
		return v.Kind == model.AnswerNumeric && v.Number <= r.Number
	}
	return false
}

// Coefficient scales the savings estimate when an answer matches,
// e.g. fleet-size multipliers.
type Coefficient struct {
	Question string  `yaml:"question"`
	Answer   string  `yaml:"answer"`
	Factor   float64 `yaml:"factor"`
}

// SavingsFormula derives the estimated recoverable amount from a numeric
// answer (litres of fuel, headcount, ...) times a product-specific rate.
type SavingsFormula struct {
	BaseQuestion string        `yaml:"base_question"`
	Rate         float64       `yaml:"rate"`
	Cap          float64       `yaml:"cap,omitempty"`
	Coefficients []Coefficient `yaml:"coefficients,omitempty"`
}

// Product is one scorable tax/subsidy product (TICPE, URSSAF, CIR, ...).
type Product struct {
	ID      string         `yaml:"id"`
	Name    string         `yaml:"name"`
	Rules   []Rule         `yaml:"rules"`
	Savings SavingsFormula `yaml:"savings"`
}

// ScoringProfile is the versioned business-configuration artifact holding all
// product definitions.
type ScoringProfile struct {
	Version  int       `yaml:"version"`
	Products []Product `yaml:"products"`

	byID map[string]*Product
}

// LoadScoringProfile reads and indexes the YAML profile.
func LoadScoringProfile(path string) (*ScoringProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scoring profile: %w", err)
	}
	return ParseScoringProfile(data)
}

// ParseScoringProfile decodes a profile and rejects structurally invalid ones.
func ParseScoringProfile(data []byte) (*ScoringProfile, error) {
	var profile ScoringProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse scoring profile: %w", err)
	}
	if len(profile.Products) == 0 {
		return nil, fmt.Errorf("scoring profile defines no products")
	}

	profile.byID = make(map[string]*Product, len(profile.Products))
	for i := range profile.Products {
		p := &profile.Products[i]
		if p.ID == "" {
			return nil, fmt.Errorf("scoring profile: product %d has no id", i)
		}
		if _, dup := profile.byID[p.ID]; dup {
			return nil, fmt.Errorf("scoring profile: duplicate product %s", p.ID)
		}
		for _, r := range p.Rules {
			if r.Question == "" {
				return nil, fmt.Errorf("scoring profile: product %s has a rule without a question", p.ID)
			}
		}
		profile.byID[p.ID] = p
	}

	return &profile, nil
}

// Product looks up a product definition by code.
func (p *ScoringProfile) Product(id string) (*Product, bool) {
	prod, ok := p.byID[id]
	return prod, ok
}

// ProductIDs returns product codes in declaration order.
func (p *ScoringProfile) ProductIDs() []string {
	ids := make([]string, 0, len(p.Products))
	for _, prod := range p.Products {
		ids = append(ids, prod.ID)
	}
	return ids
}
