package service

import (
	"math"

	"profitum/internal/catalog"
	"profitum/internal/model"
)

// ScorerService computes per-product eligibility from whatever answers exist.
// Deterministic: identical inputs yield identical results, and partial
// sessions are scoreable with a lower confidence level.
type ScorerService struct {
	evaluator *EvaluatorService
}

func NewScorerService(evaluator *EvaluatorService) *ScorerService {
	return &ScorerService{evaluator: evaluator}
}

// Score evaluates one product. Rules only fire for questions that are
// currently visible; confidence runs over the product's whole question set.
// The caller stamps ownership and ComputedAt.
func (s *ScorerService) Score(snap *catalog.Snapshot, product *catalog.Product, responses map[string]model.AnswerValue) *model.EligibilityResult {
	visible := make(map[string]bool)
	relevant, answered := 0, 0
	visibleAnswered := true
	for _, q := range snap.ForProduct(product.ID) {
		relevant++
		_, ok := responses[q.ID]
		if ok {
			answered++
		}
		if !s.evaluator.IsVisible(snap, q, responses) {
			continue
		}
		visible[q.ID] = true
		if !ok {
			visibleAnswered = false
		}
	}

	sum, max := 0, 0
	requiredFailed := false
	recommendations := []string{}
	for _, rule := range product.Rules {
		if !visible[rule.Question] {
			continue
		}
		if rule.Points > 0 {
			max += rule.Points
		}
		answer, ok := responses[rule.Question]
		if ok && rule.Matches(answer) {
			sum += rule.Points
			continue
		}
		if rule.Required {
			requiredFailed = true
		}
		if rule.Recommendation != "" {
			recommendations = append(recommendations, rule.Recommendation)
		}
	}

	score := 0
	if max > 0 {
		score = int(math.Round(100 * float64(sum) / float64(max)))
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	savings := 0.0
	if !requiredFailed {
		savings = s.estimateSavings(product, responses)
	}

	return &model.EligibilityResult{
		ProductID:        product.ID,
		Score:            score,
		EstimatedSavings: savings,
		Confidence:       confidence(answered, relevant, visibleAnswered),
		Recommendations:  recommendations,
	}
}

// ScoreAll evaluates every product of the profile, in declaration order.
func (s *ScorerService) ScoreAll(snap *catalog.Snapshot, profile *catalog.ScoringProfile, responses map[string]model.AnswerValue) []*model.EligibilityResult {
	results := make([]*model.EligibilityResult, 0, len(profile.Products))
	for i := range profile.Products {
		results = append(results, s.Score(snap, &profile.Products[i], responses))
	}
	return results
}

// confidence rates how much of the product questionnaire backs the result.
// The ratio runs over the full product question set, not just the currently
// visible one: a gate answer revealing follow-up questions must not lower the
// level already reached. All visible questions answered means the
// questionnaire is as complete as it can get, hence high.
func confidence(answered, relevant int, visibleAnswered bool) model.ConfidenceLevel {
	if relevant == 0 || answered == 0 {
		return model.ConfidenceLow
	}
	if visibleAnswered {
		return model.ConfidenceHigh
	}
	if float64(answered)/float64(relevant) >= 0.6 {
		return model.ConfidenceMedium
	}
	return model.ConfidenceLow
}

// estimateSavings applies the product's configured formula: numeric base
// answer times rate, scaled by matching coefficients, capped.
func (s *ScorerService) estimateSavings(product *catalog.Product, responses map[string]model.AnswerValue) float64 {
	f := product.Savings
	if f.BaseQuestion == "" || f.Rate == 0 {
		return 0
	}
	base, ok := responses[f.BaseQuestion]
	if !ok || base.Kind != model.AnswerNumeric || base.Number <= 0 {
		return 0
	}

	amount := base.Number * f.Rate
	for _, c := range f.Coefficients {
		if answer, ok := responses[c.Question]; ok && answer.Matches(c.Answer) {
			amount *= c.Factor
		}
	}
	if f.Cap > 0 && amount > f.Cap {
		amount = f.Cap
	}
	return math.Round(amount*100) / 100
}
