package correspond

// Tier classifies how well a question is grounded in the source.
type Tier string

const (
	TierValid   Tier = "valid"
	TierPartial Tier = "partial"
	TierWeak    Tier = "weak"
)

// NeutralScore is reported when there is not enough input to judge.
const NeutralScore = 50.0

// Item is the per-question breakdown.
type Item struct {
	QuestionID string  `json:"question_id"`
	Concept    string  `json:"concept"`
	Score      float64 `json:"score"`
	Tier       Tier    `json:"tier"`
}

// Report aggregates correspondence scores.
type Report struct {
	OverallScore float64 `json:"overall_score"`
	Valid        int     `json:"valid"`
	Partial      int     `json:"partial"`
	Weak         int     `json:"weak"`
	Items        []Item  `json:"items"`

	// Strategy names the scorer that produced the items.
	Strategy string `json:"strategy"`
}

// Classify maps a score to its tier: valid at 70 and above, partial from
// 40, weak below.
func Classify(score float64) Tier {
	switch {
	case score >= 70:
		return TierValid
	case score >= 40:
		return TierPartial
	default:
		return TierWeak
	}
}

// Neutral returns the report used when any input is empty.
func Neutral(strategy string) Report {
	return Report{OverallScore: NeutralScore, Items: []Item{}, Strategy: strategy}
}
