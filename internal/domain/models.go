package domain

import (
	"strings"
	"time"
)

// Category is one of the five fixed skill areas of the assessment.
type Category string

const (
	CategoryUXFundamentals  Category = "UX Fundamentals"
	CategoryUICraft         Category = "UI Craft & Visual Design"
	CategoryUserResearch    Category = "User Research & Validation"
	CategoryProductThinking Category = "Product Thinking & Strategy"
	CategoryCollaboration   Category = "Collaboration & Communication"
)

// Categories is the closed, ordered set of categories. Results always list
// categories in this order.
var Categories = []Category{
	CategoryUXFundamentals,
	CategoryUICraft,
	CategoryUserResearch,
	CategoryProductThinking,
	CategoryCollaboration,
}

// Valid reports whether c belongs to the fixed category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryID returns the slug used as CategoryScore.ID.
func CategoryID(c Category) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(string(c)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Band is the per-category skill level.
type Band string

const (
	BandStrong         Band = "Strong"
	BandNeedsWork      Band = "Needs Work"
	BandLearnTheBasics Band = "Learn the Basics"
)

// Stage is the overall career-level classification.
type Stage string

const (
	StageExplorer       Stage = "Explorer"
	StagePractitioner   Stage = "Practitioner"
	StageEmergingSenior Stage = "Emerging Senior"
	StageStrategicLead  Stage = "Strategic Lead"
)

// Option is one of the five answers to a question. Value is 1..5, higher
// meaning more competence.
type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Question is an immutable entry of the question bank.
type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Category Category `json:"category"`
	Options  []Option `json:"options"`
}

// Answers maps question IDs to the selected option value.
type Answers map[string]int

// CategoryScore is the computed result for one category.
type CategoryScore struct {
	ID            string   `json:"id"`
	Name          Category `json:"name"`
	Score         int      `json:"score"`
	Band          Band     `json:"band"`
	RawScore      int      `json:"rawScore"`
	MaxPossible   int      `json:"maxPossible"`
	QuestionCount int      `json:"questionCount"`
}

// QuizResults is the scorer's output.
type QuizResults struct {
	TotalScore          int             `json:"totalScore"`
	Stage               Stage           `json:"stage"`
	Categories          []CategoryScore `json:"categories"`
	StrongestCategories []Category      `json:"strongestCategories"`
	WeakestCategories   []Category      `json:"weakestCategories"`
	AnsweredAt          time.Time       `json:"answeredAt"`
}

// StoredResult is a persisted snapshot that can be restored by ID.
type StoredResult struct {
	ID        string      `json:"id"`
	Answers   Answers     `json:"answers"`
	Results   QuizResults `json:"results"`
	CreatedAt time.Time   `json:"createdAt"`
}
