package scoring

import (
	"encoding/json"
	"fmt"
	"math"

	"ux-career-assessment/internal/domain"
)

const (
	minAnswer = 1
	maxAnswer = 5
)

// ValidationError describes why a set of answers was rejected.
type ValidationError struct {
	QuestionID string
	Reason     string
}

func (e *ValidationError) Error() string {
	if e.QuestionID == "" {
		return fmt.Sprintf("invalid answers: %s", e.Reason)
	}
	return fmt.Sprintf("invalid answers: question %s: %s", e.QuestionID, e.Reason)
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidAnswers }

// ParseAnswers converts a decoded JSON object into Answers. Non-numeric and
// fractional values are rejected; range checks are left to ValidateAnswers.
func ParseAnswers(raw map[string]any) (domain.Answers, error) {
	if raw == nil {
		return nil, &ValidationError{Reason: "answers must be an object"}
	}
	answers := make(domain.Answers, len(raw))
	for id, v := range raw {
		var f float64
		switch n := v.(type) {
		case float64:
			f = n
		case int:
			f = float64(n)
		case json.Number:
			parsed, err := n.Float64()
			if err != nil {
				return nil, &ValidationError{QuestionID: id, Reason: "value is not numeric"}
			}
			f = parsed
		default:
			return nil, &ValidationError{QuestionID: id, Reason: "value is not numeric"}
		}
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return nil, &ValidationError{QuestionID: id, Reason: "value is not an integer"}
		}
		if f < math.MinInt32 || f > math.MaxInt32 {
			return nil, &ValidationError{QuestionID: id, Reason: fmt.Sprintf("value must be between %d and %d", minAnswer, maxAnswer)}
		}
		answers[id] = int(f)
	}
	return answers, nil
}

// ValidateAnswers rejects empty answer sets and any value outside 1..5.
// Scoring must not be attempted unless this returns nil.
func ValidateAnswers(answers domain.Answers) error {
	if len(answers) == 0 {
		return &ValidationError{Reason: "no answers provided"}
	}
	for id, v := range answers {
		if id == "" {
			return &ValidationError{Reason: "empty question id"}
		}
		if v < minAnswer || v > maxAnswer {
			return &ValidationError{QuestionID: id, Reason: fmt.Sprintf("value %d must be between %d and %d", v, minAnswer, maxAnswer)}
		}
	}
	return nil
}

// IsValid is the boolean form of ValidateAnswers.
func IsValid(answers domain.Answers) bool {
	return ValidateAnswers(answers) == nil
}
