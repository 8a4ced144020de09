package scoring

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ux-career-assessment/internal/domain"
)

func TestValidateAnswers(t *testing.T) {
	tests := []struct {
		name    string
		answers domain.Answers
		valid   bool
	}{
		{"nil", nil, false},
		{"empty", domain.Answers{}, false},
		{"out of range high", domain.Answers{"Q1": 7}, false},
		{"out of range low", domain.Answers{"Q1": 0}, false},
		{"empty id", domain.Answers{"": 3}, false},
		{"single valid", domain.Answers{"Q1": 3}, true},
		{"bounds", domain.Answers{"Q1": 1, "Q2": 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnswers(tt.answers)
			assert.Equal(t, tt.valid, err == nil, "err=%v", err)
			assert.Equal(t, tt.valid, IsValid(tt.answers))
			if err != nil {
				assert.True(t, errors.Is(err, domain.ErrInvalidAnswers))
				var verr *ValidationError
				assert.True(t, errors.As(err, &verr))
			}
		})
	}
}

func TestParseAnswers(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"Q1": 3, "Q2": 5}`), &raw))

	answers, err := ParseAnswers(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.Answers{"Q1": 3, "Q2": 5}, answers)
}

func TestParseAnswersRejectsNonNumeric(t *testing.T) {
	for _, body := range []string{
		`{"Q1": "3"}`,
		`{"Q1": true}`,
		`{"Q1": null}`,
		`{"Q1": 2.5}`,
		`{"Q1": [1]}`,
	} {
		var raw map[string]any
		require.NoError(t, json.Unmarshal([]byte(body), &raw))
		_, err := ParseAnswers(raw)
		assert.Error(t, err, body)
		assert.True(t, errors.Is(err, domain.ErrInvalidAnswers), body)
	}

	_, err := ParseAnswers(nil)
	assert.Error(t, err)
}

func TestParseAnswersKeepsOutOfRangeForValidation(t *testing.T) {
	answers, err := ParseAnswers(map[string]any{"Q1": float64(7)})
	require.NoError(t, err)
	assert.False(t, IsValid(answers))
}
