package domain

import "errors"

var (
	// ErrInvalidAnswers is returned when submitted answers fail validation.
	ErrInvalidAnswers = errors.New("invalid answers")
	// ErrCalculationFailed hides unexpected scoring failures from callers.
	ErrCalculationFailed = errors.New("Calculation failed")
	// ErrResultNotFound indicates no stored result exists for an ID.
	ErrResultNotFound = errors.New("result not found")
	// ErrQuestionBankNotFound indicates the question bank could not be loaded.
	ErrQuestionBankNotFound = errors.New("question bank not found")
	// ErrQuotaExceeded is returned by a KeyValueStore that ran out of space.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrRemoteUnavailable indicates no remote content generator is configured.
	ErrRemoteUnavailable = errors.New("remote content generator unavailable")
)
