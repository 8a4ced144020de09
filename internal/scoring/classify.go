package scoring

import "ux-career-assessment/internal/domain"

// MinDisplayScore is the floor applied to every displayed score.
const MinDisplayScore = 5

// Band thresholds (inclusive lower bounds).
const (
	strongThreshold    = 80
	needsWorkThreshold = 40
)

// Stage thresholds (inclusive lower bounds).
const (
	strategicLeadThreshold  = 86
	emergingSeniorThreshold = 66
	practitionerThreshold   = 41
)

// DeriveBand maps a score to its band. Any integer is accepted; values
// outside 0..100 fall into the nearest band.
func DeriveBand(score int) domain.Band {
	switch {
	case score >= strongThreshold:
		return domain.BandStrong
	case score >= needsWorkThreshold:
		return domain.BandNeedsWork
	default:
		return domain.BandLearnTheBasics
	}
}

// DeriveStage maps an overall score to a stage. Any integer is accepted.
func DeriveStage(score int) domain.Stage {
	switch {
	case score >= strategicLeadThreshold:
		return domain.StageStrategicLead
	case score >= emergingSeniorThreshold:
		return domain.StageEmergingSenior
	case score >= practitionerThreshold:
		return domain.StagePractitioner
	default:
		return domain.StageExplorer
	}
}
