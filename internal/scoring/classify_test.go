package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ux-career-assessment/internal/domain"
)

func TestDeriveBand(t *testing.T) {
	tests := []struct {
		score int
		want  domain.Band
	}{
		{-20, domain.BandLearnTheBasics},
		{0, domain.BandLearnTheBasics},
		{39, domain.BandLearnTheBasics},
		{40, domain.BandNeedsWork},
		{79, domain.BandNeedsWork},
		{80, domain.BandStrong},
		{100, domain.BandStrong},
		{250, domain.BandStrong},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveBand(tt.score), "score %d", tt.score)
	}
}

func TestDeriveStage(t *testing.T) {
	tests := []struct {
		score int
		want  domain.Stage
	}{
		{-1, domain.StageExplorer},
		{0, domain.StageExplorer},
		{40, domain.StageExplorer},
		{41, domain.StagePractitioner},
		{65, domain.StagePractitioner},
		{66, domain.StageEmergingSenior},
		{85, domain.StageEmergingSenior},
		{86, domain.StageStrategicLead},
		{100, domain.StageStrategicLead},
		{1000, domain.StageStrategicLead},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveStage(tt.score), "score %d", tt.score)
	}
}
