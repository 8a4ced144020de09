package content_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ux-career-assessment/internal/content"
	"ux-career-assessment/internal/domain"
	"ux-career-assessment/internal/llm"
	"ux-career-assessment/internal/questionbank"
	"ux-career-assessment/internal/scoring"
)

func resultsFor(t *testing.T, value int) domain.QuizResults {
	t.Helper()
	answers := domain.Answers{}
	for _, q := range questionbank.Default() {
		answers[q.ID] = value
	}
	res, err := scoring.Score(answers, questionbank.Default(), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return res
}

func TestFallbacksSatisfySectionSchemas(t *testing.T) {
	profiles := map[string]domain.QuizResults{
		"all low":  resultsFor(t, 1),
		"all mid":  resultsFor(t, 3),
		"all high": resultsFor(t, 5),
		"empty":    {Stage: domain.StageExplorer, TotalScore: 5},
	}
	for name, res := range profiles {
		for _, section := range domain.Sections {
			payload := content.Fallback(section, res, questionbank.KnowledgeBank())
			raw, err := json.Marshal(payload)
			require.NoError(t, err)

			decoded, err := content.Decode(section, raw)
			require.NoError(t, err, "%s/%s: %s", name, section, raw)
			assert.Equal(t, payload, decoded, "%s/%s", name, section)
		}
	}
}

func TestFallbackSkillAnalysisCoversEveryCategory(t *testing.T) {
	res := resultsFor(t, 4)
	got := content.FallbackSkillAnalysis(res.Categories)
	require.Len(t, got.Insights, len(domain.Categories))
	for i, c := range domain.Categories {
		assert.Equal(t, c, got.Insights[i].Category)
		assert.Equal(t, domain.BandStrong, got.Insights[i].Band)
	}
}

func TestFallbackResourcesPrefersWeakCategories(t *testing.T) {
	weak := []domain.Category{domain.CategoryCollaboration, domain.CategoryUserResearch}
	got := content.FallbackResources(domain.StagePractitioner, weak, questionbank.KnowledgeBank())

	require.Len(t, got.Resources, 6)
	assert.Equal(t, domain.CategoryCollaboration, got.Resources[0].Category)
	assert.Equal(t, domain.CategoryCollaboration, got.Resources[1].Category)
	assert.Equal(t, domain.CategoryUserResearch, got.Resources[2].Category)
	assert.Equal(t, domain.CategoryUserResearch, got.Resources[3].Category)
	assert.Contains(t, got.Readup, "Collaboration & Communication and User Research")

	seen := map[string]bool{}
	for _, r := range got.Resources {
		assert.False(t, seen[r.URL], "duplicate resource %s", r.URL)
		seen[r.URL] = true
	}
}

func TestFallbackResourcesWithEmptyBank(t *testing.T) {
	got := content.FallbackResources(domain.StageExplorer, nil, nil)
	require.Len(t, got.Resources, 1)
	assert.NotEmpty(t, got.Readup)
}

func TestFallbackImprovementPlanFourWeeks(t *testing.T) {
	got := content.FallbackImprovementPlan(domain.StageEmergingSenior,
		[]domain.Category{domain.CategoryUICraft},
		[]domain.Category{domain.CategoryUserResearch})

	require.Len(t, got.Weeks, 4)
	for i, w := range got.Weeks {
		assert.Equal(t, i+1, w.Week)
		assert.NotEmpty(t, w.Tasks)
	}
	assert.Equal(t, domain.CategoryUserResearch, got.Weeks[0].Focus)
	assert.Equal(t, domain.CategoryUICraft, got.Weeks[3].Focus)
}

func TestFallbackDeepInsightsBalancedProfile(t *testing.T) {
	got := content.FallbackDeepInsights(domain.StagePractitioner, 60, nil, nil)
	require.Len(t, got.Insights, 2)
	assert.Equal(t, "A balanced profile", got.Insights[1].Title)
}

func TestDecodeRejectsSchemaViolations(t *testing.T) {
	cases := map[domain.Section]string{
		domain.SectionMeaning:         `{"meaning": ""}`,
		domain.SectionSkillAnalysis:   `{"insights": []}`,
		domain.SectionResources:       `{"readup": "x"}`,
		domain.SectionDeepInsights:    `{"insights": [{"title": "x"}]}`,
		domain.SectionImprovementPlan: `{"weeks": [{"week": 0, "theme": "a", "focus": "b", "tasks": ["c"]}]}`,
	}
	for section, raw := range cases {
		_, err := content.Decode(section, json.RawMessage(raw))
		assert.Error(t, err, section)
	}

	_, err := content.Decode(domain.SectionMeaning, json.RawMessage(`not json`))
	assert.Error(t, err)

	_, err = content.Decode(domain.Section("layout"), json.RawMessage(`{}`))
	assert.Error(t, err)
}

func TestRequestForSendsOnlyRelevantFields(t *testing.T) {
	res := resultsFor(t, 2)

	meaning := content.RequestFor(domain.SectionMeaning, res)
	assert.Equal(t, res.Stage, meaning.Stage)
	assert.Equal(t, res.TotalScore, meaning.TotalScore)
	assert.Empty(t, meaning.Categories)

	resources := content.RequestFor(domain.SectionResources, res)
	assert.Zero(t, resources.TotalScore)
	assert.Equal(t, res.WeakestCategories, resources.WeakCategories)

	plan := content.RequestFor(domain.SectionImprovementPlan, res)
	assert.Len(t, plan.Categories, 5)
}

func TestHTTPGeneratorPostsToSectionPath(t *testing.T) {
	var gotPath string
	var gotBody content.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"meaning":"remote text"}`))
	}))
	defer srv.Close()

	gen := content.NewHTTPGenerator(srv.URL+"/", srv.Client())
	raw, err := gen.Generate(context.Background(), domain.SectionMeaning,
		content.Request{Stage: domain.StagePractitioner, TotalScore: 55})
	require.NoError(t, err)

	assert.Equal(t, "/api/meaning", gotPath)
	assert.Equal(t, domain.StagePractitioner, gotBody.Stage)
	assert.Equal(t, 55, gotBody.TotalScore)
	assert.JSONEq(t, `{"meaning":"remote text"}`, string(raw))
}

func TestHTTPGeneratorFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"non-2xx": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		},
		"malformed": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"meaning":`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			_, err := content.NewHTTPGenerator(srv.URL, srv.Client()).
				Generate(context.Background(), domain.SectionMeaning, content.Request{})
			assert.Error(t, err)
		})
	}
}

func TestHTTPGeneratorHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := content.NewHTTPGenerator(srv.URL, srv.Client()).
		Generate(ctx, domain.SectionMeaning, content.Request{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestUnavailableAlwaysFails(t *testing.T) {
	_, err := content.Unavailable{}.Generate(context.Background(), domain.SectionMeaning, content.Request{})
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}

func TestLLMGeneratorUsesSectionSchema(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"meaning":"from the model"}`)})
	gen := content.NewLLMGenerator(mock, 0)

	res := resultsFor(t, 3)
	raw, err := gen.Generate(context.Background(), domain.SectionMeaning, content.RequestFor(domain.SectionMeaning, res))
	require.NoError(t, err)
	assert.JSONEq(t, `{"meaning":"from the model"}`, string(raw))

	calls := mock.Calls()
	require.Len(t, calls, 1)
	require.NotNil(t, calls[0].Schema)
	assert.Equal(t, "stage-meaning", calls[0].Schema.Name)
	assert.Equal(t, 1500, calls[0].MaxTokens)
	assert.True(t, strings.Contains(calls[0].Prompt, string(res.Stage)))
}

func TestLLMGeneratorPropagatesProviderErrors(t *testing.T) {
	gen := content.NewLLMGenerator(llm.NewMockProvider(), 500)
	_, err := gen.Generate(context.Background(), domain.SectionDeepInsights, content.Request{Stage: domain.StageExplorer})

	var unavailable *llm.ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavailable))
}
