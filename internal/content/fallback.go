package content

import (
	"fmt"
	"strings"

	"ux-career-assessment/internal/domain"
)

// Fallback generators substitute for remote content. They are pure, never
// fail and always return a non-empty payload shaped like the remote one.

var stageSummaries = map[domain.Stage]string{
	domain.StageExplorer:       "You are building the foundations of UX practice. Most of your growth right now comes from learning core methods and applying them on small, well-scoped problems.",
	domain.StagePractitioner:   "You can deliver solid design work on your own and know the standard toolkit. The next step is depth: sharper judgement, stronger evidence and more influence on what gets built.",
	domain.StageEmergingSenior: "You operate with real autonomy and your craft is dependable. Growth now comes from shaping product direction and lifting the people around you.",
	domain.StageStrategicLead:  "You work at a strategic level, connecting design to business outcomes and guiding others. Your leverage comes from setting direction and building the conditions for great work.",
}

var stageNextSteps = map[domain.Stage]string{
	domain.StageExplorer:       "pick one end-to-end project and practise every step of the process on it",
	domain.StagePractitioner:   "own the research and success metrics of your next feature, not just its screens",
	domain.StageEmergingSenior: "lead a cross-functional initiative and mentor a less experienced designer",
	domain.StageStrategicLead:  "codify how your team makes design decisions so it scales beyond you",
}

func stageSummary(stage domain.Stage) string {
	if s, ok := stageSummaries[stage]; ok {
		return s
	}
	return stageSummaries[domain.StageExplorer]
}

func stageNextStep(stage domain.Stage) string {
	if s, ok := stageNextSteps[stage]; ok {
		return s
	}
	return stageNextSteps[domain.StageExplorer]
}

// FallbackMeaning explains the stage.
func FallbackMeaning(stage domain.Stage, totalScore int) domain.MeaningContent {
	return domain.MeaningContent{
		Meaning: fmt.Sprintf("With an overall score of %d%%, you are at the %s stage. %s A good next move: %s.",
			totalScore, stageName(stage), stageSummary(stage), stageNextStep(stage)),
	}
}

var bandInsights = map[domain.Band]struct{ insight, recommendation string }{
	domain.BandStrong: {
		insight:        "This is a clear strength. You apply it consistently and could teach it to others.",
		recommendation: "Share what you know through reviews, talks or documentation, and look for stretch problems that use it.",
	},
	domain.BandNeedsWork: {
		insight:        "You have working knowledge here, but it is not yet reliable under pressure or on complex problems.",
		recommendation: "Pick one recurring situation at work and deliberately practise this skill on it for the next month.",
	},
	domain.BandLearnTheBasics: {
		insight:        "This area is still new to you, which makes it the place where focused learning pays off fastest.",
		recommendation: "Start with one foundational resource and apply a single technique from it to a real task this week.",
	},
}

// FallbackSkillAnalysis writes one insight per category from its band.
func FallbackSkillAnalysis(categories []domain.CategoryScore) domain.SkillAnalysisContent {
	insights := make([]domain.CategoryInsight, 0, len(domain.Categories))
	for _, cs := range categories {
		text, ok := bandInsights[cs.Band]
		if !ok {
			text = bandInsights[domain.BandLearnTheBasics]
		}
		insights = append(insights, domain.CategoryInsight{
			Category:       cs.Name,
			Band:           cs.Band,
			Insight:        fmt.Sprintf("%s (%d%%): %s", cs.Name, cs.Score, text.insight),
			Recommendation: text.recommendation,
		})
	}
	if len(insights) == 0 {
		for _, c := range domain.Categories {
			text := bandInsights[domain.BandLearnTheBasics]
			insights = append(insights, domain.CategoryInsight{
				Category:       c,
				Band:           domain.BandLearnTheBasics,
				Insight:        fmt.Sprintf("%s: %s", c, text.insight),
				Recommendation: text.recommendation,
			})
		}
	}
	return domain.SkillAnalysisContent{Insights: insights}
}

const maxResources = 6

// FallbackResources picks knowledge-bank resources for the weak categories,
// topping up from the rest of the bank.
func FallbackResources(stage domain.Stage, weak []domain.Category, bank []domain.Resource) domain.ResourcesContent {
	picked := make([]domain.Resource, 0, maxResources)
	used := make(map[string]bool)
	take := func(match func(domain.Resource) bool) {
		for _, r := range bank {
			if len(picked) == maxResources {
				return
			}
			if used[r.URL] || !match(r) {
				continue
			}
			used[r.URL] = true
			picked = append(picked, r)
		}
	}
	for _, c := range weak {
		take(func(r domain.Resource) bool { return r.Category == c })
	}
	take(func(domain.Resource) bool { return true })

	if len(picked) == 0 {
		picked = append(picked, domain.Resource{
			Title:       "Nielsen Norman Group articles",
			URL:         "https://www.nngroup.com/articles/",
			Type:        "article",
			Category:    domain.CategoryUXFundamentals,
			Description: "A broad, free library of research-backed UX guidance.",
		})
	}

	focus := "all five skill areas"
	if len(weak) > 0 {
		focus = joinCategories(weak)
	}
	return domain.ResourcesContent{
		Readup: fmt.Sprintf("As a %s, the fastest gains will come from %s. These resources were chosen to close those gaps first.",
			stageName(stage), focus),
		Resources: picked,
	}
}

// FallbackDeepInsights derives observations from the score profile.
func FallbackDeepInsights(stage domain.Stage, totalScore int, strong, weak []domain.Category) domain.DeepInsightsContent {
	insights := []domain.DeepInsight{{
		Title:       fmt.Sprintf("Where you stand: %s", stageName(stage)),
		Description: fmt.Sprintf("Your overall score of %d%% places you in the %s stage. %s", totalScore, stageName(stage), stageSummary(stage)),
	}}
	if len(strong) > 0 {
		insights = append(insights, domain.DeepInsight{
			Title:       "Build on your strengths",
			Description: fmt.Sprintf("%s %s your strongest %s right now. Strengths are the easiest place to create visible impact, so use them to earn room for growth elsewhere.", joinCategories(strong), verb(strong), plural(strong, "area", "areas")),
		})
	}
	if len(weak) > 0 {
		insights = append(insights, domain.DeepInsight{
			Title:       "Your biggest opportunity",
			Description: fmt.Sprintf("Improving %s would lift your overall profile the most. Small, regular practice beats occasional deep dives.", joinCategories(weak)),
		})
	}
	if len(strong) == 0 && len(weak) == 0 {
		insights = append(insights, domain.DeepInsight{
			Title:       "A balanced profile",
			Description: "Your skills are evenly developed. Choose the area most relevant to your next role and deepen it deliberately.",
		})
	}
	return domain.DeepInsightsContent{Insights: insights}
}

// FallbackImprovementPlan lays out four weeks: three on the weak areas
// (product thinking when there are none), then one leading with a strength.
func FallbackImprovementPlan(stage domain.Stage, strong, weak []domain.Category) domain.ImprovementPlanContent {
	focus := make([]domain.Category, 0, 2)
	focus = append(focus, weak...)
	if len(focus) == 0 {
		focus = append(focus, domain.CategoryProductThinking)
	}
	anchor := domain.CategoryCollaboration
	if len(strong) > 0 {
		anchor = strong[0]
	}

	weeks := []domain.PlanWeek{
		{
			Week:  1,
			Theme: fmt.Sprintf("Foundations of %s", focus[0]),
			Focus: focus[0],
			Tasks: []string{
				fmt.Sprintf("Read one foundational resource on %s", focus[0]),
				"Write down three situations at work where this skill matters",
				"Ask a colleague for feedback on how you handle it today",
			},
		},
		{
			Week:  2,
			Theme: fmt.Sprintf("Practise %s on real work", focus[len(focus)-1]),
			Focus: focus[len(focus)-1],
			Tasks: []string{
				fmt.Sprintf("Apply one %s technique to a current project", focus[len(focus)-1]),
				"Document what worked and what did not",
			},
		},
		{
			Week:  3,
			Theme: "Make the learning visible",
			Focus: focus[0],
			Tasks: []string{
				"Share a short write-up of your experiments with your team",
				"Pair with someone stronger in this area for one session",
			},
		},
		{
			Week:  4,
			Theme: fmt.Sprintf("Lead with %s", anchor),
			Focus: anchor,
			Tasks: []string{
				fmt.Sprintf("Use your strength in %s to support a teammate", anchor),
				fmt.Sprintf("Set a goal for the next month: %s", stageNextStep(stage)),
			},
		},
	}
	return domain.ImprovementPlanContent{Weeks: weeks}
}

// Fallback dispatches to the generator for section.
func Fallback(section domain.Section, res domain.QuizResults, bank []domain.Resource) any {
	switch section {
	case domain.SectionSkillAnalysis:
		return FallbackSkillAnalysis(res.Categories)
	case domain.SectionResources:
		return FallbackResources(res.Stage, res.WeakestCategories, bank)
	case domain.SectionDeepInsights:
		return FallbackDeepInsights(res.Stage, res.TotalScore, res.StrongestCategories, res.WeakestCategories)
	case domain.SectionImprovementPlan:
		return FallbackImprovementPlan(res.Stage, res.StrongestCategories, res.WeakestCategories)
	default:
		return FallbackMeaning(res.Stage, res.TotalScore)
	}
}

func stageName(stage domain.Stage) string {
	if stage == "" {
		return string(domain.StageExplorer)
	}
	return string(stage)
}

func joinCategories(cs []domain.Category) string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = string(c)
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

func verb(cs []domain.Category) string {
	return plural(cs, "is", "are")
}

func plural(cs []domain.Category, one, many string) string {
	if len(cs) == 1 {
		return one
	}
	return many
}
