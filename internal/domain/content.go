package domain

// Section identifies a supplementary content block on the results page.
type Section string

const (
	SectionMeaning         Section = "meaning"
	SectionSkillAnalysis   Section = "skill-analysis"
	SectionResources       Section = "resources"
	SectionDeepInsights    Section = "deep-insights"
	SectionImprovementPlan Section = "improvement-plan"
)

// Sections lists every section in display order.
var Sections = []Section{
	SectionMeaning,
	SectionSkillAnalysis,
	SectionResources,
	SectionDeepInsights,
	SectionImprovementPlan,
}

// EagerSections are requested in parallel as soon as scoring completes.
// The improvement plan is deliberately absent: it waits for these to settle.
var EagerSections = []Section{
	SectionMeaning,
	SectionSkillAnalysis,
	SectionResources,
	SectionDeepInsights,
}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	for _, known := range Sections {
		if s == known {
			return true
		}
	}
	return false
}

// ContentSource records where a section payload came from. It is never
// exposed to clients.
type ContentSource string

const (
	SourceRemote   ContentSource = "remote"
	SourceCache    ContentSource = "cache"
	SourceFallback ContentSource = "fallback"
)

// StatusSuccess is the only status a settled section reports.
const StatusSuccess = "success"

// SectionContent is a settled section as delivered to consumers.
type SectionContent struct {
	Section Section       `json:"section"`
	Status  string        `json:"status"`
	Data    any           `json:"data"`
	Source  ContentSource `json:"-"`
}

// MeaningContent explains what the stage means.
type MeaningContent struct {
	Meaning string `json:"meaning"`
}

// CategoryInsight is a per-category commentary entry.
type CategoryInsight struct {
	Category       Category `json:"category"`
	Band           Band     `json:"band"`
	Insight        string   `json:"insight"`
	Recommendation string   `json:"recommendation"`
}

// SkillAnalysisContent is the skill-analysis section payload.
type SkillAnalysisContent struct {
	Insights []CategoryInsight `json:"insights"`
}

// Resource is a knowledge-bank learning resource.
type Resource struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Type        string   `json:"type"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
}

// ResourcesContent is the resources section payload.
type ResourcesContent struct {
	Readup    string     `json:"readup"`
	Resources []Resource `json:"resources"`
}

// DeepInsight is a cross-category observation.
type DeepInsight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DeepInsightsContent is the deep-insights section payload.
type DeepInsightsContent struct {
	Insights []DeepInsight `json:"insights"`
}

// PlanWeek is one week of the improvement plan.
type PlanWeek struct {
	Week  int      `json:"week"`
	Theme string   `json:"theme"`
	Focus Category `json:"focus"`
	Tasks []string `json:"tasks"`
}

// ImprovementPlanContent is the improvement-plan section payload.
type ImprovementPlanContent struct {
	Weeks []PlanWeek `json:"weeks"`
}
