package questionbank

import "ux-career-assessment/internal/domain"

// KnowledgeBank is the curated resource list used when selecting learning
// material for weak categories.
func KnowledgeBank() []domain.Resource {
	return []domain.Resource{
		{Title: "The Design of Everyday Things", URL: "https://www.nngroup.com/books/design-everyday-things-revised/", Type: "book", Category: domain.CategoryUXFundamentals, Description: "Foundations of affordances, feedback and mental models."},
		{Title: "10 Usability Heuristics for User Interface Design", URL: "https://www.nngroup.com/articles/ten-usability-heuristics/", Type: "article", Category: domain.CategoryUXFundamentals, Description: "The canonical checklist for heuristic evaluation."},
		{Title: "Refactoring UI", URL: "https://www.refactoringui.com/", Type: "book", Category: domain.CategoryUICraft, Description: "Practical visual design tactics for interfaces."},
		{Title: "WCAG 2.2 Quick Reference", URL: "https://www.w3.org/WAI/WCAG22/quickref/", Type: "guide", Category: domain.CategoryUICraft, Description: "Accessibility success criteria with techniques."},
		{Title: "Just Enough Research", URL: "https://abookapart.com/products/just-enough-research", Type: "book", Category: domain.CategoryUserResearch, Description: "Lean research methods for product teams."},
		{Title: "Interviewing Users", URL: "https://rosenfeldmedia.com/books/interviewing-users-second-edition/", Type: "book", Category: domain.CategoryUserResearch, Description: "How to run interviews that uncover real behaviour."},
		{Title: "Inspired", URL: "https://www.svpg.com/books/inspired-how-to-create-tech-products-customers-love-2nd-edition/", Type: "book", Category: domain.CategoryProductThinking, Description: "How strong product teams discover what to build."},
		{Title: "Measuring the User Experience", URL: "https://measuringux.com/", Type: "book", Category: domain.CategoryProductThinking, Description: "Connecting design outcomes to metrics."},
		{Title: "Articulating Design Decisions", URL: "https://www.oreilly.com/library/view/articulating-design-decisions/9781492079217/", Type: "book", Category: domain.CategoryCollaboration, Description: "Communicating rationale to stakeholders."},
		{Title: "Discussing Design", URL: "https://www.oreilly.com/library/view/discussing-design/9781491902394/", Type: "book", Category: domain.CategoryCollaboration, Description: "Running critique that improves the work."},
	}
}
