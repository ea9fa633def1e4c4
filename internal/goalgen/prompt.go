package goalgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/platewise/platewise/internal/model"
)

// buildPrompt renders the generation context from a request. Categories are
// sorted so the prompt is deterministic for a given month total.
func buildPrompt(req Request) string {
	cats := make([]string, 0, len(req.Totals))
	for cat := range req.Totals {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	var sb strings.Builder
	sb.WriteString("You are a nutrition coach reviewing one month of food-photo tracking.\n\n")

	sb.WriteString("CATEGORY TOTALS (items observed in the evaluation window):\n")
	if len(cats) == 0 {
		sb.WriteString("- no items recorded\n")
	}
	for _, cat := range cats {
		fmt.Fprintf(&sb, "- %s: %d\n", cat, req.Totals[cat])
	}

	sb.WriteString("\nPATTERN FLAGS:\n")
	if len(req.PatternFlags) == 0 {
		sb.WriteString("- none\n")
	}
	for _, flag := range req.PatternFlags {
		fmt.Fprintf(&sb, "- %s\n", flag)
	}

	fmt.Fprintf(&sb, `
Generate exactly %d specific, varied, actionable goals from the patterns above:
1. Focus on different aspects (variety, timing, specific categories)
2. Reference the categories the user is already eating
3. Be encouraging and realistic
4. Make each goal distinct (don't repeat themes)

Return strict JSON:
{
  "goals": [
    {"title": string (<=%d), "why": string (<=%d), "how": string (<=%d), "fallback": string (<=%d)}
  ]
}
`, model.GoalsPerMonth, model.GoalTitleMaxLen, model.GoalWhyMaxLen, model.GoalHowMaxLen, model.GoalFallbackMaxLen)

	return sb.String()
}
