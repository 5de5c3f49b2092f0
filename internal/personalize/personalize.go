// Package personalize rewrites generated plan text for tone. It is
// strictly cosmetic: dates, XP values, flags and array lengths are never
// touched, and every failure mode degrades to returning the input
// unchanged. Personalization must never block plan insertion.
package personalize

import (
	"context"

	"github.com/hyperengineering/stride/internal/types"
)

// Rewriter defines the interface contract for plan text rewriting.
type Rewriter interface {
	// Rewrite returns plan with only title/description text possibly
	// changed. Implementations must not alter any other field and must
	// return the input unmodified on any failure.
	Rewrite(ctx context.Context, goal types.GoalInput, plan types.PlanResult) types.PlanResult
	ModelName() string
}

// textPatch carries the only fields a rewrite may change.
type textPatch struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// planText is the JSON shape exchanged with the text-generation
// collaborator: the plan's text fields, subset-matched by index.
type planText struct {
	Streaks  []textPatch `json:"streaks"`
	Schedule []textPatch `json:"schedule"`
}

// extractText pulls the rewritable fields out of a plan.
func extractText(plan types.PlanResult) planText {
	pt := planText{
		Streaks:  make([]textPatch, len(plan.Streaks)),
		Schedule: make([]textPatch, len(plan.Schedule)),
	}
	for i, s := range plan.Streaks {
		pt.Streaks[i] = textPatch{Title: s.Title, Description: s.Description}
	}
	for i, s := range plan.Schedule {
		pt.Schedule[i] = textPatch{Title: s.Title, Description: s.Description}
	}
	return pt
}

// applyText copies plan and overwrites matched-index text fields from pt.
// Indexes past either array's length are ignored, and empty strings never
// replace existing text, so a malformed reply can only leave text as-is.
func applyText(plan types.PlanResult, pt planText) types.PlanResult {
	out := types.PlanResult{
		Streaks:  append([]types.StreakTaskSpec(nil), plan.Streaks...),
		Schedule: append([]types.ScheduledTask(nil), plan.Schedule...),
		Notes:    plan.Notes,
	}
	for i, p := range pt.Streaks {
		if i >= len(out.Streaks) {
			break
		}
		if p.Title != "" {
			out.Streaks[i].Title = p.Title
		}
		if p.Description != "" {
			out.Streaks[i].Description = p.Description
		}
	}
	for i, p := range pt.Schedule {
		if i >= len(out.Schedule) {
			break
		}
		if p.Title != "" {
			out.Schedule[i].Title = p.Title
		}
		if p.Description != "" {
			out.Schedule[i].Description = p.Description
		}
	}
	return out
}
