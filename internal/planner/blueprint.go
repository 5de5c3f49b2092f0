package planner

import (
	"fmt"

	"github.com/hyperengineering/stride/internal/types"
)

// BlueprintFunc generates a plan from a goal. Blueprints are pure: the
// same GoalInput always yields an identical PlanResult.
type BlueprintFunc func(types.GoalInput) types.PlanResult

// blueprints is the catalog. Every ID returned by SelectBlueprint has an
// entry; BlueprintFor falls back to generic for anything unknown.
var blueprints = map[types.BlueprintID]BlueprintFunc{
	types.BlueprintLanguage:    languagePlan,
	types.BlueprintMuscle:      musclePlan,
	types.BlueprintExamStudy:   examStudyPlan,
	types.BlueprintInstrument:  instrumentPlan,
	types.BlueprintCoding:      codingPlan,
	types.BlueprintMoneyOnline: moneyOnlinePlan,
	types.BlueprintGeneric:     genericPlan,
}

// BlueprintFor returns the catalog entry for id, or the generic fallback.
func BlueprintFor(id types.BlueprintID) BlueprintFunc {
	if fn, ok := blueprints[id]; ok {
		return fn
	}
	return genericPlan
}

// planDays computes the blueprint's working horizon: the goal's day span
// clamped to the blueprint's sanity bounds. Clamping is silent; a one-day
// language course or a multi-decade muscle plan are both degenerate and
// get pulled back into range rather than rejected.
func planDays(goal types.GoalInput, min, max int) int {
	return clampInt(DaysBetween(goal.CreatedAtISO, goal.DeadlineISO), min, max)
}

func streak(title, desc string, xp int, proof bool) types.StreakTaskSpec {
	return types.StreakTaskSpec{Title: title, Description: desc, XP: xp, ProofRequired: proof}
}

func oneOff(goal types.GoalInput, offset int, title, desc string, xp int, proof bool, tags ...string) types.ScheduledTask {
	return types.ScheduledTask{
		GoalID:        goal.ID,
		Title:         title,
		Description:   desc,
		XP:            xp,
		DateISO:       AddDays(goal.CreatedAtISO, offset),
		ProofRequired: proof,
		Tags:          tags,
	}
}

func noteDays(id types.BlueprintID, days int) string {
	return fmt.Sprintf("blueprint=%s days=%d", id, days)
}

func languagePlan(goal types.GoalInput) types.PlanResult {
	days := planDays(goal, 14, 730)
	out := types.PlanResult{
		Streaks: []types.StreakTaskSpec{
			streak("Learn 10 new words", "Add ten words to your deck and review yesterday's", 15, false),
			streak("Listening practice", "10 minutes of podcasts, shows or audio in your target language", 10, false),
			streak("Speak for 5 minutes", "Out loud, recorded or with a partner", 15, true),
		},
		Notes: []string{noteDays(types.BlueprintLanguage, days)},
	}
	for i := 0; i <= days; i++ {
		switch {
		case i%7 == 2:
			out.Schedule = append(out.Schedule, oneOff(goal, i,
				"Grammar deep dive", "One grammar topic, studied then drilled", 25, false))
		case i%7 == 5:
			out.Schedule = append(out.Schedule, oneOff(goal, i,
				"Conversation checkpoint", "A full conversation; note what you couldn't say", 30, true))
		}
		if i > 0 && i%28 == 0 {
			out.Schedule = append(out.Schedule, oneOff(goal, i,
				"Monthly self-assessment", "Re-test yourself on the month's material", 40, false, "checkpoint"))
		}
	}
	return out
}

func musclePlan(goal types.GoalInput) types.PlanResult {
	days := planDays(goal, 28, 365)
	out := types.PlanResult{
		Streaks: []types.StreakTaskSpec{
			streak("Hit your protein target", "Log every meal; proof is the day's total", 10, true),
			streak("Sleep and mobility", "8 hours plus 10 minutes of stretching", 10, false),
		},
		Notes: []string{noteDays(types.BlueprintMuscle, days)},
	}
	// Training lands on three spread weekdays; progress checks every two
	// weeks so the schedule never bunches heavy days together.
	for i := 0; i <= days; i++ {
		switch i % 7 {
		case 1:
			out.Schedule = append(out.Schedule, oneOff(goal, i,
				"Strength session: push", "Chest, shoulders, triceps; add weight when you hit top reps", 30, true))
		case 3:
			out.Schedule = append(out.Schedule, oneOff(goal, i,
				"Strength session: pull", "Back and biceps; control the negatives", 30, true))
		case 5:
			out.Schedule = append(out.Schedule, oneOff(goal, i,
				"Strength session: legs", "Squat pattern first, then accessories", 30, true))
		}
		if i > 0 && i%14 == 0 {
			out.Schedule = append(out.Schedule, oneOff(goal, i,
				"Progress photo and measurements", "Same lighting, same angles, same tape spots", 20, true, "checkpoint"))
		}
	}
	return out
}

func examStudyPlan(goal types.GoalInput) types.PlanResult {
	days := planDays(goal, 7, 365)
	out := types.PlanResult{
		Streaks: []types.StreakTaskSpec{
			streak("Focused study block", "45 minutes, phone in another room", 20, false),
			streak("Flashcard review", "Clear today's due cards", 10, false),
		},
		Notes: []string{noteDays(types.BlueprintExamStudy, days)},
	}
	for i := 0; i <= days; i++ {
		switch i % 7 {
		case 3:
			out.Schedule = append(out.Schedule, oneOff(goal, i,
				"Review weak topics", "Revisit everything you got wrong this week", 25, false))
		case 5:
			out.Schedule = append(out.Schedule, oneOff(goal, i,
				"Timed practice test", "Full exam conditions, then grade it honestly", 35, true))
		}
	}
	return out
}

func instrumentPlan(goal types.GoalInput) types.PlanResult {
	days := planDays(goal, 14, 730)
	out := types.PlanResult{
		Streaks: []types.StreakTaskSpec{
			streak("Scales and technique", "15 minutes of fundamentals before anything fun", 15, false),
			streak("Repertoire practice", "Work the hardest passage, not the whole piece", 15, false),
		},
		Notes: []string{noteDays(types.BlueprintInstrument, days)},
	}
	for i := 0; i <= days; i++ {
		if i%7 == 4 {
			out.Schedule = append(out.Schedule, oneOff(goal, i,
				"Record yourself and review", "One take, then listen back with fresh ears", 25, true))
		}
		if i%14 == 6 {
			out.Schedule = append(out.Schedule, oneOff(goal, i,
				"Start a new piece section", "Sight-read it slowly before tempo work", 30, false))
		}
	}
	return out
}

func codingPlan(goal types.GoalInput) types.PlanResult {
	days := planDays(goal, 7, 365)
	out := types.PlanResult{
		Streaks: []types.StreakTaskSpec{
			streak("Write code for 30 minutes", "Commit something, however small", 20, false),
			streak("Read docs or a tutorial", "One concept you'll use tomorrow", 10, false),
		},
		Notes: []string{noteDays(types.BlueprintCoding, days)},
	}
	for i := 0; i <= days; i++ {
		switch i % 7 {
		case 2:
			out.Schedule = append(out.Schedule, oneOff(goal, i,
				"Ship a milestone", "Deploy or demo whatever works so far", 35, false, "milestone"))
		case 5:
			out.Schedule = append(out.Schedule, oneOff(goal, i,
				"Refactor and review", "Clean up this week's code before it hardens", 25, false, "milestone"))
		}
	}
	return out
}

// moneyOnlinePlan phases behavior by absolute day offset: the first week
// is research, the second is channel setup, and from day 14 on the plan
// alternates distribution and optimization work across the week. The
// progression keys purely on offset, never on external signals.
func moneyOnlinePlan(goal types.GoalInput) types.PlanResult {
	days := planDays(goal, 14, 545)
	out := types.PlanResult{
		Streaks: []types.StreakTaskSpec{
			streak("Daily outreach or content", "One post, pitch or email that could earn", 15, false),
			streak("Track the numbers", "Revenue, visitors, conversions; two minutes", 5, false),
		},
		Notes: []string{noteDays(types.BlueprintMoneyOnline, days)},
	}
	for i := 0; i <= days; i++ {
		switch {
		case i <= 6:
			if i%2 == 1 {
				out.Schedule = append(out.Schedule, oneOff(goal, i,
					"Market research: study one competitor", "What do they sell, to whom, at what price?", 20, false, "research"))
			}
		case i <= 13:
			if i%2 == 1 {
				out.Schedule = append(out.Schedule, oneOff(goal, i,
					"Set up your channel", "Storefront, profile or landing page; one piece at a time", 25, false, "setup"))
			}
		default:
			switch i % 7 {
			case 1:
				out.Schedule = append(out.Schedule, oneOff(goal, i,
					"Publish and distribute", "Get this week's offer in front of new people", 30, false, "distribution"))
			case 4:
				out.Schedule = append(out.Schedule, oneOff(goal, i,
					"Review metrics and optimize", "Double down on what converted, cut what didn't", 25, false, "optimization"))
			}
		}
	}
	return out
}

// genericPlan is the guaranteed-safe fallback. It must produce a
// non-empty plan for any valid GoalInput.
func genericPlan(goal types.GoalInput) types.PlanResult {
	days := planDays(goal, 1, 730)
	out := types.PlanResult{
		Streaks: []types.StreakTaskSpec{
			streak("Make daily progress", "One concrete step toward the goal", 10, false),
			streak("Journal one line", "What moved today, what's blocked", 5, false),
		},
		Notes: []string{noteDays(types.BlueprintGeneric, days)},
	}
	for i := 0; i <= days; i++ {
		if i%7 == 3 {
			out.Schedule = append(out.Schedule, oneOff(goal, i,
				"Weekly checkpoint", "Review the week and adjust the plan", 20, false, "checkpoint"))
		}
	}
	return out
}
