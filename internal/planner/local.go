package planner

import (
	"sort"
	"strings"
	"time"

	"github.com/hyperengineering/stride/internal/types"
)

// The local planner is the fully client-side fallback used when the
// remote planning path is unreachable. It is storage-independent and
// budget-driven: instead of XP it weighs tasks by load score and caps
// each day's total effort.

const (
	// maxDailyLoad bounds streak load plus accepted today-task load.
	maxDailyLoad = 5
	// maxTodayPerDay bounds one-off tasks on a single day.
	maxTodayPerDay = 3
	// setupCutoffHour: goals created at or after this local hour get a
	// minimal day-0 instead of a full workload they cannot finish.
	setupCutoffHour = 9
)

// ProofMode says how a habit's completion is evidenced.
type ProofMode string

const (
	ProofFlex     ProofMode = "flex"
	ProofRealtime ProofMode = "realtime"
)

// LocalCategory is the local planner's coarse goal classification.
type LocalCategory string

const (
	LocalFitness  LocalCategory = "fitness"
	LocalLearning LocalCategory = "learning"
	LocalBusiness LocalCategory = "business"
	LocalCreative LocalCategory = "creative"
	LocalGeneral  LocalCategory = "general"
)

// LocalStreak is a recurring habit weighted by effort, not XP.
type LocalStreak struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	LoadScore   int       `json:"load_score"`
	ProofMode   ProofMode `json:"proof_mode"`
}

// LocalTask is a one-off task candidate for a specific day.
type LocalTask struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	LoadScore   int    `json:"load_score"`
}

// LocalDay is one planned calendar day after budget enforcement.
type LocalDay struct {
	DateISO string      `json:"date"`
	Tasks   []LocalTask `json:"tasks"`
}

// LocalPlan is the local planner's intermediate representation.
type LocalPlan struct {
	Category LocalCategory `json:"category"`
	Streaks  []LocalStreak `json:"streaks"`
	Days     []LocalDay    `json:"days"`
}

var localKeywords = []struct {
	category LocalCategory
	keywords []string
}{
	{LocalFitness, []string{"fitness", "gym", "run", "weight", "muscle", "workout", "health", "marathon"}},
	{LocalLearning, []string{"learn", "study", "language", "course", "exam", "read", "skill"}},
	{LocalBusiness, []string{"business", "money", "income", "startup", "client", "sales", "freelance"}},
	{LocalCreative, []string{"write", "draw", "paint", "music", "song", "novel", "art", "create", "photography"}},
}

// ClassifyLocal maps a goal's free text to one of the five coarse local
// categories. Same first-match-wins discipline as the blueprint selector.
func ClassifyLocal(goal types.GoalInput) LocalCategory {
	text := strings.ToLower(goal.Title + " " + goal.Description + " " + goal.Category)
	for _, group := range localKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(text, kw) {
				return group.category
			}
		}
	}
	return LocalGeneral
}

// LocalPlanFor builds a capped day-by-day plan without touching storage.
// now supplies the wall clock for the late-creation rule: a goal created
// at or after 09:00 on its own start day gets a single setup task on day
// 0 rather than a full generated set.
func LocalPlanFor(goal types.GoalInput, now time.Time) LocalPlan {
	category := ClassifyLocal(goal)
	streaks := localStreaks(category)

	streakLoad := 0
	for _, s := range streaks {
		streakLoad += s.LoadScore
	}

	days := DayRange(goal.CreatedAtISO, goal.DeadlineISO)
	plan := LocalPlan{Category: category, Streaks: streaks, Days: make([]LocalDay, 0, len(days))}

	lateStart := FormatDay(now) == goal.CreatedAtISO && now.Hour() >= setupCutoffHour

	for i, day := range days {
		if i == 0 && lateStart {
			plan.Days = append(plan.Days, LocalDay{
				DateISO: day,
				Tasks: []LocalTask{{
					Title:       "Set up: " + goal.Title,
					Description: "It's late in the day; just get the pieces in place for tomorrow",
					LoadScore:   1,
				}},
			})
			continue
		}
		plan.Days = append(plan.Days, LocalDay{
			DateISO: day,
			Tasks:   capDay(localCandidates(category, i), streakLoad),
		})
	}
	return plan
}

// capDay enforces the two hard budgets: at most maxTodayPerDay accepted
// tasks, and streak load plus accepted load within maxDailyLoad. Heaviest
// candidates are considered first so high-value work wins the budget.
func capDay(candidates []LocalTask, streakLoad int) []LocalTask {
	sorted := append([]LocalTask(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LoadScore > sorted[j].LoadScore
	})

	accepted := make([]LocalTask, 0, maxTodayPerDay)
	load := streakLoad
	for _, cand := range sorted {
		if len(accepted) >= maxTodayPerDay {
			break
		}
		if load+cand.LoadScore > maxDailyLoad {
			continue
		}
		accepted = append(accepted, cand)
		load += cand.LoadScore
	}
	return accepted
}

func localStreaks(category LocalCategory) []LocalStreak {
	switch category {
	case LocalFitness:
		return []LocalStreak{
			{Title: "Move for 20 minutes", Description: "Anything that raises your pulse", LoadScore: 2, ProofMode: ProofRealtime},
			{Title: "Log your meals", LoadScore: 1, ProofMode: ProofFlex},
		}
	case LocalLearning:
		return []LocalStreak{
			{Title: "Study for 25 minutes", Description: "One pomodoro, no phone", LoadScore: 2, ProofMode: ProofFlex},
		}
	case LocalBusiness:
		return []LocalStreak{
			{Title: "One outreach message", Description: "A pitch, post or email that could earn", LoadScore: 2, ProofMode: ProofFlex},
		}
	case LocalCreative:
		return []LocalStreak{
			{Title: "Create for 15 minutes", Description: "Quantity now, quality later", LoadScore: 2, ProofMode: ProofFlex},
		}
	default:
		return []LocalStreak{
			{Title: "One step toward the goal", LoadScore: 2, ProofMode: ProofFlex},
		}
	}
}

// localCandidates proposes today-task candidates for a day offset. The
// modular conditions spread heavier work across the week; capDay decides
// what actually fits.
func localCandidates(category LocalCategory, offset int) []LocalTask {
	var out []LocalTask
	switch category {
	case LocalFitness:
		if offset%7 == 1 || offset%7 == 4 {
			out = append(out, LocalTask{Title: "Full workout", Description: "Strength or intervals, 45 minutes", LoadScore: 2})
		}
		if offset%7 == 6 {
			out = append(out, LocalTask{Title: "Active recovery walk", LoadScore: 1})
		}
		if offset%2 == 0 {
			out = append(out, LocalTask{Title: "Stretch for 10 minutes", LoadScore: 1})
		}
	case LocalLearning:
		if offset%2 == 1 {
			out = append(out, LocalTask{Title: "Practice exercises", Description: "Apply what you studied yesterday", LoadScore: 2})
		}
		if offset%7 == 6 {
			out = append(out, LocalTask{Title: "Deep dive session", Description: "90 minutes on the hardest topic", LoadScore: 3})
		}
		if offset%3 == 2 {
			out = append(out, LocalTask{Title: "Summarize in your own words", LoadScore: 1})
		}
	case LocalBusiness:
		if offset%7 == 2 {
			out = append(out, LocalTask{Title: "Research one competitor", LoadScore: 2})
		}
		if offset%7 == 5 {
			out = append(out, LocalTask{Title: "Publish one piece of content", LoadScore: 2})
		}
		if offset%7 == 0 && offset > 0 {
			out = append(out, LocalTask{Title: "Review the numbers", LoadScore: 1})
		}
	case LocalCreative:
		if offset%7 == 3 {
			out = append(out, LocalTask{Title: "Finish and share one piece", LoadScore: 2})
		}
		if offset%7 == 6 {
			out = append(out, LocalTask{Title: "Study someone you admire", LoadScore: 1})
		}
	default:
		if offset%7 == 3 {
			out = append(out, LocalTask{Title: "Weekly review", Description: "What worked, what to change", LoadScore: 2})
		}
		if offset%2 == 0 {
			out = append(out, LocalTask{Title: "Focused block on the goal", LoadScore: 2})
		}
	}
	return out
}

// LocalRows converts a local plan into storage rows via the column map.
// XP derives from load: streaks earn load x 10 and today-tasks load x 15,
// so one-off effort outearns routine habit.
func LocalRows(plan LocalPlan, goal types.GoalInput, userID string, cmap *types.TaskColumnMap) []map[string]any {
	var rows []map[string]any
	for _, day := range plan.Days {
		for _, streak := range plan.Streaks {
			rows = append(rows, buildRow(userID, goal.ID, cmap, rowSpec{
				title:         streak.Title,
				description:   streak.Description,
				xp:            streak.LoadScore * 10,
				dateISO:       day.DateISO,
				isStreak:      true,
				proofRequired: streak.ProofMode == ProofRealtime,
			}))
		}
		for _, task := range day.Tasks {
			rows = append(rows, buildRow(userID, goal.ID, cmap, rowSpec{
				title:       task.Title,
				description: task.Description,
				xp:          task.LoadScore * 15,
				dateISO:     day.DateISO,
			}))
		}
	}
	return rows
}
