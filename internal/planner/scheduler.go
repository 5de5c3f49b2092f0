package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hyperengineering/stride/internal/personalize"
	"github.com/hyperengineering/stride/internal/types"
	"github.com/oklog/ulid/v2"
)

// DefaultChunkSize bounds how many streak row-days go into one bulk
// insert when no explicit size is configured.
const DefaultChunkSize = 20000

// TaskStore is the slice of the storage collaborator the scheduler
// depends on: the detector's probes plus bulk insertion. Rows are maps
// keyed by physical column name because the schema is only known at
// probe time.
type TaskStore interface {
	ColumnProber
	InsertTasks(ctx context.Context, rows []map[string]any) error
}

// ChunkError reports a failed bulk insert along with how many chunks
// committed before the failure. There is no rollback across chunks;
// callers decide on compensating cleanup.
type ChunkError struct {
	Committed int
	Err       error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("streak insert failed after %d committed chunks: %v", e.Committed, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

// Scheduler assembles and persists a goal's task plan. One instance is
// safe for concurrent use; the column map is detected per call and passed
// down explicitly, never cached.
type Scheduler struct {
	store     TaskStore
	rewriter  personalize.Rewriter
	chunkSize int
}

// NewScheduler creates a Scheduler. rewriter may be nil to disable
// personalization; chunkSize <= 0 selects DefaultChunkSize.
func NewScheduler(store TaskStore, rewriter personalize.Rewriter, chunkSize int) *Scheduler {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Scheduler{store: store, rewriter: rewriter, chunkSize: chunkSize}
}

// Plan runs the full pipeline for one goal: classify, generate, optionally
// personalize, guarantee a kickoff task, detect the column schema, then
// bulk-insert today rows and chunked streak rows. Any insert error aborts
// the remaining work and propagates; already-written rows stay written.
func (s *Scheduler) Plan(ctx context.Context, userID string, goal types.GoalInput) (*types.InsertResult, error) {
	id := SelectBlueprint(goal)
	plan := BlueprintFor(id)(goal)

	if s.rewriter != nil {
		plan = s.rewriter.Rewrite(ctx, goal, plan)
	}

	plan = ensureKickoff(goal, plan)

	cmap, err := DetectColumnMap(ctx, s.store)
	if err != nil {
		return nil, fmt.Errorf("detect task schema: %w", err)
	}

	todayRows := make([]map[string]any, 0, len(plan.Schedule))
	for _, task := range plan.Schedule {
		todayRows = append(todayRows, buildRow(userID, goal.ID, cmap, rowSpec{
			title:         task.Title,
			description:   task.Description,
			xp:            task.XP,
			dateISO:       task.DateISO,
			isStreak:      false,
			proofRequired: task.ProofRequired,
			tags:          task.Tags,
		}))
	}
	if err := s.store.InsertTasks(ctx, todayRows); err != nil {
		return nil, fmt.Errorf("insert today tasks: %w", err)
	}

	days := DayRange(goal.CreatedAtISO, goal.DeadlineISO)
	streakRows := make([]map[string]any, 0, len(days)*len(plan.Streaks))
	for _, day := range days {
		for _, spec := range plan.Streaks {
			streakRows = append(streakRows, buildRow(userID, goal.ID, cmap, rowSpec{
				title:         spec.Title,
				description:   spec.Description,
				xp:            spec.XP,
				dateISO:       day,
				isStreak:      true,
				proofRequired: spec.ProofRequired,
			}))
		}
	}
	if err := s.insertChunked(ctx, streakRows); err != nil {
		return nil, err
	}

	slog.Info("plan seeded",
		"component", "planner",
		"blueprint", string(id),
		"goal_id", goal.ID,
		"today", len(todayRows),
		"streak", len(streakRows),
	)

	return &types.InsertResult{
		Today:  len(todayRows),
		Streak: len(streakRows),
		Notes:  plan.Notes,
	}, nil
}

// insertChunked writes streak rows in sequential size-bounded batches.
// Sequential on purpose: a failed chunk aborts the rest, keeping the
// partial-failure surface a single prefix of chunks.
func (s *Scheduler) insertChunked(ctx context.Context, rows []map[string]any) error {
	committed := 0
	for start := 0; start < len(rows); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := s.store.InsertTasks(ctx, rows[start:end]); err != nil {
			return &ChunkError{Committed: committed, Err: err}
		}
		committed++
	}
	return nil
}

// ensureKickoff guarantees at least one schedule task dated on the plan's
// start day, so every goal has an immediately-actionable item regardless
// of the blueprint's day-of-week conditions.
func ensureKickoff(goal types.GoalInput, plan types.PlanResult) types.PlanResult {
	for _, task := range plan.Schedule {
		if task.DateISO == goal.CreatedAtISO {
			return plan
		}
	}
	kickoff := types.ScheduledTask{
		GoalID:      goal.ID,
		Title:       fmt.Sprintf("Kick off: %s", goal.Title),
		Description: "Spend 15 minutes setting up whatever the first real step needs",
		XP:          15,
		DateISO:     goal.CreatedAtISO,
		Tags:        []string{"kickoff"},
	}
	plan.Schedule = append([]types.ScheduledTask{kickoff}, plan.Schedule...)
	plan.Notes = append(plan.Notes, "kickoff task added for day 0")
	return plan
}

// rowSpec is the schema-independent description of one task row.
type rowSpec struct {
	title         string
	description   string
	xp            int
	dateISO       string
	isStreak      bool
	proofRequired bool
	tags          []string
}

// buildRow maps a task onto physical columns per the detected map. The
// date lands in the primary column and every redundant date column;
// optional fields are written only when their column exists.
func buildRow(userID, goalID string, cmap *types.TaskColumnMap, spec rowSpec) map[string]any {
	row := map[string]any{
		"id":          ulid.Make().String(),
		"user_id":     userID,
		"goal_id":     goalID,
		"title":       spec.title,
		"description": spec.description,
		"xp":          spec.xp,
	}
	row[cmap.PrimaryDateCol] = spec.dateISO
	for _, col := range cmap.AlsoSetDateCols {
		row[col] = spec.dateISO
	}
	if cmap.TypeMap != nil {
		row[cmap.TypeMap.Col] = encodeTaskType(cmap.TypeMap.Kind, spec.isStreak)
	}
	if cmap.ProofCol != "" {
		row[cmap.ProofCol] = spec.proofRequired
	}
	if cmap.TagsCol != "" && len(spec.tags) > 0 {
		row[cmap.TagsCol] = encodeTags(spec.tags)
	}
	return row
}

// encodeTaskType renders the today/streak discriminator in whatever
// encoding the deployment's type column uses.
func encodeTaskType(kind types.TypeKind, isStreak bool) any {
	switch kind {
	case types.TypeKindBool:
		return isStreak
	case types.TypeKindJSON:
		kindName := "today"
		if isStreak {
			kindName = "streak"
		}
		b, _ := json.Marshal(map[string]string{"kind": kindName})
		return string(b)
	default:
		if isStreak {
			return "streak"
		}
		return "today"
	}
}

// encodeTags stores tags as a JSON array string, the one representation
// every observed deployment accepts for its tags/labels column.
func encodeTags(tags []string) any {
	b, _ := json.Marshal(tags)
	return string(b)
}
