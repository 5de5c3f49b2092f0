package types

// Priority represents the urgency a user assigned to a goal.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// BlueprintID identifies a domain blueprint in the catalog.
type BlueprintID string

const (
	BlueprintLanguage    BlueprintID = "language"
	BlueprintMuscle      BlueprintID = "muscle"
	BlueprintExamStudy   BlueprintID = "examStudy"
	BlueprintInstrument  BlueprintID = "instrument"
	BlueprintCoding      BlueprintID = "coding"
	BlueprintMoneyOnline BlueprintID = "moneyOnline"
	BlueprintGeneric     BlueprintID = "generic"
)

// GoalInput is an immutable planning request. Dates are ISO calendar days
// (YYYY-MM-DD) interpreted in local time. A deadline on or before the
// creation date still produces a one-day plan; the planner clamps rather
// than erroring.
type GoalInput struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Category     string   `json:"category,omitempty"`
	DeadlineISO  string   `json:"deadline"`
	CreatedAtISO string   `json:"created_at"`
	TargetValue  float64  `json:"target_value,omitempty"`
	Unit         string   `json:"unit,omitempty"`
	Priority     Priority `json:"priority,omitempty"`
}

// StreakTaskSpec is a recurring habit template. It carries no date; the
// scheduler expands it once per calendar day of the plan.
type StreakTaskSpec struct {
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	XP            int    `json:"xp"`
	ProofRequired bool   `json:"proof_required"`
}

// ScheduledTask is a one-off task bound to exactly one calendar day.
type ScheduledTask struct {
	GoalID        string   `json:"goal_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	XP            int      `json:"xp"`
	DateISO       string   `json:"date"`
	IsStreak      bool     `json:"is_streak"`
	ProofRequired bool     `json:"proof_required"`
	Tags          []string `json:"tags,omitempty"`
}

// PlanResult is a blueprint's output: the recurring habits, the dated
// one-off schedule, and diagnostic notes (audit strings, not a contract).
type PlanResult struct {
	Streaks  []StreakTaskSpec `json:"streaks"`
	Schedule []ScheduledTask  `json:"schedule"`
	Notes    []string         `json:"notes,omitempty"`
}

// TypeKind describes how a deployment's task table encodes the
// today/streak discriminator.
type TypeKind string

const (
	TypeKindText TypeKind = "text"
	TypeKindBool TypeKind = "bool"
	TypeKindJSON TypeKind = "json"
)

// TypeColumn pairs a physical column with its detected encoding.
type TypeColumn struct {
	Kind TypeKind `json:"kind"`
	Col  string   `json:"col"`
}

// TaskColumnMap is the runtime-detected description of the task table's
// physical schema. It is derived once per planning call, passed explicitly
// to everything that builds rows, and never persisted.
type TaskColumnMap struct {
	PrimaryDateCol  string      `json:"primary_date_col"`
	AlsoSetDateCols []string    `json:"also_set_date_cols,omitempty"`
	TimeCol         string      `json:"time_col,omitempty"`
	TypeMap         *TypeColumn `json:"type_map,omitempty"`
	ProofCol        string      `json:"proof_col,omitempty"`
	TagsCol         string      `json:"tags_col,omitempty"`
}

// InsertResult reports how many rows a plan wrote, split by task kind.
type InsertResult struct {
	Today  int      `json:"today"`
	Streak int      `json:"streak"`
	Notes  []string `json:"notes,omitempty"`
}

// PlanRequest is the API payload for seeding a goal's task plan.
type PlanRequest struct {
	UserID string    `json:"user_id"`
	Goal   GoalInput `json:"goal"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	RewriterModel string `json:"rewriter_model,omitempty"`
	TaskCount     int64  `json:"task_count"`
}
