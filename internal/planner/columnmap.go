package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hyperengineering/stride/internal/types"
)

// ErrNoDateColumn is returned when the task table exposes none of the
// candidate date columns. Planning cannot proceed without one; there is
// no safe default to assume.
var ErrNoDateColumn = errors.New("task table has no usable date column")

// ColumnProber is the slice of the storage collaborator the detector
// needs: zero-row existence probes and single-value sampling.
type ColumnProber interface {
	// ProbeColumn reports whether the column exists, via a zero-row select.
	ProbeColumn(ctx context.Context, col string) (bool, error)
	// SampleColumn returns one non-null value from the column, if any.
	SampleColumn(ctx context.Context, col string) (any, bool, error)
}

// Candidate column names, most-specific and most-recently-introduced
// first. The physical schema differs across deployments and migrations,
// so nothing here is guaranteed; the first date hit becomes the primary
// and every other existing date column is also populated on insert to
// satisfy not-null constraints older schemas carry.
var (
	dateColCandidates  = []string{"due_date", "scheduled_for", "task_date", "date"}
	timeColCandidates  = []string{"due_time", "time"}
	proofColCandidates = []string{"proof_required", "requires_proof", "needs_proof"}
	tagsColCandidates  = []string{"tags", "labels"}
)

// typeColCandidates pair a candidate type column with its known encoding.
// An empty kind means the column is ambiguous and must be resolved by
// sampling an existing value.
var typeColCandidates = []struct {
	col  string
	kind types.TypeKind
}{
	{"task_type", types.TypeKindText},
	{"is_streak", types.TypeKindBool},
	{"metadata", types.TypeKindJSON},
	{"type", ""},
}

// DetectColumnMap probes the task table and builds the column map every
// row-building step depends on. Only a missing date column is fatal; all
// other absences degrade functionality without blocking insertion.
func DetectColumnMap(ctx context.Context, prober ColumnProber) (*types.TaskColumnMap, error) {
	cmap := &types.TaskColumnMap{}

	for _, col := range dateColCandidates {
		ok, err := prober.ProbeColumn(ctx, col)
		if err != nil {
			return nil, fmt.Errorf("probe date column %q: %w", col, err)
		}
		if !ok {
			continue
		}
		if cmap.PrimaryDateCol == "" {
			cmap.PrimaryDateCol = col
		} else {
			cmap.AlsoSetDateCols = append(cmap.AlsoSetDateCols, col)
		}
	}
	if cmap.PrimaryDateCol == "" {
		return nil, fmt.Errorf("%w (tried %v)", ErrNoDateColumn, dateColCandidates)
	}

	cmap.TimeCol = firstExisting(ctx, prober, timeColCandidates)
	cmap.ProofCol = firstExisting(ctx, prober, proofColCandidates)
	cmap.TagsCol = firstExisting(ctx, prober, tagsColCandidates)

	for _, cand := range typeColCandidates {
		ok, err := prober.ProbeColumn(ctx, cand.col)
		if err != nil || !ok {
			continue
		}
		kind := cand.kind
		if kind == "" {
			kind = inferTypeKind(ctx, prober, cand.col)
		}
		cmap.TypeMap = &types.TypeColumn{Kind: kind, Col: cand.col}
		break
	}

	return cmap, nil
}

// firstExisting returns the first candidate column that probes as
// present. Probe errors are treated as absence: these columns are all
// optional and a failed probe must not block planning.
func firstExisting(ctx context.Context, prober ColumnProber, candidates []string) string {
	for _, col := range candidates {
		if ok, err := prober.ProbeColumn(ctx, col); err == nil && ok {
			return col
		}
	}
	return ""
}

// inferTypeKind resolves the ambiguous generic "type" column by sampling
// one existing non-null value. Inconclusive sampling defaults to text,
// the encoding every deployment has accepted so far.
func inferTypeKind(ctx context.Context, prober ColumnProber, col string) types.TypeKind {
	v, ok, err := prober.SampleColumn(ctx, col)
	if err != nil || !ok {
		return types.TypeKindText
	}
	switch val := v.(type) {
	case bool:
		return types.TypeKindBool
	case int, int32, int64, float64:
		// SQLite surfaces booleans as integers.
		return types.TypeKindBool
	case map[string]any:
		return types.TypeKindJSON
	case string:
		// A JSON-object payload stored in a text column still counts as a
		// JSON encoding; match what existing rows actually hold.
		var obj map[string]any
		if len(val) > 0 && val[0] == '{' && json.Unmarshal([]byte(val), &obj) == nil {
			return types.TypeKindJSON
		}
		return types.TypeKindText
	default:
		return types.TypeKindText
	}
}
