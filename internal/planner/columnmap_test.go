package planner

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hyperengineering/stride/internal/types"
)

// fakeProber implements ColumnProber over a fixed column set.
type fakeProber struct {
	cols      map[string]bool
	samples   map[string]any
	probeErrs map[string]error
	probes    []string
}

func (f *fakeProber) ProbeColumn(ctx context.Context, col string) (bool, error) {
	f.probes = append(f.probes, col)
	if err, ok := f.probeErrs[col]; ok {
		return false, err
	}
	return f.cols[col], nil
}

func (f *fakeProber) SampleColumn(ctx context.Context, col string) (any, bool, error) {
	v, ok := f.samples[col]
	return v, ok, nil
}

func TestDetectColumnMap_DatePriority(t *testing.T) {
	prober := &fakeProber{cols: map[string]bool{
		"task_date": true,
		"date":      true,
	}}

	cmap, err := DetectColumnMap(context.Background(), prober)
	if err != nil {
		t.Fatalf("DetectColumnMap error = %v", err)
	}
	if cmap.PrimaryDateCol != "task_date" {
		t.Errorf("PrimaryDateCol = %q, want task_date", cmap.PrimaryDateCol)
	}
	if len(cmap.AlsoSetDateCols) != 1 || cmap.AlsoSetDateCols[0] != "date" {
		t.Errorf("AlsoSetDateCols = %v, want [date]", cmap.AlsoSetDateCols)
	}
}

func TestDetectColumnMap_MostSpecificDateWins(t *testing.T) {
	prober := &fakeProber{cols: map[string]bool{
		"due_date":      true,
		"scheduled_for": true,
		"date":          true,
	}}

	cmap, err := DetectColumnMap(context.Background(), prober)
	if err != nil {
		t.Fatalf("DetectColumnMap error = %v", err)
	}
	if cmap.PrimaryDateCol != "due_date" {
		t.Errorf("PrimaryDateCol = %q, want due_date", cmap.PrimaryDateCol)
	}
	if len(cmap.AlsoSetDateCols) != 2 {
		t.Errorf("AlsoSetDateCols = %v, want both remaining date columns", cmap.AlsoSetDateCols)
	}
}

func TestDetectColumnMap_NoDateColumn(t *testing.T) {
	prober := &fakeProber{cols: map[string]bool{"title": true}}

	_, err := DetectColumnMap(context.Background(), prober)
	if !errors.Is(err, ErrNoDateColumn) {
		t.Fatalf("error = %v, want ErrNoDateColumn", err)
	}
}

func TestDetectColumnMap_DateProbeErrorPropagates(t *testing.T) {
	prober := &fakeProber{
		cols:      map[string]bool{"due_date": true},
		probeErrs: map[string]error{"due_date": fmt.Errorf("connection reset")},
	}

	if _, err := DetectColumnMap(context.Background(), prober); err == nil {
		t.Fatal("expected error when a date probe fails, got nil")
	}
}

func TestDetectColumnMap_OptionalProbeErrorDegrades(t *testing.T) {
	// A failed probe on an optional column means absence, not failure.
	prober := &fakeProber{
		cols:      map[string]bool{"due_date": true, "tags": true},
		probeErrs: map[string]error{"tags": fmt.Errorf("timeout")},
	}

	cmap, err := DetectColumnMap(context.Background(), prober)
	if err != nil {
		t.Fatalf("DetectColumnMap error = %v", err)
	}
	if cmap.TagsCol != "" {
		t.Errorf("TagsCol = %q, want empty after probe failure", cmap.TagsCol)
	}
}

func TestDetectColumnMap_TypeDetection(t *testing.T) {
	tests := []struct {
		name     string
		cols     map[string]bool
		samples  map[string]any
		wantCol  string
		wantKind types.TypeKind
	}{
		{
			name:     "task_type is text",
			cols:     map[string]bool{"due_date": true, "task_type": true},
			wantCol:  "task_type",
			wantKind: types.TypeKindText,
		},
		{
			name:     "is_streak is bool",
			cols:     map[string]bool{"due_date": true, "is_streak": true},
			wantCol:  "is_streak",
			wantKind: types.TypeKindBool,
		},
		{
			name:     "metadata is json",
			cols:     map[string]bool{"due_date": true, "metadata": true},
			wantCol:  "metadata",
			wantKind: types.TypeKindJSON,
		},
		{
			name:     "ambiguous type sampled as string",
			cols:     map[string]bool{"due_date": true, "type": true},
			samples:  map[string]any{"type": "today"},
			wantCol:  "type",
			wantKind: types.TypeKindText,
		},
		{
			name:     "ambiguous type sampled as integer bool",
			cols:     map[string]bool{"due_date": true, "type": true},
			samples:  map[string]any{"type": int64(1)},
			wantCol:  "type",
			wantKind: types.TypeKindBool,
		},
		{
			name:     "ambiguous type sampled as json object string",
			cols:     map[string]bool{"due_date": true, "type": true},
			samples:  map[string]any{"type": `{"kind":"streak"}`},
			wantCol:  "type",
			wantKind: types.TypeKindJSON,
		},
		{
			name:     "ambiguous type with no rows defaults to text",
			cols:     map[string]bool{"due_date": true, "type": true},
			wantCol:  "type",
			wantKind: types.TypeKindText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prober := &fakeProber{cols: tt.cols, samples: tt.samples}
			cmap, err := DetectColumnMap(context.Background(), prober)
			if err != nil {
				t.Fatalf("DetectColumnMap error = %v", err)
			}
			if cmap.TypeMap == nil {
				t.Fatal("TypeMap = nil, want detected type column")
			}
			if cmap.TypeMap.Col != tt.wantCol {
				t.Errorf("TypeMap.Col = %q, want %q", cmap.TypeMap.Col, tt.wantCol)
			}
			if cmap.TypeMap.Kind != tt.wantKind {
				t.Errorf("TypeMap.Kind = %q, want %q", cmap.TypeMap.Kind, tt.wantKind)
			}
		})
	}
}

func TestDetectColumnMap_OptionalColumnsAbsent(t *testing.T) {
	prober := &fakeProber{cols: map[string]bool{"due_date": true}}

	cmap, err := DetectColumnMap(context.Background(), prober)
	if err != nil {
		t.Fatalf("DetectColumnMap error = %v", err)
	}
	if cmap.TimeCol != "" || cmap.ProofCol != "" || cmap.TagsCol != "" || cmap.TypeMap != nil {
		t.Errorf("optional columns should all be absent, got %+v", cmap)
	}
}
