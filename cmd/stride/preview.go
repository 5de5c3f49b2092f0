package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/hyperengineering/stride/internal/planner"
	"github.com/hyperengineering/stride/internal/types"
	"github.com/spf13/cobra"
)

var previewFlags struct {
	title       string
	description string
	category    string
	deadline    string
	start       string
}

// previewCmd runs the local fallback planner offline and prints the
// capped day-by-day plan as JSON. No storage, no network.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview a locally generated plan for a goal",
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&previewFlags.title, "title", "", "goal title (required)")
	previewCmd.Flags().StringVar(&previewFlags.description, "description", "", "goal description")
	previewCmd.Flags().StringVar(&previewFlags.category, "category", "", "goal category")
	previewCmd.Flags().StringVar(&previewFlags.deadline, "deadline", "", "goal deadline, YYYY-MM-DD (required)")
	previewCmd.Flags().StringVar(&previewFlags.start, "start", "", "plan start day, YYYY-MM-DD (defaults to today)")
	previewCmd.MarkFlagRequired("title")
	previewCmd.MarkFlagRequired("deadline")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	now := time.Now()
	start := previewFlags.start
	if start == "" {
		start = planner.FormatDay(now)
	}

	goal := types.GoalInput{
		ID:           "preview",
		Title:        previewFlags.title,
		Description:  previewFlags.description,
		Category:     previewFlags.category,
		CreatedAtISO: start,
		DeadlineISO:  previewFlags.deadline,
	}
	if _, err := planner.ParseDay(goal.DeadlineISO); err != nil {
		return fmt.Errorf("invalid --deadline: %w", err)
	}
	if _, err := planner.ParseDay(goal.CreatedAtISO); err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}

	plan := planner.LocalPlanFor(goal, now)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}
