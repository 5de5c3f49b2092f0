package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hyperengineering/stride/internal/types"
)

const (
	maxTitleLength       = 500
	maxDescriptionLength = 4000
	dayLayout            = "2006-01-02"
)

// FieldError represents a single field validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidatePlanRequest checks the API payload for seeding a plan.
func ValidatePlanRequest(req types.PlanRequest) []FieldError {
	var errs []FieldError
	if strings.TrimSpace(req.UserID) == "" {
		errs = append(errs, FieldError{Field: "user_id", Message: "is required"})
	}
	errs = append(errs, ValidateGoalInput(req.Goal)...)
	return errs
}

// ValidateGoalInput checks a planning request's goal fields.
func ValidateGoalInput(goal types.GoalInput) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(goal.ID) == "" {
		errs = append(errs, FieldError{Field: "goal.id", Message: "is required"})
	}
	errs = append(errs, validateText("goal.title", goal.Title, maxTitleLength, true)...)
	errs = append(errs, validateText("goal.description", goal.Description, maxDescriptionLength, false)...)
	errs = append(errs, validateDay("goal.created_at", goal.CreatedAtISO)...)
	errs = append(errs, validateDay("goal.deadline", goal.DeadlineISO)...)

	switch goal.Priority {
	case "", types.PriorityLow, types.PriorityMedium, types.PriorityHigh:
	default:
		errs = append(errs, FieldError{Field: "goal.priority", Message: "must be low, medium or high"})
	}

	if goal.TargetValue < 0 {
		errs = append(errs, FieldError{Field: "goal.target_value", Message: "must not be negative"})
	}

	return errs
}

// validateText applies the shared text rules: presence (when required),
// valid UTF-8, no null bytes, bounded rune length.
func validateText(field, value string, max int, required bool) []FieldError {
	var errs []FieldError
	if required && strings.TrimSpace(value) == "" {
		return []FieldError{{Field: field, Message: "is required"}}
	}
	if !utf8.ValidString(value) {
		errs = append(errs, FieldError{Field: field, Message: "must be valid UTF-8"})
	}
	if strings.Contains(value, "\x00") {
		errs = append(errs, FieldError{Field: field, Message: "must not contain null bytes"})
	}
	if utf8.RuneCountInString(value) > max {
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("exceeds maximum length of %d characters", max)})
	}
	return errs
}

// validateDay requires an ISO calendar date (YYYY-MM-DD).
func validateDay(field, value string) []FieldError {
	if value == "" {
		return []FieldError{{Field: field, Message: "is required"}}
	}
	if _, err := time.Parse(dayLayout, value); err != nil {
		return []FieldError{{Field: field, Message: "must be an ISO date (YYYY-MM-DD)"}}
	}
	return nil
}
