package personalize

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/hyperengineering/stride/internal/types"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// mockChatService implements ChatService for testing.
type mockChatService struct {
	content   string
	err       error
	callCount int
}

func (m *mockChatService) New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	m.callCount++
	if m.err != nil {
		return nil, m.err
	}
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: m.content}},
		},
	}, nil
}

func samplePlan() types.PlanResult {
	return types.PlanResult{
		Streaks: []types.StreakTaskSpec{
			{Title: "Learn 10 new words", Description: "Flashcards", XP: 15},
			{Title: "Listening practice", Description: "Podcasts", XP: 10, ProofRequired: true},
		},
		Schedule: []types.ScheduledTask{
			{GoalID: "g1", Title: "Grammar deep dive", XP: 25, DateISO: "2024-01-03"},
		},
		Notes: []string{"blueprint=language days=30"},
	}
}

func sampleGoal() types.GoalInput {
	return types.GoalInput{ID: "g1", Title: "Learn Spanish"}
}

func newTestRewriter(chat ChatService) *OpenAI {
	return &OpenAI{chat: chat, model: "gpt-4o-mini"}
}

func TestRewrite_PatchesTextOnly(t *testing.T) {
	mock := &mockChatService{
		content: `{"streaks":[{"title":"Ten fresh Spanish words","description":"Quick flashcard round"},{"title":"","description":""}],"schedule":[{"title":"Deep grammar session","description":""}]}`,
	}
	r := newTestRewriter(mock)

	in := samplePlan()
	out := r.Rewrite(context.Background(), sampleGoal(), in)

	if out.Streaks[0].Title != "Ten fresh Spanish words" {
		t.Errorf("Streaks[0].Title = %q, want rewritten text", out.Streaks[0].Title)
	}
	if out.Streaks[0].Description != "Quick flashcard round" {
		t.Errorf("Streaks[0].Description = %q, want rewritten text", out.Streaks[0].Description)
	}
	// Empty replacements keep the original text
	if out.Streaks[1].Title != "Listening practice" {
		t.Errorf("Streaks[1].Title = %q, want original", out.Streaks[1].Title)
	}
	if out.Schedule[0].Title != "Deep grammar session" {
		t.Errorf("Schedule[0].Title = %q, want rewritten text", out.Schedule[0].Title)
	}

	// Structure is untouched: lengths, XP, dates, flags
	if len(out.Streaks) != len(in.Streaks) || len(out.Schedule) != len(in.Schedule) {
		t.Error("rewrite changed array lengths")
	}
	if out.Streaks[0].XP != 15 || out.Streaks[1].XP != 10 || out.Schedule[0].XP != 25 {
		t.Error("rewrite changed XP values")
	}
	if out.Schedule[0].DateISO != "2024-01-03" {
		t.Errorf("rewrite changed a date: %q", out.Schedule[0].DateISO)
	}
	if !out.Streaks[1].ProofRequired {
		t.Error("rewrite changed a proof flag")
	}
}

func TestRewrite_ServiceErrorReturnsInput(t *testing.T) {
	mock := &mockChatService{err: errors.New("rate limited")}
	r := newTestRewriter(mock)

	in := samplePlan()
	out := r.Rewrite(context.Background(), sampleGoal(), in)

	if !reflect.DeepEqual(out, in) {
		t.Error("rewrite did not return the input unchanged on service error")
	}
	if mock.callCount != 1 {
		t.Errorf("callCount = %d, want 1 (no retries)", mock.callCount)
	}
}

func TestRewrite_UnparseableReplyReturnsInput(t *testing.T) {
	mock := &mockChatService{content: "Sorry, I can't help with that."}
	r := newTestRewriter(mock)

	in := samplePlan()
	out := r.Rewrite(context.Background(), sampleGoal(), in)

	if !reflect.DeepEqual(out, in) {
		t.Error("rewrite did not return the input unchanged on unparseable reply")
	}
}

func TestRewrite_OverlongReplyIgnoresExtras(t *testing.T) {
	mock := &mockChatService{
		content: `{"streaks":[{"title":"A"},{"title":"B"},{"title":"C"},{"title":"D"}],"schedule":[]}`,
	}
	r := newTestRewriter(mock)

	out := r.Rewrite(context.Background(), sampleGoal(), samplePlan())
	if len(out.Streaks) != 2 {
		t.Fatalf("len(Streaks) = %d, want 2; a longer reply must never grow the plan", len(out.Streaks))
	}
	if out.Streaks[0].Title != "A" || out.Streaks[1].Title != "B" {
		t.Error("matched-index patches were not applied")
	}
}

func TestRewrite_CodeFencedReply(t *testing.T) {
	mock := &mockChatService{
		content: "```json\n{\"streaks\":[{\"title\":\"Fenced title\"}],\"schedule\":[]}\n```",
	}
	r := newTestRewriter(mock)

	out := r.Rewrite(context.Background(), sampleGoal(), samplePlan())
	if out.Streaks[0].Title != "Fenced title" {
		t.Errorf("Streaks[0].Title = %q, want text from fenced JSON", out.Streaks[0].Title)
	}
}

func TestRewrite_DoesNotMutateInput(t *testing.T) {
	mock := &mockChatService{
		content: `{"streaks":[{"title":"Changed"}],"schedule":[]}`,
	}
	r := newTestRewriter(mock)

	in := samplePlan()
	_ = r.Rewrite(context.Background(), sampleGoal(), in)

	if in.Streaks[0].Title != "Learn 10 new words" {
		t.Errorf("input plan was mutated: %q", in.Streaks[0].Title)
	}
}

func TestModelName(t *testing.T) {
	r := newTestRewriter(&mockChatService{})
	if got := r.ModelName(); got != "gpt-4o-mini" {
		t.Errorf("ModelName() = %q, want gpt-4o-mini", got)
	}
}
