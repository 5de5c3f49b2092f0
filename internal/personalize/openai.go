package personalize

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hyperengineering/stride/internal/types"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Compile-time interface check
var _ Rewriter = (*OpenAI)(nil)

const systemPrompt = `You rewrite task titles and descriptions for a goal-tracking app so they sound encouraging and specific to the user's goal.
Rules:
- Reply with ONLY a JSON object of the same shape as the input: {"streaks":[{"title","description"}],"schedule":[{"title","description"}]}.
- Keep every array the same length and the same order.
- Rewrite text only; never add dates, numbers of days, or XP values.
- Keep titles under 60 characters.`

// ChatService defines the interface for making chat completion calls.
// This abstraction enables testing without calling the real OpenAI API.
type ChatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// OpenAI implements plan text rewriting using OpenAI's chat API.
type OpenAI struct {
	chat  ChatService
	model openai.ChatModel
}

// NewOpenAI creates a new OpenAI rewriter.
func NewOpenAI(apiKey, model string) *OpenAI {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{
		chat:  client.Chat.Completions,
		model: openai.ChatModel(model),
	}
}

// Rewrite sends the plan's text fields to the model and patches the reply
// back in by index. Any error, refusal or unparseable reply leaves the
// plan untouched; a missed rewrite is invisible, a broken plan is not.
func (o *OpenAI) Rewrite(ctx context.Context, goal types.GoalInput, plan types.PlanResult) types.PlanResult {
	payload, err := json.Marshal(struct {
		Goal string   `json:"goal"`
		Plan planText `json:"plan"`
	}{Goal: goal.Title, Plan: extractText(plan)})
	if err != nil {
		return plan
	}

	resp, err := o.chat.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(string(payload)),
		}),
		Model: openai.F(o.model),
	})
	if err != nil {
		slog.Warn("personalization skipped", "component", "personalize", "error", err)
		return plan
	}
	if len(resp.Choices) == 0 {
		return plan
	}

	pt, err := parseReply(resp.Choices[0].Message.Content)
	if err != nil {
		slog.Warn("personalization reply unparseable", "component", "personalize", "error", err)
		return plan
	}
	return applyText(plan, pt)
}

// ModelName returns the chat model name.
func (o *OpenAI) ModelName() string {
	return string(o.model)
}

// parseReply extracts the planText object from a model reply, tolerating
// markdown code fences around the JSON.
func parseReply(content string) (planText, error) {
	var pt planText
	trimmed := strings.TrimSpace(content)
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			trimmed = trimmed[start : end+1]
		}
	}
	if err := json.Unmarshal([]byte(trimmed), &pt); err != nil {
		return planText{}, fmt.Errorf("decode rewrite reply: %w", err)
	}
	return pt, nil
}
