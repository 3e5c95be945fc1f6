// Package generator turns natural-language prompts into proposed custom
// actions by asking an external chat model for a snippet under a fixed
// policy preamble.
package generator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mudler/xlog"
	"github.com/sashabaranov/go-openai"

	"github.com/handwave/handwave/core/policy"
	"github.com/handwave/handwave/core/types"
	"github.com/handwave/handwave/pkg/llm"
)

var (
	fenceOpenRe  = regexp.MustCompile("^```(?:go|golang)?[ \t]*\n?")
	fenceCloseRe = regexp.MustCompile("\n?```[ \t]*$")
)

// Generator produces proposed Actions. A proposal is screened and carries a
// fresh id, but persisting it is a separate, explicit step owned by the
// caller.
type Generator struct {
	client llm.ChatCompleter
	model  string
}

func New(client llm.ChatCompleter, model string) *Generator {
	return &Generator{client: client, model: model}
}

// Generate asks the model for a snippet fulfilling the prompt, strips any
// markdown fencing the model added despite instructions, and screens the
// result. A transport or API failure comes back as a GenerationError; a
// rejected candidate as a ValidationError carrying the raw code for
// diagnosis. The raw candidate is never executed or persisted.
func (g *Generator) Generate(ctx context.Context, prompt string) (types.Action, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Generate Go code for this task: %s", prompt)},
		},
	})
	if err != nil {
		return types.Action{}, &types.GenerationError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return types.Action{}, &types.GenerationError{Err: fmt.Errorf("no completion choices")}
	}

	code := StripFences(resp.Choices[0].Message.Content)

	if verdict := policy.Validate(code); !verdict.Safe {
		xlog.Warn("Generated code rejected by safety check", "prompt", prompt, "reason", verdict.Reason)
		return types.Action{}, &types.ValidationError{Reason: verdict.Reason, Code: code}
	}

	return types.Action{
		ID:     types.NewActionID(),
		Prompt: prompt,
		Code:   code,
	}, nil
}

// StripFences removes leading and trailing markdown code fences. The system
// prompt forbids them, but models add them anyway.
func StripFences(code string) string {
	code = strings.TrimSpace(code)
	code = fenceOpenRe.ReplaceAllString(code, "")
	code = fenceCloseRe.ReplaceAllString(code, "")
	return strings.TrimSpace(code)
}
