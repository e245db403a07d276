// Package claude implements the judge interface on top of the Anthropic
// Messages API. Every call degrades to the heuristic judge on API or
// parse failure, so callers always get a judgment.
package claude

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/oneiriclabs/mnemo/judge"
	"github.com/oneiriclabs/mnemo/memory"
)

const (
	defaultModel     = "claude-sonnet-4-5"
	defaultMaxTokens = 1024
)

const contradictionSystemPrompt = `You judge whether two personal memories genuinely contradict each other.
Respond with a single JSON object, no prose:
{"is_real_conflict": bool, "conflict_type": "factual"|"preference"|"temporal", "resolution": string, "confidence": number 0..1, "reasoning": string}`

const consolidationSystemPrompt = `You judge whether a group of personal memories should be merged into one.
Respond with a single JSON object, no prose:
{"should_merge": bool, "merged_content": string, "merged_tags": [string], "importance": int 1..5, "confidence": number 0..1, "reasoning": string}`

// Judge asks Claude for contradiction and consolidation verdicts.
type Judge struct {
	client    *anthropic.Client
	fallback  judge.Judge
	model     string
	maxTokens int64
}

var _ judge.Judge = (*Judge)(nil)

// Option configures the judge.
type Option func(*Judge)

// WithModel overrides the model used for judgments.
func WithModel(model string) Option {
	return func(j *Judge) {
		j.model = model
	}
}

// WithMaxTokens overrides the response token budget.
func WithMaxTokens(n int64) Option {
	return func(j *Judge) {
		j.maxTokens = n
	}
}

// New creates a Claude-backed judge with the given client.
func New(client *anthropic.Client, opts ...Option) *Judge {
	j := &Judge{
		client:    client,
		fallback:  judge.NewHeuristic(),
		model:     defaultModel,
		maxTokens: defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// JudgeContradiction asks Claude whether two memories genuinely
// conflict, falling back to the heuristic judge on any failure.
func (j *Judge) JudgeContradiction(ctx context.Context, a, b *memory.Memory) (*judge.ContradictionJudgment, error) {
	prompt := fmt.Sprintf("Memory A (%s, %s):\n%s\n\nMemory B (%s, %s):\n%s",
		a.Type, a.Timestamp.Format("2006-01-02"), a.Content,
		b.Type, b.Timestamp.Format("2006-01-02"), b.Content)

	text, err := j.complete(ctx, contradictionSystemPrompt, prompt)
	if err != nil {
		log.Printf("[JUDGE] contradiction call failed, using heuristic: %v", err)
		return j.fallback.JudgeContradiction(ctx, a, b)
	}

	var verdict judge.ContradictionJudgment
	if err := json.Unmarshal([]byte(extractJSON(text)), &verdict); err != nil {
		log.Printf("[JUDGE] unparseable contradiction verdict, using heuristic: %v", err)
		return j.fallback.JudgeContradiction(ctx, a, b)
	}
	clampConfidence(&verdict.Confidence)
	return &verdict, nil
}

// JudgeConsolidation asks Claude whether a memory group should merge,
// falling back to the heuristic judge on any failure.
func (j *Judge) JudgeConsolidation(ctx context.Context, memories []*memory.Memory, mergeHint string) (*judge.ConsolidationJudgment, error) {
	var sb strings.Builder
	for i, m := range memories {
		fmt.Fprintf(&sb, "Memory %d (%s, importance %d, tags %v):\n%s\n\n",
			i+1, m.Type, m.Importance, m.Tags, m.Content)
	}
	if mergeHint != "" {
		fmt.Fprintf(&sb, "Suggested merge:\n%s\n", mergeHint)
	}

	text, err := j.complete(ctx, consolidationSystemPrompt, sb.String())
	if err != nil {
		log.Printf("[JUDGE] consolidation call failed, using heuristic: %v", err)
		return j.fallback.JudgeConsolidation(ctx, memories, mergeHint)
	}

	var verdict judge.ConsolidationJudgment
	if err := json.Unmarshal([]byte(extractJSON(text)), &verdict); err != nil {
		log.Printf("[JUDGE] unparseable consolidation verdict, using heuristic: %v", err)
		return j.fallback.JudgeConsolidation(ctx, memories, mergeHint)
	}
	clampConfidence(&verdict.Confidence)
	return &verdict, nil
}

func (j *Judge) complete(ctx context.Context, system, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(j.model),
		MaxTokens: j.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
	}

	resp, err := j.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude API error: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("empty response")
	}
	return text, nil
}

// extractJSON strips any prose around the first JSON object in the text.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return text
	}
	return text[start : end+1]
}

func clampConfidence(c *float64) {
	if *c < 0 {
		*c = 0
	}
	if *c > 1 {
		*c = 1
	}
}
