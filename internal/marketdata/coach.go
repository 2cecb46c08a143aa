package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"options-journal/internal/errors"
	"options-journal/internal/models"
)

// OpenAICoach implements Coach and PriceEstimator using the OpenAI API.
type OpenAICoach struct {
	client *openai.Client
	model  string
}

// NewOpenAICoach creates a new OpenAI-backed coach.
func NewOpenAICoach(apiKey, model string) *OpenAICoach {
	return &OpenAICoach{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

const coachSystemPrompt = `You are a trading discipline coach reviewing a single
options trade from a personal journal. Comment on process, not prediction:
adherence to the plan, risk sizing, and emotional state. Be direct and brief.`

// Narrative produces a coaching narrative for a closed trade.
func (c *OpenAICoach) Narrative(ctx context.Context, trade models.Trade) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: coachSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: describeTrade(trade)},
		},
	})
	if err != nil {
		return "", errors.NewCollaboratorError("coach", "narrative", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.NewCollaboratorError("coach", "narrative", fmt.Errorf("no response"))
	}
	return resp.Choices[0].Message.Content, nil
}

const estimateSystemPrompt = `Estimate the current market price of the described
options contract. Respond with JSON: {"text": "<one-line reasoning>",
"price": <number or null>}. Use null when you cannot estimate.`

// EstimateExit asks for a current price estimate for the trade's contract.
// The reply is parsed leniently: when it is not the expected JSON shape, the
// raw text is returned with no price.
func (c *OpenAICoach) EstimateExit(ctx context.Context, trade models.Trade) (*Estimate, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: estimateSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: describeTrade(trade)},
		},
	})
	if err != nil {
		return nil, errors.NewCollaboratorError("marketdata", "estimate", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.NewCollaboratorError("marketdata", "estimate", fmt.Errorf("no response"))
	}

	raw := resp.Choices[0].Message.Content
	var est Estimate
	if err := json.Unmarshal([]byte(raw), &est); err != nil {
		return &Estimate{Text: raw}, nil
	}
	return &est, nil
}

func describeTrade(t models.Trade) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ticker: %s\nDirection: %s\nKind: %s\n", t.Ticker, t.Direction, t.Kind)
	if t.StrikePrice != nil {
		fmt.Fprintf(&b, "Strike: %.2f\n", *t.StrikePrice)
	}
	if t.Expiration != nil {
		fmt.Fprintf(&b, "Expiration: %s\n", t.Expiration.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "Entry: %.2f x %d on %s\n", t.EntryPrice, t.Quantity, t.EntryDate.Format(time.RFC3339))
	if t.StopLossPrice != nil {
		fmt.Fprintf(&b, "Stop: %.2f\n", *t.StopLossPrice)
	}
	if t.TargetPrice != nil {
		fmt.Fprintf(&b, "Target: %.2f\n", *t.TargetPrice)
	}
	if t.ExitPrice != nil && t.ExitDate != nil {
		fmt.Fprintf(&b, "Exit: %.2f on %s\n", *t.ExitPrice, t.ExitDate.Format(time.RFC3339))
	}
	if t.PnL != nil {
		fmt.Fprintf(&b, "Realized P&L: %.2f\n", *t.PnL)
	}
	fmt.Fprintf(&b, "Entry emotion: %s\n", t.EntryEmotion)
	if t.ExitEmotion != nil {
		fmt.Fprintf(&b, "Exit emotion: %s\n", *t.ExitEmotion)
	}
	fmt.Fprintf(&b, "Discipline score: %d\n", t.DisciplineScore)
	if t.ViolationReason != "" {
		fmt.Fprintf(&b, "Violation reason: %s\n", t.ViolationReason)
	}
	if t.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", t.Notes)
	}
	return b.String()
}
