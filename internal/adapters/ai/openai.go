package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
	portssvc "github.com/finsight-hq/finsight_backend/internal/core/ports/services"
)

const extractionSystemPrompt = `You are a bookkeeping assistant. The user sends the raw text of a bank statement, invoice, or receipt.
Extract every transaction you can find and respond with a JSON object of the form:
{"transactions": [{"date": "2006-01-02", "description": "...", "amount": "123.45", "type": "INCOME" or "EXPENSE", "category": "..."}]}
Amounts are positive decimal strings. Leave category empty when unsure. Respond with JSON only.`

const narrationSystemPrompt = `You are a financial analyst. The user sends a profit and loss summary as JSON.
Write a short plain-language narrative (3 to 5 sentences) highlighting total income, total expenses, net income, and the largest expense categories. Do not invent numbers.`

// completer is the slice of the go-openai client this adapter uses.
type completer interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIClient implements document extraction and statement narration over
// the OpenAI chat completion API.
type OpenAIClient struct {
	client completer
	model  string
}

var _ portssvc.DocumentExtractor = (*OpenAIClient)(nil)
var _ portssvc.InsightGenerator = (*OpenAIClient)(nil)

// NewOpenAIClient creates the adapter. Model is the chat model name, e.g. "gpt-4o-mini".
func NewOpenAIClient(apiKey string, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

type extractedTransaction struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
}

type extractionResult struct {
	Transactions []extractedTransaction `json:"transactions"`
}

// ExtractTransactions sends the document text to the model and parses the
// structured transaction list it returns.
func (o *OpenAIClient) ExtractTransactions(ctx context.Context, filename string, content []byte) ([]portssvc.ProposedTransaction, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("File: %s\n\n%s", filename, string(content))},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("extraction returned no choices")
	}

	var result extractionResult
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	proposed := make([]portssvc.ProposedTransaction, 0, len(result.Transactions))
	for _, t := range result.Transactions {
		p, err := toProposed(t)
		if err != nil {
			// Skip entries the model mangled rather than failing the whole document.
			continue
		}
		proposed = append(proposed, p)
	}
	return proposed, nil
}

func toProposed(t extractedTransaction) (portssvc.ProposedTransaction, error) {
	date, err := time.Parse("2006-01-02", t.Date)
	if err != nil {
		return portssvc.ProposedTransaction{}, fmt.Errorf("bad date %q: %w", t.Date, err)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(t.Amount))
	if err != nil {
		return portssvc.ProposedTransaction{}, fmt.Errorf("bad amount %q: %w", t.Amount, err)
	}
	txnType := domain.TransactionType(strings.ToUpper(strings.TrimSpace(t.Type)))
	if txnType != domain.Income && txnType != domain.Expense {
		return portssvc.ProposedTransaction{}, fmt.Errorf("bad type %q", t.Type)
	}
	return portssvc.ProposedTransaction{
		Date:        date,
		Description: strings.TrimSpace(t.Description),
		Amount:      amount,
		Type:        txnType,
		Category:    strings.TrimSpace(t.Category),
	}, nil
}

// GenerateInsight asks the model for a narrative over the P&L report.
func (o *OpenAIClient) GenerateInsight(ctx context.Context, report domain.PLReport) (string, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: narrationSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(payload)},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("narration request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("narration returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
