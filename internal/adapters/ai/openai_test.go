package ai

import (
	"context"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

type fakeCompleter struct {
	content string
	err     error
	lastReq openai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastReq = request
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

func TestExtractTransactionsParsesResponse(t *testing.T) {
	fake := &fakeCompleter{content: `{
		"transactions": [
			{"date": "2024-03-01", "description": "Stripe payout", "amount": "1250.00", "type": "INCOME", "category": "Sales"},
			{"date": "2024-03-02", "description": "AWS", "amount": "89.10", "type": "EXPENSE", "category": ""},
			{"date": "not-a-date", "description": "garbage", "amount": "1", "type": "EXPENSE", "category": ""}
		]
	}`}
	client := &OpenAIClient{client: fake, model: "gpt-4o-mini"}

	proposed, err := client.ExtractTransactions(context.Background(), "march.csv", []byte("raw statement text"))
	require.NoError(t, err)
	require.Len(t, proposed, 2, "unparseable entries are skipped")

	assert.Equal(t, "Stripe payout", proposed[0].Description)
	assert.Equal(t, domain.Income, proposed[0].Type)
	assert.True(t, decimal.RequireFromString("1250.00").Equal(proposed[0].Amount))
	assert.Equal(t, "Sales", proposed[0].Category)
	assert.Equal(t, domain.Expense, proposed[1].Type)

	require.Len(t, fake.lastReq.Messages, 2)
	assert.Contains(t, fake.lastReq.Messages[1].Content, "march.csv")
}

func TestExtractTransactionsBadJSON(t *testing.T) {
	fake := &fakeCompleter{content: "sorry, I cannot do that"}
	client := &OpenAIClient{client: fake, model: "gpt-4o-mini"}

	_, err := client.ExtractTransactions(context.Background(), "a.csv", []byte("x"))
	assert.Error(t, err)
}

func TestGenerateInsight(t *testing.T) {
	fake := &fakeCompleter{content: "  Income exceeded expenses this period.\n"}
	client := &OpenAIClient{client: fake, model: "gpt-4o-mini"}

	narrative, err := client.GenerateInsight(context.Background(), domain.PLReport{})
	require.NoError(t, err)
	assert.Equal(t, "Income exceeded expenses this period.", narrative)
}
