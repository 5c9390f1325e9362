package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/MrJamesThe3rd/finassist/internal/chat"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/llm"
)

type fakeGenerator struct {
	resp     *genai.GenerateContentResponse
	err      error
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(_ context.Context, _ string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.contents = contents
	f.config = config

	return f.resp, f.err
}

func respond(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
	}
}

func TestClient_Generate_Text(t *testing.T) {
	fake := &fakeGenerator{resp: respond(&genai.Part{Text: "Compound interest is..."})}
	c := &Client{models: fake, model: DefaultModel}

	got, err := c.Generate(context.Background(), llm.Request{
		Prompt:   "Explain compound interest",
		Language: i18n.EN,
		History: []chat.Turn{
			{Role: chat.RoleUser, Text: "hi"},
			{Role: chat.RoleModel, Text: "hello"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Compound interest is...", got.Text)
	assert.Nil(t, got.Call)

	require.Len(t, fake.contents, 3)
	assert.Equal(t, "user", fake.contents[0].Role)
	assert.Equal(t, "model", fake.contents[1].Role)
	assert.Equal(t, "Explain compound interest", fake.contents[2].Parts[0].Text)
	require.Len(t, fake.config.Tools, 1)
	assert.Len(t, fake.config.Tools[0].FunctionDeclarations, 2)
}

func TestClient_Generate_FunctionCall(t *testing.T) {
	fake := &fakeGenerator{resp: respond(&genai.Part{FunctionCall: &genai.FunctionCall{
		Name: llm.ToolAddTransaction,
		Args: map[string]any{"description": "Lunch", "amount": -75.0, "category": "Food"},
	}})}
	c := &Client{models: fake, model: DefaultModel}

	got, err := c.Generate(context.Background(), llm.Request{Prompt: "I spent 75 on lunch", Language: i18n.EN})
	require.NoError(t, err)
	require.NotNil(t, got.Call)
	assert.Equal(t, llm.ToolAddTransaction, got.Call.Name)

	var args struct {
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
	}
	require.NoError(t, json.Unmarshal(got.Call.Args, &args))
	assert.Equal(t, "Lunch", args.Description)
	assert.True(t, args.Amount.Equal(decimal.NewFromInt(-75)))
}

func TestClient_Generate_Errors(t *testing.T) {
	c := &Client{models: &fakeGenerator{err: errors.New("quota")}, model: DefaultModel}
	_, err := c.Generate(context.Background(), llm.Request{Prompt: "x", Language: i18n.EN})
	assert.Error(t, err)

	c = &Client{models: &fakeGenerator{resp: respond()}, model: DefaultModel}
	_, err = c.Generate(context.Background(), llm.Request{Prompt: "x", Language: i18n.EN})
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}

func TestClient_MarketNews(t *testing.T) {
	invs := []llm.Investment{{Name: "PETR4", Type: "Stocks", Value: decimal.NewFromInt(1000)}}

	fake := &fakeGenerator{resp: respond(&genai.Part{Text: "```json\n[{\"headline\":\"Oil up\",\"summary\":\"s\",\"source\":\"Reuters\"}]\n```"})}
	c := &Client{models: fake, model: DefaultModel}

	got, err := c.MarketNews(context.Background(), llm.NewsRequest{Investments: invs, Language: i18n.PT})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Oil up", got[0].Headline)
	assert.NotNil(t, fake.config.Tools[0].GoogleSearch)

	fake.resp = respond(&genai.Part{Text: "sorry, no news today"})
	got, err = c.MarketNews(context.Background(), llm.NewsRequest{Investments: invs, Language: i18n.PT})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_MarketNews_NoInvestmentsSkipsCall(t *testing.T) {
	fake := &fakeGenerator{err: errors.New("must not be called")}
	c := &Client{models: fake, model: DefaultModel}

	got, err := c.MarketNews(context.Background(), llm.NewsRequest{Language: i18n.EN})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Nil(t, fake.contents)
}
