// Package gemini implements llm.Client on the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/MrJamesThe3rd/finassist/internal/chat"
	"github.com/MrJamesThe3rd/finassist/internal/investment"
	"github.com/MrJamesThe3rd/finassist/internal/llm"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

const DefaultModel = "gemini-2.5-flash"

type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Client struct {
	models generator
	model  string
}

type Config struct {
	APIKey string
	Model  string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Client{models: client.Models, model: model}, nil
}

func (c *Client) Generate(ctx context.Context, req llm.Request) (llm.Reply, error) {
	system, err := llm.SystemPrompt(req)
	if err != nil {
		return llm.Reply{}, err
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Tools:             []*genai.Tool{{FunctionDeclarations: functionDeclarations()}},
	}

	resp, err := c.models.GenerateContent(ctx, c.model, contents(req), config)
	if err != nil {
		return llm.Reply{}, fmt.Errorf("generating content: %w", err)
	}

	if calls := resp.FunctionCalls(); len(calls) > 0 {
		args, err := json.Marshal(calls[0].Args)
		if err != nil {
			return llm.Reply{}, fmt.Errorf("encoding function call args: %w", err)
		}

		return llm.Reply{Call: &llm.FunctionCall{Name: calls[0].Name, Args: args}}, nil
	}

	text := resp.Text()
	if text == "" {
		return llm.Reply{}, llm.ErrEmptyResponse
	}

	return llm.Reply{Text: text}, nil
}

func (c *Client) MarketNews(ctx context.Context, req llm.NewsRequest) ([]llm.NewsItem, error) {
	if len(req.Investments) == 0 {
		return []llm.NewsItem{}, nil
	}

	prompt, err := llm.NewsPrompt(req)
	if err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	resp, err := c.models.GenerateContent(ctx, c.model, []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, config)
	if err != nil {
		return nil, fmt.Errorf("generating market news: %w", err)
	}

	return llm.ParseNews([]byte(llm.CleanJSON(resp.Text()))), nil
}

func contents(req llm.Request) []*genai.Content {
	out := make([]*genai.Content, 0, len(req.History)+1)

	for _, turn := range req.History {
		role := genai.RoleUser
		if turn.Role == chat.RoleModel {
			role = genai.RoleModel
		}

		out = append(out, genai.NewContentFromText(turn.Text, role))
	}

	return append(out, genai.NewContentFromText(req.Prompt, genai.RoleUser))
}

func functionDeclarations() []*genai.FunctionDeclaration {
	categories := make([]string, 0, len(transaction.Categories))
	for _, c := range transaction.Categories {
		categories = append(categories, string(c))
	}

	types := make([]string, 0, len(investment.Types))
	for _, t := range investment.Types {
		types = append(types, string(t))
	}

	return []*genai.FunctionDeclaration{
		{
			Name:        llm.ToolAddTransaction,
			Description: "Adds an income or expense transaction. Expenses use a negative amount.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"description": {Type: genai.TypeString, Description: "What the transaction was for."},
					"amount":      {Type: genai.TypeNumber, Description: "Signed amount in BRL."},
					"category":    {Type: genai.TypeString, Enum: categories},
				},
				Required: []string{"description", "amount", "category"},
			},
		},
		{
			Name:        llm.ToolAddInvestment,
			Description: "Adds an investment holding at its current market value.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":     {Type: genai.TypeString, Description: "Ticker or asset name."},
					"type":     {Type: genai.TypeString, Enum: types},
					"value":    {Type: genai.TypeNumber, Description: "Current total value in BRL."},
					"quantity": {Type: genai.TypeNumber, Description: "Number of units held."},
				},
				Required: []string{"name", "type", "value", "quantity"},
			},
		},
	}
}
