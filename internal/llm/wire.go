package llm

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/finassist/internal/chat"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
)

// Wire contract of the assistant endpoint. A single POST carries an action
// and its inputs.
const (
	ActionGenerateResponse = "generateResponse"
	ActionFetchMarketNews  = "fetchMarketNews"

	ReplyText         = "text"
	ReplyFunctionCall = "functionCall"
)

var (
	ErrUnknownAction    = errors.New("unknown action")
	ErrUnknownReplyType = errors.New("unknown reply type")
)

type WireTurn struct {
	Role chat.Role `json:"role"`
	Text string    `json:"text"`
}

type ActionRequest struct {
	Action       string        `json:"action"`
	Prompt       string        `json:"prompt,omitempty"`
	History      []WireTurn    `json:"history,omitempty"`
	Transactions []Transaction `json:"transactions,omitempty"`
	Investments  []Investment  `json:"investments"`
	Language     i18n.Language `json:"language"`
}

type ActionReply struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func NewGenerateRequest(req Request) ActionRequest {
	history := make([]WireTurn, 0, len(req.History))
	for _, t := range req.History {
		history = append(history, WireTurn{Role: t.Role, Text: t.Text})
	}

	return ActionRequest{
		Action:       ActionGenerateResponse,
		Prompt:       req.Prompt,
		History:      history,
		Transactions: req.Transactions,
		Investments:  req.Investments,
		Language:     req.Language,
	}
}

func NewNewsRequest(req NewsRequest) ActionRequest {
	return ActionRequest{
		Action:      ActionFetchMarketNews,
		Investments: req.Investments,
		Language:    req.Language,
	}
}

func (r ActionRequest) Request() Request {
	history := make([]chat.Turn, 0, len(r.History))
	for _, t := range r.History {
		history = append(history, chat.Turn{Role: t.Role, Text: t.Text})
	}

	return Request{
		Prompt:       r.Prompt,
		History:      history,
		Transactions: r.Transactions,
		Investments:  r.Investments,
		Language:     r.Language,
	}
}

func (r ActionRequest) NewsRequest() NewsRequest {
	return NewsRequest{Investments: r.Investments, Language: r.Language}
}

func EncodeReply(reply Reply) (ActionReply, error) {
	if reply.Call != nil {
		data, err := json.Marshal(reply.Call)
		if err != nil {
			return ActionReply{}, fmt.Errorf("encoding function call: %w", err)
		}

		return ActionReply{Type: ReplyFunctionCall, Data: data}, nil
	}

	data, err := json.Marshal(reply.Text)
	if err != nil {
		return ActionReply{}, fmt.Errorf("encoding text: %w", err)
	}

	return ActionReply{Type: ReplyText, Data: data}, nil
}

func DecodeReply(r ActionReply) (Reply, error) {
	switch r.Type {
	case ReplyText:
		var text string
		if err := json.Unmarshal(r.Data, &text); err != nil {
			return Reply{}, fmt.Errorf("decoding text reply: %w", err)
		}

		if text == "" {
			return Reply{}, ErrEmptyResponse
		}

		return Reply{Text: text}, nil
	case ReplyFunctionCall:
		var call FunctionCall
		if err := json.Unmarshal(r.Data, &call); err != nil {
			return Reply{}, fmt.Errorf("decoding function call: %w", err)
		}

		return Reply{Call: &call}, nil
	}

	return Reply{}, fmt.Errorf("%w: %q", ErrUnknownReplyType, r.Type)
}
