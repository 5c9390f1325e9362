package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/investment"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

var languageNames = map[i18n.Language]string{
	i18n.EN: "English",
	i18n.PT: "Brazilian Portuguese",
	i18n.ES: "Spanish",
	i18n.JA: "Japanese",
}

// SystemPrompt renders the assistant instructions together with the user's
// financial context.
func SystemPrompt(req Request) (string, error) {
	txs, err := json.Marshal(req.Transactions)
	if err != nil {
		return "", fmt.Errorf("encoding transactions: %w", err)
	}

	invs, err := json.Marshal(req.Investments)
	if err != nil {
		return "", fmt.Errorf("encoding investments: %w", err)
	}

	var sb strings.Builder

	sb.WriteString("You are FinAssist, a friendly personal finance assistant. All amounts are in Brazilian reais (BRL).\n")
	fmt.Fprintf(&sb, "Always answer in %s.\n", languageNames[req.Language])
	sb.WriteString("When the user reports an expense or income, call addTransaction. Expenses have a negative amount, income a positive one.\n")
	sb.WriteString("When the user reports an investment, call addInvestment.\n")
	fmt.Fprintf(&sb, "Transaction categories: %s.\n", joinCategories())
	fmt.Fprintf(&sb, "Investment types: %s.\n", joinTypes())
	sb.WriteString("Otherwise answer questions using the data below.\n\n")
	fmt.Fprintf(&sb, "Recent transactions: %s\n", txs)
	fmt.Fprintf(&sb, "Investments: %s\n", invs)

	return sb.String(), nil
}

// NewsPrompt asks for short market news about the given holdings.
func NewsPrompt(req NewsRequest) (string, error) {
	names := make([]string, 0, len(req.Investments))
	for _, inv := range req.Investments {
		names = append(names, fmt.Sprintf("%s (%s)", inv.Name, inv.Type))
	}

	if len(names) == 0 {
		return "", fmt.Errorf("news prompt: %w", ErrNoInvestments)
	}

	return fmt.Sprintf(
		"Find up to 3 recent market news items relevant to these investments: %s. "+
			"Write them in %s. Return ONLY a raw JSON array of objects with the string fields "+
			"\"headline\", \"summary\" and \"source\". Do not use markdown.",
		strings.Join(names, ", "), languageNames[req.Language],
	), nil
}

func joinCategories() string {
	names := make([]string, 0, len(transaction.Categories))
	for _, c := range transaction.Categories {
		names = append(names, string(c))
	}

	return strings.Join(names, ", ")
}

func joinTypes() string {
	names := make([]string, 0, len(investment.Types))
	for _, t := range investment.Types {
		names = append(names, string(t))
	}

	return strings.Join(names, ", ")
}
