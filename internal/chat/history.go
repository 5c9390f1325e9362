package chat

import "strings"

const turnSeparator = "\n\n"

// Turn is one entry of the history sent to the model.
type Turn struct {
	Role Role
	Text string
}

// Sanitize prepares history for backends that require strict user/model
// alternation. The greeting is dropped, consecutive turns of the same role are
// merged in order, and a trailing user turn is folded into prompt so the
// history always ends on a model turn.
func Sanitize(history []Message, prompt string) ([]Turn, string) {
	turns := make([]Turn, 0, len(history))

	for _, m := range history {
		if m.IsGreeting() || m.Text == "" {
			continue
		}

		if n := len(turns); n > 0 && turns[n-1].Role == m.Role {
			turns[n-1].Text += turnSeparator + m.Text
			continue
		}

		turns = append(turns, Turn{Role: m.Role, Text: m.Text})
	}

	if n := len(turns); n > 0 && turns[n-1].Role == RoleUser {
		prompt = joinNonEmpty(turns[n-1].Text, prompt)
		turns = turns[:n-1]
	}

	return turns, prompt
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]

	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, turnSeparator)
}
