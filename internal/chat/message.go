package chat

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finassist/internal/i18n"
)

var (
	ErrInvalidRole  = errors.New("invalid chat role")
	ErrEmptyMessage = errors.New("chat message is empty")
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModel
}

// GreetingID marks the synthesized greeting, which is never stored or sent upstream.
const GreetingID = "init"

type Message struct {
	ID        string
	UserID    uuid.UUID
	Role      Role
	Text      string
	CreatedAt time.Time
}

func (m Message) IsGreeting() bool {
	return m.ID == GreetingID
}

// Greeting builds the opening model message in lang.
func Greeting(lang i18n.Language) Message {
	return Message{
		ID:   GreetingID,
		Role: RoleModel,
		Text: i18n.T(lang, i18n.KeyGreeting),
	}
}
