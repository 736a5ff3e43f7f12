package types

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/morsafarhq/morsafar/id"
	"github.com/morsafarhq/morsafar/validator"
)

const messageBodyMaxLength = 2000

type Message struct {
	ID             string    `json:"id" db:"id"`
	ConversationID string    `json:"conversationID" db:"conversation_id"`
	SenderID       string    `json:"senderID" db:"sender_id"`
	SenderName     string    `json:"senderName" db:"sender_name"`
	SenderAvatar   *string   `json:"senderAvatar" db:"sender_avatar"`
	Body           string    `json:"body" db:"body"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`

	// ReadBy holds the IDs of every participant who has acknowledged
	// this message. The sender is included at creation.
	ReadBy []string `json:"readBy" db:"read_by"`
}

type SendMessage struct {
	ConversationID string
	Body           string

	actor Actor
}

func (in *SendMessage) SetActor(actor Actor) {
	in.actor = actor
}

func (in SendMessage) Actor() Actor {
	return in.actor
}

func (in *SendMessage) Validate() error {
	v := validator.New()

	in.Body = strings.TrimSpace(in.Body)

	if in.ConversationID == "" {
		v.AddError("ConversationID", "Conversation ID is required")
	} else if !id.Valid(in.ConversationID) {
		v.AddError("ConversationID", "Conversation ID is invalid")
	}

	if in.Body == "" {
		v.AddError("Body", "Body is required")
	}
	if utf8.RuneCountInString(in.Body) > messageBodyMaxLength {
		v.AddError("Body", "Body must be at most 2000 characters")
	}

	return v.AsError()
}

type ListMessages struct {
	ConversationID string

	actor Actor
}

func (in *ListMessages) SetActor(actor Actor) {
	in.actor = actor
}

func (in ListMessages) Actor() Actor {
	return in.actor
}

func (in *ListMessages) Validate() error {
	v := validator.New()

	if in.ConversationID == "" {
		v.AddError("ConversationID", "Conversation ID is required")
	} else if !id.Valid(in.ConversationID) {
		v.AddError("ConversationID", "Conversation ID is invalid")
	}

	return v.AsError()
}

type MarkConversationRead struct {
	ConversationID string

	actor Actor
}

func (in *MarkConversationRead) SetActor(actor Actor) {
	in.actor = actor
}

func (in MarkConversationRead) Actor() Actor {
	return in.actor
}

func (in *MarkConversationRead) Validate() error {
	v := validator.New()

	if in.ConversationID == "" {
		v.AddError("ConversationID", "Conversation ID is required")
	} else if !id.Valid(in.ConversationID) {
		v.AddError("ConversationID", "Conversation ID is invalid")
	}

	return v.AsError()
}
