package types

import (
	"time"
	"unicode/utf8"

	"github.com/morsafarhq/morsafar/id"
	"github.com/morsafarhq/morsafar/validator"
)

type Conversation struct {
	ID        string    `json:"id" db:"id"`
	GroupID   string    `json:"groupID" db:"group_id"`
	BookingID string    `json:"bookingID" db:"booking_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	LastMessage *MessageSummary `json:"lastMessage" db:"last_message,omitempty"`

	Participants []Participant `json:"participants" db:"participants,omitempty"`
}

// MessageSummary is the denormalized last-message preview kept on the
// conversation record.
type MessageSummary struct {
	Body       string    `json:"body"`
	SenderID   string    `json:"senderID"`
	SenderName string    `json:"senderName"`
	SentAt     time.Time `json:"sentAt"`
}

type Participant struct {
	ConversationID string     `db:"conversation_id" json:"-"`
	UserID         string     `db:"user_id" json:"userID"`
	DisplayName    string     `db:"display_name" json:"displayName"`
	Avatar         *string    `db:"avatar" json:"avatar"`
	UnreadCount    int32      `db:"unread_count" json:"unreadCount"`
	LastReadAt     *time.Time `db:"last_read_at" json:"lastReadAt"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}

// RosterEntry is a participant as supplied by the booking system at
// conversation creation. The roster is fixed then and not reconciled
// with later booking changes.
type RosterEntry struct {
	UserID      string  `json:"userID"`
	DisplayName string  `json:"displayName"`
	Avatar      *string `json:"avatar"`
}

type GetOrCreateConversation struct {
	GroupID   string
	BookingID string
	Roster    []RosterEntry

	actor Actor
}

func (in *GetOrCreateConversation) SetActor(actor Actor) {
	in.actor = actor
}

func (in GetOrCreateConversation) Actor() Actor {
	return in.actor
}

func (in *GetOrCreateConversation) Validate() error {
	v := validator.New()

	if in.GroupID == "" {
		v.AddError("GroupID", "Group ID is required")
	}
	if utf8.RuneCountInString(in.GroupID) > 128 {
		v.AddError("GroupID", "Group ID must be at most 128 characters")
	}
	if in.BookingID == "" {
		v.AddError("BookingID", "Booking ID is required")
	}
	if len(in.Roster) == 0 {
		v.AddError("Roster", "At least one participant is required")
	}

	seen := map[string]struct{}{}
	for _, entry := range in.Roster {
		if entry.UserID == "" {
			v.AddError("Roster", "Participant user ID is required")
			continue
		}
		if _, dup := seen[entry.UserID]; dup {
			v.AddError("Roster", "Duplicate participant "+entry.UserID)
		}
		seen[entry.UserID] = struct{}{}
	}

	return v.AsError()
}

type RetrieveConversation struct {
	ConversationID string

	actor Actor
}

func (in *RetrieveConversation) SetActor(actor Actor) {
	in.actor = actor
}

func (in RetrieveConversation) Actor() Actor {
	return in.actor
}

func (in *RetrieveConversation) Validate() error {
	v := validator.New()

	if in.ConversationID == "" {
		v.AddError("ConversationID", "Conversation ID is required")
	} else if !id.Valid(in.ConversationID) {
		v.AddError("ConversationID", "Conversation ID is invalid")
	}

	return v.AsError()
}
