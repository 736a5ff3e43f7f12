package types

import (
	"time"

	"github.com/morsafarhq/morsafar/id"
	"github.com/morsafarhq/morsafar/validator"
)

type Notification struct {
	ID        string            `json:"id" db:"id"`
	UserID    string            `json:"userID" db:"user_id"`
	Kind      NotificationKind  `json:"kind" db:"kind"`
	Title     string            `json:"title" db:"title"`
	Body      string            `json:"body" db:"body"`
	Metadata  map[string]string `json:"metadata" db:"metadata"`
	ReadAt    *time.Time        `json:"readAt" db:"read_at"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
}

func (n Notification) Read() bool {
	return n.ReadAt != nil
}

type NotificationKind string

func (k NotificationKind) String() string {
	return string(k)
}

const (
	NotificationKindFriendRequest   NotificationKind = "friend_request"
	NotificationKindRequestAccepted NotificationKind = "request_accepted"
	NotificationKindFriendAddedItem NotificationKind = "friend_added_item"
)

// CreateNotification is internal to the dispatcher; it has no actor
// because notifications are side effects of domain events, not requests.
type CreateNotification struct {
	UserID   string
	Kind     NotificationKind
	Title    string
	Body     string
	Metadata map[string]string
}

type ListNotifications struct {
	actor Actor
}

func (in *ListNotifications) SetActor(actor Actor) {
	in.actor = actor
}

func (in ListNotifications) Actor() Actor {
	return in.actor
}

type ReadNotification struct {
	NotificationID string

	actor Actor
}

func (in *ReadNotification) SetActor(actor Actor) {
	in.actor = actor
}

func (in ReadNotification) Actor() Actor {
	return in.actor
}

func (in *ReadNotification) Validate() error {
	v := validator.New()

	if in.NotificationID == "" {
		v.AddError("NotificationID", "Notification ID is required")
	} else if !id.Valid(in.NotificationID) {
		v.AddError("NotificationID", "Notification ID is invalid")
	}

	return v.AsError()
}
