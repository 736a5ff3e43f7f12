package types

import (
	"time"

	"github.com/morsafarhq/morsafar/id"
	"github.com/morsafarhq/morsafar/validator"
)

type Friendship struct {
	ID            string           `json:"id" db:"id"`
	RequesterID   string           `json:"requesterID" db:"requester_id"`
	RequesterName string           `json:"requesterName" db:"requester_name"`
	RecipientID   string           `json:"recipientID" db:"recipient_id"`
	RecipientName *string          `json:"recipientName" db:"recipient_name"`
	Status        FriendshipStatus `json:"status" db:"status"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time        `json:"updatedAt" db:"updated_at"`
}

type FriendshipStatus string

const (
	FriendshipStatusPending  FriendshipStatus = "pending"
	FriendshipStatusAccepted FriendshipStatus = "accepted"
	FriendshipStatusRejected FriendshipStatus = "rejected"
)

func (s FriendshipStatus) String() string {
	return string(s)
}

// Friend is one side of an accepted friendship as seen by the other.
// DisplayName can be empty when the friend joined as the recipient of a
// request that predates name capture on accept.
type Friend struct {
	FriendshipID string    `json:"friendshipID" db:"friendship_id"`
	UserID       string    `json:"userID" db:"user_id"`
	DisplayName  string    `json:"displayName" db:"display_name"`
	Since        time.Time `json:"since" db:"since"`
}

type SendFriendRequest struct {
	Code string

	actor Actor
}

func (in *SendFriendRequest) SetActor(actor Actor) {
	in.actor = actor
}

func (in SendFriendRequest) Actor() Actor {
	return in.actor
}

func (in *SendFriendRequest) Validate() error {
	v := validator.New()

	in.Code = NormalizeFriendCode(in.Code)

	if in.Code == "" {
		v.AddError("Code", "Friend code is required")
	} else if !ValidFriendCode(in.Code) {
		v.AddError("Code", "Friend code must look like MOR-AB12CD")
	}

	return v.AsError()
}

type ReviewFriendRequest struct {
	FriendshipID string

	actor Actor
}

func (in *ReviewFriendRequest) SetActor(actor Actor) {
	in.actor = actor
}

func (in ReviewFriendRequest) Actor() Actor {
	return in.actor
}

func (in *ReviewFriendRequest) Validate() error {
	v := validator.New()

	if in.FriendshipID == "" {
		v.AddError("FriendshipID", "Friendship ID is required")
	} else if !id.Valid(in.FriendshipID) {
		v.AddError("FriendshipID", "Friendship ID is invalid")
	}

	return v.AsError()
}

type RemoveFriendship struct {
	FriendshipID string

	actor Actor
}

func (in *RemoveFriendship) SetActor(actor Actor) {
	in.actor = actor
}

func (in RemoveFriendship) Actor() Actor {
	return in.actor
}

func (in *RemoveFriendship) Validate() error {
	v := validator.New()

	if in.FriendshipID == "" {
		v.AddError("FriendshipID", "Friendship ID is required")
	} else if !id.Valid(in.FriendshipID) {
		v.AddError("FriendshipID", "Friendship ID is invalid")
	}

	return v.AsError()
}
