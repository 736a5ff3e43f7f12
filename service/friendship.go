package service

import (
	"context"
	"fmt"

	"github.com/morsafarhq/morsafar/errs"
	"github.com/morsafarhq/morsafar/types"
)

var (
	// ErrSelfFriend denotes a request submitted with the actor's own code.
	ErrSelfFriend = errs.NewInvalidArgumentError("Code", "you cannot send a friend request to yourself")
	// ErrAlreadyFriends denotes a request targeting an accepted friendship.
	ErrAlreadyFriends = errs.NewAlreadyExistsError("Code", "you are already friends")
	// ErrAlreadyPending denotes a request while one is pending in either direction.
	ErrAlreadyPending = errs.NewAlreadyExistsError("Code", "a friend request is already pending")
)

func (s *Service) SendFriendRequest(ctx context.Context, in types.SendFriendRequest) (types.Friendship, error) {
	var out types.Friendship

	if err := in.Validate(); err != nil {
		return out, err
	}

	actor := in.Actor()
	if !actor.Valid() {
		return out, errs.Unauthenticated
	}

	recipientID, err := s.resolveFriendCode(ctx, in.Code)
	if err != nil {
		return out, err
	}

	if recipientID == actor.UserID {
		return out, ErrSelfFriend
	}

	existing, err := s.Cockroach.FriendshipBetween(ctx, actor.UserID, recipientID)
	if err != nil && !errs.IsNotFound(err) {
		return out, err
	}

	if err == nil {
		if existing.Status == types.FriendshipStatusAccepted {
			return out, ErrAlreadyFriends
		}
		return out, ErrAlreadyPending
	}

	out, err = s.Cockroach.CreateFriendship(ctx, actor.UserID, actor.DisplayName, recipientID)
	if err != nil {
		return out, err
	}

	s.notify(types.CreateNotification{
		UserID: recipientID,
		Kind:   types.NotificationKindFriendRequest,
		Title:  "New friend request",
		Body:   fmt.Sprintf("%s wants to travel with you", actor.DisplayName),
		Metadata: map[string]string{
			"friendName":   actor.DisplayName,
			"friendshipID": out.ID,
		},
	})

	return out, nil
}

func (s *Service) AcceptFriendRequest(ctx context.Context, in types.ReviewFriendRequest) (types.Friendship, error) {
	var out types.Friendship

	if err := in.Validate(); err != nil {
		return out, err
	}

	actor := in.Actor()
	if !actor.Valid() {
		return out, errs.Unauthenticated
	}

	friendship, err := s.Cockroach.Friendship(ctx, in.FriendshipID)
	if err != nil {
		return out, err
	}

	if friendship.RecipientID != actor.UserID {
		return out, errs.NewPermissionDeniedError("only the recipient can accept a friend request")
	}

	if friendship.Status != types.FriendshipStatusPending {
		return out, errs.NewFailedPreconditionError("friend request is not pending")
	}

	out, err = s.Cockroach.UpdateFriendshipStatus(ctx, in.FriendshipID, types.FriendshipStatusAccepted, &actor.DisplayName)
	if err != nil {
		return out, err
	}

	s.notify(types.CreateNotification{
		UserID: friendship.RequesterID,
		Kind:   types.NotificationKindRequestAccepted,
		Title:  "Friend request accepted",
		Body:   fmt.Sprintf("%s accepted your friend request", actor.DisplayName),
		Metadata: map[string]string{
			"friendName":   actor.DisplayName,
			"friendshipID": out.ID,
		},
	})

	return out, nil
}

// RejectFriendRequest flips the request to its terminal rejected state.
// Rejection is silent: the requester is not notified.
func (s *Service) RejectFriendRequest(ctx context.Context, in types.ReviewFriendRequest) (types.Friendship, error) {
	var out types.Friendship

	if err := in.Validate(); err != nil {
		return out, err
	}

	actor := in.Actor()
	if !actor.Valid() {
		return out, errs.Unauthenticated
	}

	friendship, err := s.Cockroach.Friendship(ctx, in.FriendshipID)
	if err != nil {
		return out, err
	}

	if friendship.RecipientID != actor.UserID {
		return out, errs.NewPermissionDeniedError("only the recipient can reject a friend request")
	}

	if friendship.Status != types.FriendshipStatusPending {
		return out, errs.NewFailedPreconditionError("friend request is not pending")
	}

	return s.Cockroach.UpdateFriendshipStatus(ctx, in.FriendshipID, types.FriendshipStatusRejected, nil)
}

// RemoveFriendship hard-deletes an accepted friendship. Either party
// can do it; nobody is notified.
func (s *Service) RemoveFriendship(ctx context.Context, in types.RemoveFriendship) error {
	if err := in.Validate(); err != nil {
		return err
	}

	actor := in.Actor()
	if !actor.Valid() {
		return errs.Unauthenticated
	}

	friendship, err := s.Cockroach.Friendship(ctx, in.FriendshipID)
	if err != nil {
		return err
	}

	if friendship.RequesterID != actor.UserID && friendship.RecipientID != actor.UserID {
		return errs.NewPermissionDeniedError("you are not part of this friendship")
	}

	if friendship.Status != types.FriendshipStatusAccepted {
		return errs.NewFailedPreconditionError("friendship is not accepted")
	}

	return s.Cockroach.DeleteFriendship(ctx, in.FriendshipID)
}

func (s *Service) Friends(ctx context.Context, actor types.Actor) ([]types.Friend, error) {
	if !actor.Valid() {
		return nil, errs.Unauthenticated
	}

	return s.Cockroach.Friends(ctx, actor.UserID)
}

func (s *Service) PendingFriendRequests(ctx context.Context, actor types.Actor) ([]types.Friendship, error) {
	if !actor.Valid() {
		return nil, errs.Unauthenticated
	}

	return s.Cockroach.PendingFriendRequests(ctx, actor.UserID)
}
