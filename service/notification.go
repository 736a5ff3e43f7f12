package service

import (
	"context"
	"fmt"

	"github.com/morsafarhq/morsafar/errs"
	"github.com/morsafarhq/morsafar/types"
)

// notify creates a notification on the background worker. A lost
// notification is recoverable, so a dispatch failure is reported on the
// error channel and never propagated to the triggering operation.
func (s *Service) notify(in types.CreateNotification) {
	s.background(func(ctx context.Context) error {
		if _, err := s.Cockroach.CreateNotification(ctx, in); err != nil {
			return fmt.Errorf("dispatch %s notification: %w", in.Kind, err)
		}
		return nil
	})
}

// NotifyItemShared tells the actor's friends about a newly shared item.
// It is the dispatch hook for the wishlist/sharing surface, which lives
// outside this subsystem.
func (s *Service) NotifyItemShared(actor types.Actor, friendIDs []string, itemTitle string) error {
	if !actor.Valid() {
		return errs.Unauthenticated
	}

	for _, friendID := range friendIDs {
		s.notify(types.CreateNotification{
			UserID: friendID,
			Kind:   types.NotificationKindFriendAddedItem,
			Title:  "New shared item",
			Body:   fmt.Sprintf("%s added %q", actor.DisplayName, itemTitle),
			Metadata: map[string]string{
				"friendName": actor.DisplayName,
				"itemTitle":  itemTitle,
			},
		})
	}

	return nil
}

// Notifications for the actor, newest first. Clients derive the unread
// badge by counting unread entries; there is no push channel, the
// presentation layer polls.
func (s *Service) Notifications(ctx context.Context, in types.ListNotifications) ([]types.Notification, error) {
	actor := in.Actor()
	if !actor.Valid() {
		return nil, errs.Unauthenticated
	}

	return s.Cockroach.Notifications(ctx, actor.UserID)
}

// ReadNotification marks one of the actor's notifications read. Read is
// monotonic: marking an already-read notification is a no-op success.
func (s *Service) ReadNotification(ctx context.Context, in types.ReadNotification) error {
	if err := in.Validate(); err != nil {
		return err
	}

	actor := in.Actor()
	if !actor.Valid() {
		return errs.Unauthenticated
	}

	notification, err := s.Cockroach.Notification(ctx, in.NotificationID)
	if err != nil {
		return err
	}

	if notification.UserID != actor.UserID {
		return errs.NewPermissionDeniedError("notification belongs to another user")
	}

	if notification.Read() {
		return nil
	}

	return s.Cockroach.MarkNotificationRead(ctx, in.NotificationID)
}
