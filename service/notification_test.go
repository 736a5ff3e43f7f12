package service

import (
	"context"
	"testing"

	"github.com/morsafarhq/morsafar/errs"
	"github.com/morsafarhq/morsafar/types"
)

func notificationsFor(t *testing.T, svc *Service, actor types.Actor) []types.Notification {
	t.Helper()

	var in types.ListNotifications
	in.SetActor(actor)
	nn, err := svc.Notifications(context.Background(), in)
	if err != nil {
		t.Fatalf("Notifications() error = %v", err)
	}
	return nn
}

func TestFriendRequestNotifications(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	emma := testActor("Emma")
	farid := testActor("Farid")

	faridCode, err := svc.GenerateFriendCode(ctx, farid)
	if err != nil {
		t.Fatalf("GenerateFriendCode() error = %v", err)
	}

	sendIn := types.SendFriendRequest{Code: faridCode.Code}
	sendIn.SetActor(emma)
	friendship, err := svc.SendFriendRequest(ctx, sendIn)
	if err != nil {
		t.Fatalf("SendFriendRequest() error = %v", err)
	}

	var requestNotif types.Notification
	waitFor(t, func() bool {
		for _, n := range notificationsFor(t, svc, farid) {
			if n.Kind == types.NotificationKindFriendRequest {
				requestNotif = n
				return true
			}
		}
		return false
	})

	if requestNotif.Metadata["friendName"] != emma.DisplayName {
		t.Errorf("Metadata[friendName] = %q, want %q", requestNotif.Metadata["friendName"], emma.DisplayName)
	}
	if requestNotif.Metadata["friendshipID"] != friendship.ID {
		t.Errorf("Metadata[friendshipID] = %q, want %q", requestNotif.Metadata["friendshipID"], friendship.ID)
	}
	if requestNotif.Read() {
		t.Error("fresh notification already marked read")
	}

	acceptIn := types.ReviewFriendRequest{FriendshipID: friendship.ID}
	acceptIn.SetActor(farid)
	if _, err := svc.AcceptFriendRequest(ctx, acceptIn); err != nil {
		t.Fatalf("AcceptFriendRequest() error = %v", err)
	}

	waitFor(t, func() bool {
		for _, n := range notificationsFor(t, svc, emma) {
			if n.Kind == types.NotificationKindRequestAccepted {
				return true
			}
		}
		return false
	})

	// The accepted notification goes to the requester only.
	for _, n := range notificationsFor(t, svc, farid) {
		if n.Kind == types.NotificationKindRequestAccepted {
			t.Error("recipient received a request_accepted notification")
		}
	}
}

func TestReadNotification(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ghita := testActor("Ghita")
	hamza := testActor("Hamza")

	if err := svc.NotifyItemShared(ghita, []string{hamza.UserID}, "Sahara desert trek"); err != nil {
		t.Fatalf("NotifyItemShared() error = %v", err)
	}

	var notif types.Notification
	waitFor(t, func() bool {
		for _, n := range notificationsFor(t, svc, hamza) {
			if n.Kind == types.NotificationKindFriendAddedItem {
				notif = n
				return true
			}
		}
		return false
	})

	if notif.Metadata["itemTitle"] != "Sahara desert trek" {
		t.Errorf("Metadata[itemTitle] = %q, want %q", notif.Metadata["itemTitle"], "Sahara desert trek")
	}

	// Only the owner can read it.
	readIn := types.ReadNotification{NotificationID: notif.ID}
	readIn.SetActor(ghita)
	if err := svc.ReadNotification(ctx, readIn); !errs.IsPermissionDenied(err) {
		t.Errorf("ReadNotification() by non-owner error = %v, want permission denied", err)
	}

	readIn.SetActor(hamza)
	if err := svc.ReadNotification(ctx, readIn); err != nil {
		t.Fatalf("ReadNotification() error = %v", err)
	}

	nn := notificationsFor(t, svc, hamza)
	var found bool
	for _, n := range nn {
		if n.ID == notif.ID {
			found = true
			if !n.Read() {
				t.Error("notification still unread after ReadNotification()")
			}
			readAt := n.ReadAt

			// Reading again is a no-op.
			if err := svc.ReadNotification(ctx, readIn); err != nil {
				t.Fatalf("second ReadNotification() error = %v", err)
			}
			for _, m := range notificationsFor(t, svc, hamza) {
				if m.ID == notif.ID && m.ReadAt != nil && readAt != nil && !m.ReadAt.Equal(*readAt) {
					t.Error("ReadAt changed on repeated ReadNotification()")
				}
			}
		}
	}
	if !found {
		t.Fatal("notification disappeared from the list")
	}
}
