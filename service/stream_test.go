package service

import (
	"context"
	"testing"
	"time"

	"github.com/morsafarhq/morsafar/errs"
	"github.com/morsafarhq/morsafar/types"
)

func TestMessageStream(t *testing.T) {
	svc := newTestService(t)

	amina := testActor("Amina")
	brahim := testActor("Brahim")
	conv := newTestConversation(t, svc, amina, brahim)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := types.ListMessages{ConversationID: conv.ID}
	in.SetActor(brahim)
	mm, err := svc.MessageStream(ctx, in)
	if err != nil {
		t.Fatalf("MessageStream() error = %v", err)
	}

	// The stream opens with the current state.
	select {
	case initial := <-mm:
		if len(initial) != 0 {
			t.Fatalf("initial snapshot = %d messages, want 0", len(initial))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the initial snapshot")
	}

	sendTestMessage(t, svc, amina, conv.ID, "Ciao!")

	select {
	case got := <-mm:
		if len(got) != 1 || got[0].Body != "Ciao!" {
			t.Fatalf("streamed state = %+v, want the single Ciao! message", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the message update")
	}

	cancel()

	select {
	case _, ok := <-mm:
		if ok {
			// One in-flight refetch may still land; the next receive
			// must observe the close.
			if _, ok := <-mm; ok {
				t.Fatal("stream still open after cancel")
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the stream to close")
	}
}

func TestConversationStream(t *testing.T) {
	svc := newTestService(t)

	amina := testActor("Amina")
	brahim := testActor("Brahim")
	conv := newTestConversation(t, svc, amina, brahim)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := types.RetrieveConversation{ConversationID: conv.ID}
	in.SetActor(brahim)
	cc, err := svc.ConversationStream(ctx, in)
	if err != nil {
		t.Fatalf("ConversationStream() error = %v", err)
	}

	select {
	case initial := <-cc:
		if got := participantByID(t, initial, brahim.UserID).UnreadCount; got != 0 {
			t.Fatalf("initial UnreadCount = %d, want 0", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the initial snapshot")
	}

	sendTestMessage(t, svc, amina, conv.ID, "Ciao!")

	select {
	case got := <-cc:
		if got := participantByID(t, got, brahim.UserID).UnreadCount; got != 1 {
			t.Fatalf("streamed UnreadCount = %d, want 1", got)
		}
		if got.LastMessage == nil || got.LastMessage.Body != "Ciao!" {
			t.Fatalf("streamed LastMessage = %+v, want Ciao!", got.LastMessage)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the conversation update")
	}

	markIn := types.MarkConversationRead{ConversationID: conv.ID}
	markIn.SetActor(brahim)
	if err := svc.MarkConversationRead(context.Background(), markIn); err != nil {
		t.Fatalf("MarkConversationRead() error = %v", err)
	}

	select {
	case got := <-cc:
		if got := participantByID(t, got, brahim.UserID).UnreadCount; got != 0 {
			t.Fatalf("streamed UnreadCount after mark = %d, want 0", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the mark-read update")
	}
}

func TestClose_WaitsForStreams(t *testing.T) {
	svc := newTestService(t)

	amina := testActor("Amina")
	brahim := testActor("Brahim")
	conv := newTestConversation(t, svc, amina, brahim)

	ctx, cancel := context.WithCancel(context.Background())

	in := types.ListMessages{ConversationID: conv.ID}
	in.SetActor(brahim)
	mm, err := svc.MessageStream(ctx, in)
	if err != nil {
		t.Fatalf("MessageStream() error = %v", err)
	}

	cancel()

	// Close must not return until the stream goroutine is done, so no
	// late error report can hit the closed error channel.
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = svc.Close()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close() did not return after the stream context was cancelled")
	}

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-mm:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream channel still open after Close()")
		}
	}
}

func TestMessageStream_OutsiderDenied(t *testing.T) {
	svc := newTestService(t)

	amina := testActor("Amina")
	brahim := testActor("Brahim")
	conv := newTestConversation(t, svc, amina, brahim)

	in := types.ListMessages{ConversationID: conv.ID}
	in.SetActor(testActor("Outsider"))
	if _, err := svc.MessageStream(context.Background(), in); !errs.IsPermissionDenied(err) {
		t.Errorf("MessageStream() by outsider error = %v, want permission denied", err)
	}
}
