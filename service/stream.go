package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/morsafarhq/morsafar/errs"
	"github.com/morsafarhq/morsafar/types"
)

// conversationEvent is the fan-out signal published whenever a
// conversation or its message log changes. Subscribers are
// level-triggered: they refetch the full current state on every signal,
// so payload loss or coalescing never causes divergence.
type conversationEvent struct {
	ConversationID string    `msgpack:"conversationID"`
	At             time.Time `msgpack:"at"`
}

func conversationTopic(conversationID string) string {
	return "conversation_" + conversationID
}

func conversationMessagesTopic(conversationID string) string {
	return "conversation_messages_" + conversationID
}

func (s *Service) publishConversationChanged(conversationID string) {
	b, err := msgpack.Marshal(conversationEvent{
		ConversationID: conversationID,
		At:             time.Now(),
	})
	if err != nil {
		s.reportErr(fmt.Errorf("msgpack encode conversation event: %w", err))
		return
	}

	for _, topic := range []string{
		conversationTopic(conversationID),
		conversationMessagesTopic(conversationID),
	} {
		if err := s.PubSub.Pub(topic, b); err != nil {
			s.reportErr(fmt.Errorf("publish conversation event: %w", err))
		}
	}
}

// MessageStream delivers the full ordered message list: once right
// away, then again after every append or read-state change. The caller
// unsubscribes by cancelling ctx.
func (s *Service) MessageStream(ctx context.Context, in types.ListMessages) (<-chan []types.Message, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	actor := in.Actor()
	if !actor.Valid() {
		return nil, errs.Unauthenticated
	}

	if _, err := s.conversationForParticipant(ctx, in.ConversationID, actor.UserID); err != nil {
		return nil, err
	}

	fetch := func(ctx context.Context) ([]types.Message, error) {
		return s.Cockroach.Messages(ctx, in.ConversationID)
	}

	return stream(s, ctx, conversationMessagesTopic(in.ConversationID), fetch)
}

// ConversationStream delivers the conversation record (summary, roster,
// unread counters) on the same level-triggered terms as MessageStream.
func (s *Service) ConversationStream(ctx context.Context, in types.RetrieveConversation) (<-chan types.Conversation, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	actor := in.Actor()
	if !actor.Valid() {
		return nil, errs.Unauthenticated
	}

	if _, err := s.conversationForParticipant(ctx, in.ConversationID, actor.UserID); err != nil {
		return nil, err
	}

	fetch := func(ctx context.Context) (types.Conversation, error) {
		return s.Cockroach.Conversation(ctx, in.ConversationID)
	}

	return stream(s, ctx, conversationTopic(in.ConversationID), fetch)
}

func stream[T any](s *Service, ctx context.Context, topic string, fetch func(ctx context.Context) (T, error)) (<-chan T, error) {
	// Coalescing signal: holding at most one pending tick is enough
	// because every tick refetches the latest full state anyway.
	signals := make(chan struct{}, 1)
	signal := func() {
		select {
		case signals <- struct{}{}:
		default:
		}
	}

	unsub, err := s.PubSub.Sub(topic, func(data []byte) {
		var ev conversationEvent
		if err := msgpack.Unmarshal(data, &ev); err != nil {
			s.reportErr(fmt.Errorf("msgpack decode conversation event: %w", err))
			return
		}

		signal()
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe to %q: %w", topic, err)
	}

	// Initial snapshot so a new subscriber starts current.
	signal()

	out := make(chan T)
	// Tracked on the service WaitGroup so Close waits for in-flight
	// refetches before it closes the error channel.
	s.wg.Go(func() {
		defer close(out)
		defer func() {
			if err := unsub(); err != nil {
				s.reportErr(fmt.Errorf("unsubscribe from %q: %w", topic, err))
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
			}

			current, err := fetch(ctx)
			if err != nil {
				if ctx.Err() == nil {
					s.reportErr(fmt.Errorf("refetch %q state: %w", topic, err))
				}
				continue
			}

			select {
			case <-ctx.Done():
				return
			case out <- current:
			}
		}
	})

	return out, nil
}
