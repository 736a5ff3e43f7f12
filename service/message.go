package service

import (
	"context"
	"fmt"

	"github.com/morsafarhq/morsafar/errs"
	"github.com/morsafarhq/morsafar/types"
)

func (s *Service) SendMessage(ctx context.Context, in types.SendMessage) (types.Message, error) {
	var out types.Message

	if err := in.Validate(); err != nil {
		return out, err
	}

	actor := in.Actor()
	if !actor.Valid() {
		return out, errs.Unauthenticated
	}

	if _, err := s.conversationForParticipant(ctx, in.ConversationID, actor.UserID); err != nil {
		return out, err
	}

	out, err := s.Cockroach.CreateMessage(ctx, in)
	if err != nil {
		return out, err
	}

	s.publishConversationChanged(in.ConversationID)

	return out, nil
}

func (s *Service) Messages(ctx context.Context, in types.ListMessages) ([]types.Message, error) {
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

	return s.Cockroach.Messages(ctx, in.ConversationID)
}

// MarkConversationRead acknowledges every message in the conversation
// for the actor and zeroes their unread count. Store failures past the
// authorization check are swallowed: the unread count is a convenience
// signal and is allowed to lag until the next successful mark-read.
func (s *Service) MarkConversationRead(ctx context.Context, in types.MarkConversationRead) error {
	if err := in.Validate(); err != nil {
		return err
	}

	actor := in.Actor()
	if !actor.Valid() {
		return errs.Unauthenticated
	}

	if _, err := s.conversationForParticipant(ctx, in.ConversationID, actor.UserID); err != nil {
		return err
	}

	if err := s.Cockroach.MarkConversationRead(ctx, in.ConversationID, actor.UserID); err != nil {
		s.reportErr(fmt.Errorf("mark conversation %s read: %w", in.ConversationID, err))
		return nil
	}

	s.publishConversationChanged(in.ConversationID)

	return nil
}
