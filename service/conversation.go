package service

import (
	"context"

	"github.com/morsafarhq/morsafar/errs"
	"github.com/morsafarhq/morsafar/types"
)

// GetOrCreateConversation resolves the chat thread for a travel group,
// creating it on first access. The roster is fixed at creation: on a
// repeat call the submitted roster is ignored. Find-then-create is not
// atomic, so two racing first-time callers can both insert; the
// trailing lookup converges everyone on the same lowest-id winner.
func (s *Service) GetOrCreateConversation(ctx context.Context, in types.GetOrCreateConversation) (types.Conversation, error) {
	var out types.Conversation

	if err := in.Validate(); err != nil {
		return out, err
	}

	actor := in.Actor()
	if !actor.Valid() {
		return out, errs.Unauthenticated
	}

	out, err := s.Cockroach.ConversationByGroup(ctx, in.GroupID)
	if err == nil {
		return out, nil
	}

	if !errs.IsNotFound(err) {
		return out, err
	}

	if _, err := s.Cockroach.CreateConversation(ctx, in); err != nil {
		return out, err
	}

	return s.Cockroach.ConversationByGroup(ctx, in.GroupID)
}

func (s *Service) Conversation(ctx context.Context, in types.RetrieveConversation) (types.Conversation, error) {
	var out types.Conversation

	if err := in.Validate(); err != nil {
		return out, err
	}

	actor := in.Actor()
	if !actor.Valid() {
		return out, errs.Unauthenticated
	}

	return s.conversationForParticipant(ctx, in.ConversationID, actor.UserID)
}

// conversationForParticipant loads a conversation and authorizes the
// user against its roster.
func (s *Service) conversationForParticipant(ctx context.Context, conversationID, userID string) (types.Conversation, error) {
	conversation, err := s.Cockroach.Conversation(ctx, conversationID)
	if err != nil {
		return conversation, err
	}

	for _, p := range conversation.Participants {
		if p.UserID == userID {
			return conversation, nil
		}
	}

	return types.Conversation{}, errs.NewPermissionDeniedError("you are not part of this conversation")
}
