package cockroach

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgxutil"
	"github.com/nicolasparada/go-db"

	"github.com/morsafarhq/morsafar/errs"
	"github.com/morsafarhq/morsafar/id"
	"github.com/morsafarhq/morsafar/types"
)

const conversationQuery = `
	SELECT conversations.*,
		(
			SELECT COALESCE(json_agg(json_build_object(
				'userID', participants.user_id,
				'displayName', participants.display_name,
				'avatar', participants.avatar,
				'unreadCount', participants.unread_count,
				'lastReadAt', participants.last_read_at,
				'createdAt', participants.created_at,
				'updatedAt', participants.updated_at
			)), '[]')
			FROM participants
			WHERE participants.conversation_id = conversations.id
		) AS participants
	FROM conversations
`

// ConversationByGroup resolves a travel group to its conversation.
// Creation is find-then-create without a uniqueness constraint, so in
// the worst case a group has more than one row; the lowest id is the
// deterministic winner every reader agrees on.
func (c *Cockroach) ConversationByGroup(ctx context.Context, groupID string) (types.Conversation, error) {
	var out types.Conversation

	const q = conversationQuery + `
		WHERE conversations.group_id = @group_id
		ORDER BY conversations.id
		LIMIT 1
	`

	rows, err := c.db.Query(ctx, q, pgx.StrictNamedArgs{
		"group_id": groupID,
	})
	if err != nil {
		return out, fmt.Errorf("sql select conversation by group: %w", err)
	}

	out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[types.Conversation])
	if db.IsNotFoundError(err) {
		return out, errs.NewNotFoundError("conversation not found")
	}

	if err != nil {
		return out, fmt.Errorf("sql collect conversation by group: %w", err)
	}

	return out, nil
}

func (c *Cockroach) Conversation(ctx context.Context, conversationID string) (types.Conversation, error) {
	var out types.Conversation

	const q = conversationQuery + `
		WHERE conversations.id = @conversation_id
	`

	rows, err := c.db.Query(ctx, q, pgx.StrictNamedArgs{
		"conversation_id": conversationID,
	})
	if err != nil {
		return out, fmt.Errorf("sql select conversation: %w", err)
	}

	out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[types.Conversation])
	if db.IsNotFoundError(err) {
		return out, errs.NewNotFoundError("conversation not found")
	}

	if err != nil {
		return out, fmt.Errorf("sql collect conversation: %w", err)
	}

	return out, nil
}

func (c *Cockroach) CreateConversation(ctx context.Context, in types.GetOrCreateConversation) (types.Conversation, error) {
	var out types.Conversation
	return out, c.db.RunTx(ctx, func(ctx context.Context) error {
		conversationID := id.Generate()

		const q = `
			INSERT INTO conversations (id, group_id, booking_id)
			VALUES (@conversation_id, @group_id, @booking_id)
		`

		_, err := c.db.Exec(ctx, q, pgx.StrictNamedArgs{
			"conversation_id": conversationID,
			"group_id":        in.GroupID,
			"booking_id":      in.BookingID,
		})
		if err != nil {
			return fmt.Errorf("sql insert conversation: %w", err)
		}

		const pq = `
			INSERT INTO participants (conversation_id, user_id, display_name, avatar, unread_count, last_read_at)
			VALUES (@conversation_id, @user_id, @display_name, @avatar, 0, now())
		`

		for _, entry := range in.Roster {
			_, err := c.db.Exec(ctx, pq, pgx.StrictNamedArgs{
				"conversation_id": conversationID,
				"user_id":         entry.UserID,
				"display_name":    entry.DisplayName,
				"avatar":          entry.Avatar,
			})
			if err != nil {
				return fmt.Errorf("sql insert participant: %w", err)
			}
		}

		out, err = c.Conversation(ctx, conversationID)
		return err
	})
}

func (c *Cockroach) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM participants
			WHERE conversation_id = @conversation_id
				AND user_id = @user_id
		)
	`
	args := pgx.StrictNamedArgs{
		"conversation_id": conversationID,
		"user_id":         userID,
	}
	exists, err := pgxutil.SelectRow(ctx, c.db, q, []any{args}, pgx.RowTo[bool])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("sql select participant existence: %w", err)
	}

	return exists, nil
}
