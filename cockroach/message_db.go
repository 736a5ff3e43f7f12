package cockroach

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgxutil"

	"github.com/morsafarhq/morsafar/errs"
	"github.com/morsafarhq/morsafar/id"
	"github.com/morsafarhq/morsafar/types"
)

// CreateMessage appends a message and maintains the derived state on the
// conversation in one transaction: the last-message summary, a blind
// unread_count + 1 for every other participant, and a reset to 0 for the
// sender. The increments are commutative, so concurrent sends from
// different senders never lose counts.
func (c *Cockroach) CreateMessage(ctx context.Context, in types.SendMessage) (types.Message, error) {
	var out types.Message
	return out, c.db.RunTx(ctx, func(ctx context.Context) error {
		exists, err := c.conversationExists(ctx, in.ConversationID)
		if err != nil {
			return err
		}

		if !exists {
			return errs.NewNotFoundError("conversation not found")
		}

		actor := in.Actor()
		msg, err := c.insertMessage(ctx, in)
		if err != nil {
			return err
		}

		const readQ = `
			INSERT INTO message_reads (message_id, user_id)
			VALUES (@message_id, @user_id)
		`

		_, err = c.db.Exec(ctx, readQ, pgx.StrictNamedArgs{
			"message_id": msg.ID,
			"user_id":    actor.UserID,
		})
		if err != nil {
			return fmt.Errorf("sql insert sender read marker: %w", err)
		}

		const summaryQ = `
			UPDATE conversations
			SET last_message = json_build_object(
					'body', @body::VARCHAR,
					'senderID', @sender_id::VARCHAR,
					'senderName', @sender_name::VARCHAR,
					'sentAt', @sent_at::TIMESTAMPTZ
				),
				updated_at = now()
			WHERE id = @conversation_id
		`

		_, err = c.db.Exec(ctx, summaryQ, pgx.StrictNamedArgs{
			"conversation_id": in.ConversationID,
			"body":            in.Body,
			"sender_id":       actor.UserID,
			"sender_name":     actor.DisplayName,
			"sent_at":         msg.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("sql update conversation summary: %w", err)
		}

		const bumpQ = `
			UPDATE participants
			SET unread_count = unread_count + 1,
				updated_at = now()
			WHERE conversation_id = @conversation_id
				AND user_id != @sender_id
		`

		_, err = c.db.Exec(ctx, bumpQ, pgx.StrictNamedArgs{
			"conversation_id": in.ConversationID,
			"sender_id":       actor.UserID,
		})
		if err != nil {
			return fmt.Errorf("sql bump recipient unread counts: %w", err)
		}

		// Sending implicitly marks the sender's own thread caught-up.
		const resetQ = `
			UPDATE participants
			SET unread_count = 0,
				updated_at = now()
			WHERE conversation_id = @conversation_id
				AND user_id = @sender_id
		`

		_, err = c.db.Exec(ctx, resetQ, pgx.StrictNamedArgs{
			"conversation_id": in.ConversationID,
			"sender_id":       actor.UserID,
		})
		if err != nil {
			return fmt.Errorf("sql reset sender unread count: %w", err)
		}

		out = msg
		return nil
	})
}

func (c *Cockroach) insertMessage(ctx context.Context, in types.SendMessage) (types.Message, error) {
	var out types.Message

	const q = `
		INSERT INTO messages (id, conversation_id, sender_id, sender_name, sender_avatar, body)
		VALUES (@message_id, @conversation_id, @sender_id, @sender_name, @sender_avatar, @body)
		RETURNING id, conversation_id, sender_id, sender_name, sender_avatar, body, created_at
	`

	actor := in.Actor()
	rows, err := c.db.Query(ctx, q, pgx.StrictNamedArgs{
		"message_id":      id.Generate(),
		"conversation_id": in.ConversationID,
		"sender_id":       actor.UserID,
		"sender_name":     actor.DisplayName,
		"sender_avatar":   actor.Avatar,
		"body":            in.Body,
	})
	if err != nil {
		return out, fmt.Errorf("sql insert message: %w", err)
	}

	out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[types.Message])
	if err != nil {
		return out, fmt.Errorf("sql collect inserted message: %w", err)
	}

	out.ReadBy = []string{actor.UserID}

	return out, nil
}

// Messages returns the full ordered log with read-by sets. Ordering is
// by timestamp ascending, ties broken by id (xids are creation ordered).
func (c *Cockroach) Messages(ctx context.Context, conversationID string) ([]types.Message, error) {
	const q = `
		SELECT messages.*,
			COALESCE((
				SELECT array_agg(message_reads.user_id ORDER BY message_reads.read_at, message_reads.user_id)
				FROM message_reads
				WHERE message_reads.message_id = messages.id
			), ARRAY[]::VARCHAR[]) AS read_by
		FROM messages
		WHERE messages.conversation_id = @conversation_id
		ORDER BY messages.created_at, messages.id
	`
	args := pgx.StrictNamedArgs{
		"conversation_id": conversationID,
	}
	out, err := pgxutil.Select(ctx, c.db, q, []any{args}, pgx.RowToStructByNameLax[types.Message])
	if err != nil {
		return nil, fmt.Errorf("sql select messages: %w", err)
	}

	return out, nil
}

// MarkConversationRead adds the reader to every message's read-by set,
// then zeroes their unread count. Deliberately not transactional: the
// unread count is a best-effort signal, and the write order means a
// partial failure only over-counts until the next successful mark-read.
func (c *Cockroach) MarkConversationRead(ctx context.Context, conversationID, userID string) error {
	const readsQ = `
		INSERT INTO message_reads (message_id, user_id)
		SELECT messages.id, @user_id
		FROM messages
		WHERE messages.conversation_id = @conversation_id
		ON CONFLICT (message_id, user_id) DO NOTHING
	`

	_, err := c.db.Exec(ctx, readsQ, pgx.StrictNamedArgs{
		"conversation_id": conversationID,
		"user_id":         userID,
	})
	if err != nil {
		return fmt.Errorf("sql union read markers: %w", err)
	}

	const counterQ = `
		UPDATE participants
		SET unread_count = 0,
			last_read_at = now(),
			updated_at = now()
		WHERE conversation_id = @conversation_id
			AND user_id = @user_id
	`

	_, err = c.db.Exec(ctx, counterQ, pgx.StrictNamedArgs{
		"conversation_id": conversationID,
		"user_id":         userID,
	})
	if err != nil {
		return fmt.Errorf("sql reset unread count: %w", err)
	}

	return nil
}

func (c *Cockroach) conversationExists(ctx context.Context, conversationID string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM conversations WHERE id = @conversation_id
		)
	`
	args := pgx.StrictNamedArgs{
		"conversation_id": conversationID,
	}
	exists, err := pgxutil.SelectRow(ctx, c.db, q, []any{args}, pgx.RowTo[bool])
	if err != nil {
		return false, fmt.Errorf("sql select conversation existence: %w", err)
	}

	return exists, nil
}
