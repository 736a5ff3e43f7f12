package cockroach

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgxutil"
	"github.com/nicolasparada/go-db"

	"github.com/morsafarhq/morsafar/errs"
	"github.com/morsafarhq/morsafar/id"
	"github.com/morsafarhq/morsafar/types"
)

func (c *Cockroach) CreateFriendship(ctx context.Context, requesterID, requesterName, recipientID string) (types.Friendship, error) {
	var out types.Friendship

	const q = `
		INSERT INTO friendships (id, requester_id, requester_name, recipient_id, status)
		VALUES (@friendship_id, @requester_id, @requester_name, @recipient_id, @status)
		RETURNING *
	`

	rows, err := c.db.Query(ctx, q, pgx.StrictNamedArgs{
		"friendship_id":  id.Generate(),
		"requester_id":   requesterID,
		"requester_name": requesterName,
		"recipient_id":   recipientID,
		"status":         types.FriendshipStatusPending,
	})
	if err != nil {
		return out, fmt.Errorf("sql insert friendship: %w", err)
	}

	out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[types.Friendship])
	if err != nil {
		return out, fmt.Errorf("sql collect inserted friendship: %w", err)
	}

	return out, nil
}

func (c *Cockroach) Friendship(ctx context.Context, friendshipID string) (types.Friendship, error) {
	var out types.Friendship

	const q = "SELECT * FROM friendships WHERE id = @friendship_id"

	rows, err := c.db.Query(ctx, q, pgx.StrictNamedArgs{
		"friendship_id": friendshipID,
	})
	if err != nil {
		return out, fmt.Errorf("sql select friendship: %w", err)
	}

	out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[types.Friendship])
	if db.IsNotFoundError(err) {
		return out, errs.NewNotFoundError("friendship not found")
	}

	if err != nil {
		return out, fmt.Errorf("sql collect friendship: %w", err)
	}

	return out, nil
}

// FriendshipBetween returns the live (pending or accepted) friendship
// between two users in either direction. Rejected rows are terminal and
// never block a new request, so they are skipped here.
func (c *Cockroach) FriendshipBetween(ctx context.Context, userID, otherUserID string) (types.Friendship, error) {
	var out types.Friendship

	const q = `
		SELECT *
		FROM friendships
		WHERE status IN ('pending', 'accepted')
			AND (
				(requester_id = @user_id AND recipient_id = @other_user_id)
				OR (requester_id = @other_user_id AND recipient_id = @user_id)
			)
		ORDER BY (status = 'accepted') DESC
		LIMIT 1
	`

	rows, err := c.db.Query(ctx, q, pgx.StrictNamedArgs{
		"user_id":       userID,
		"other_user_id": otherUserID,
	})
	if err != nil {
		return out, fmt.Errorf("sql select friendship between: %w", err)
	}

	out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[types.Friendship])
	if db.IsNotFoundError(err) {
		return out, errs.NewNotFoundError("friendship not found")
	}

	if err != nil {
		return out, fmt.Errorf("sql collect friendship between: %w", err)
	}

	return out, nil
}

func (c *Cockroach) UpdateFriendshipStatus(ctx context.Context, friendshipID string, status types.FriendshipStatus, recipientName *string) (types.Friendship, error) {
	var out types.Friendship

	const q = `
		UPDATE friendships
		SET status = @status,
			recipient_name = COALESCE(@recipient_name, recipient_name),
			updated_at = now()
		WHERE id = @friendship_id
		RETURNING *
	`

	rows, err := c.db.Query(ctx, q, pgx.StrictNamedArgs{
		"friendship_id":  friendshipID,
		"status":         status,
		"recipient_name": recipientName,
	})
	if err != nil {
		return out, fmt.Errorf("sql update friendship status: %w", err)
	}

	out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[types.Friendship])
	if db.IsNotFoundError(err) {
		return out, errs.NewNotFoundError("friendship not found")
	}

	if err != nil {
		return out, fmt.Errorf("sql collect updated friendship: %w", err)
	}

	return out, nil
}

func (c *Cockroach) DeleteFriendship(ctx context.Context, friendshipID string) error {
	const q = "DELETE FROM friendships WHERE id = @friendship_id"

	_, err := c.db.Exec(ctx, q, pgx.StrictNamedArgs{
		"friendship_id": friendshipID,
	})
	if err != nil {
		return fmt.Errorf("sql delete friendship: %w", err)
	}

	return nil
}

func (c *Cockroach) Friends(ctx context.Context, userID string) ([]types.Friend, error) {
	const q = `
		SELECT id AS friendship_id,
			CASE WHEN requester_id = @user_id THEN recipient_id ELSE requester_id END AS user_id,
			CASE WHEN requester_id = @user_id THEN COALESCE(recipient_name, '') ELSE requester_name END AS display_name,
			updated_at AS since
		FROM friendships
		WHERE status = 'accepted'
			AND (requester_id = @user_id OR recipient_id = @user_id)
		ORDER BY since DESC
	`
	args := pgx.StrictNamedArgs{
		"user_id": userID,
	}
	out, err := pgxutil.Select(ctx, c.db, q, []any{args}, pgx.RowToStructByNameLax[types.Friend])
	if err != nil {
		return nil, fmt.Errorf("sql select friends: %w", err)
	}

	return out, nil
}

func (c *Cockroach) PendingFriendRequests(ctx context.Context, recipientID string) ([]types.Friendship, error) {
	const q = `
		SELECT *
		FROM friendships
		WHERE recipient_id = @recipient_id
			AND status = 'pending'
		ORDER BY created_at DESC
	`
	args := pgx.StrictNamedArgs{
		"recipient_id": recipientID,
	}
	out, err := pgxutil.Select(ctx, c.db, q, []any{args}, pgx.RowToStructByNameLax[types.Friendship])
	if err != nil {
		return nil, fmt.Errorf("sql select pending friend requests: %w", err)
	}

	return out, nil
}
