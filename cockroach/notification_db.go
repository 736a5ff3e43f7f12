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

func (c *Cockroach) CreateNotification(ctx context.Context, in types.CreateNotification) (types.Notification, error) {
	var out types.Notification

	const q = `
		INSERT INTO notifications (id, user_id, kind, title, body, metadata)
		VALUES (@notification_id, @user_id, @kind, @title, @body, @metadata)
		RETURNING *
	`

	metadata := in.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	rows, err := c.db.Query(ctx, q, pgx.StrictNamedArgs{
		"notification_id": id.Generate(),
		"user_id":         in.UserID,
		"kind":            in.Kind,
		"title":           in.Title,
		"body":            in.Body,
		"metadata":        metadata,
	})
	if err != nil {
		return out, fmt.Errorf("sql insert notification: %w", err)
	}

	out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[types.Notification])
	if err != nil {
		return out, fmt.Errorf("sql collect inserted notification: %w", err)
	}

	return out, nil
}

func (c *Cockroach) Notifications(ctx context.Context, userID string) ([]types.Notification, error) {
	const q = `
		SELECT *
		FROM notifications
		WHERE user_id = @user_id
		ORDER BY created_at DESC, id DESC
	`
	args := pgx.StrictNamedArgs{
		"user_id": userID,
	}
	out, err := pgxutil.Select(ctx, c.db, q, []any{args}, pgx.RowToStructByNameLax[types.Notification])
	if err != nil {
		return nil, fmt.Errorf("sql select notifications: %w", err)
	}

	return out, nil
}

func (c *Cockroach) Notification(ctx context.Context, notificationID string) (types.Notification, error) {
	var out types.Notification

	const q = "SELECT * FROM notifications WHERE id = @notification_id"

	rows, err := c.db.Query(ctx, q, pgx.StrictNamedArgs{
		"notification_id": notificationID,
	})
	if err != nil {
		return out, fmt.Errorf("sql select notification: %w", err)
	}

	out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[types.Notification])
	if db.IsNotFoundError(err) {
		return out, errs.NewNotFoundError("notification not found")
	}

	if err != nil {
		return out, fmt.Errorf("sql collect notification: %w", err)
	}

	return out, nil
}

// MarkNotificationRead flips read_at once. Re-marking an already read
// notification matches zero rows, which is the idempotent no-op the
// caller expects.
func (c *Cockroach) MarkNotificationRead(ctx context.Context, notificationID string) error {
	const q = `
		UPDATE notifications
		SET read_at = now()
		WHERE id = @notification_id
			AND read_at IS NULL
	`

	_, err := c.db.Exec(ctx, q, pgx.StrictNamedArgs{
		"notification_id": notificationID,
	})
	if err != nil {
		return fmt.Errorf("sql mark notification read: %w", err)
	}

	return nil
}
