package cockroach

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgxutil"
	"github.com/morsafarhq/morsafar/errs"
	"github.com/morsafarhq/morsafar/types"
)

// CreateFriendCode inserts the code for userID. It surfaces unique
// violations raw so the caller can tell a code collision (retry with a
// fresh candidate) from a concurrent per-user insert (fetch and reuse).
func (c *Cockroach) CreateFriendCode(ctx context.Context, userID, code string) (types.FriendCode, error) {
	var out types.FriendCode

	const q = `
		INSERT INTO friend_codes (user_id, code)
		VALUES (@user_id, @code)
		RETURNING user_id, code, created_at
	`

	rows, err := c.db.Query(ctx, q, pgx.StrictNamedArgs{
		"user_id": userID,
		"code":    code,
	})
	if err != nil {
		return out, fmt.Errorf("sql insert friend code: %w", err)
	}

	out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[types.FriendCode])
	if IsUniqueViolationError(err) {
		return out, err
	}

	if err != nil {
		return out, fmt.Errorf("sql collect inserted friend code: %w", err)
	}

	return out, nil
}

func (c *Cockroach) FriendCode(ctx context.Context, userID string) (types.FriendCode, error) {
	const q = "SELECT user_id, code, created_at FROM friend_codes WHERE user_id = @user_id"
	args := pgx.StrictNamedArgs{
		"user_id": userID,
	}
	out, err := pgxutil.SelectRow(ctx, c.db, q, []any{args}, pgx.RowToStructByNameLax[types.FriendCode])
	if errors.Is(err, pgx.ErrNoRows) {
		return out, errs.NewNotFoundError("friend code not found")
	}

	if err != nil {
		return out, fmt.Errorf("sql select friend code: %w", err)
	}

	return out, nil
}

func (c *Cockroach) UserIDByFriendCode(ctx context.Context, code string) (string, error) {
	const q = "SELECT user_id FROM friend_codes WHERE code = @code"
	args := pgx.StrictNamedArgs{
		"code": code,
	}
	userID, err := pgxutil.SelectRow(ctx, c.db, q, []any{args}, pgx.RowTo[string])
	if errors.Is(err, pgx.ErrNoRows) {
		return "", errs.NewNotFoundError("friend code not found")
	}

	if err != nil {
		return "", fmt.Errorf("sql select friend code owner: %w", err)
	}

	return userID, nil
}
