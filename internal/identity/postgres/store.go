// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameHub Contributors

// Package postgres implements identity persistence using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/gamehub/gamehub/internal/identity"
)

// poolIface is the subset of pgxpool.Pool used by the store. pgxmock
// exposes the same shape, allowing unit tests without a database.
type poolIface interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements identity.Store using PostgreSQL. Sign-in method
// uniqueness is enforced by the primary key on
// third_party_sign_in_methods (provider, external_user_id); that
// constraint is the sole cross-request coordination point for racing
// first sign-ins.
type Store struct {
	pool poolIface
}

// NewStore creates a new Store.
func NewStore(pool poolIface) *Store {
	return &Store{pool: pool}
}

// CreatePlayerWithSignInMethod inserts the player and its sign-in method
// link in one transaction. Either both rows are durably created or
// neither is. Returns identity.ErrSignInMethodExists when the sign-in
// method key is already linked to a player.
func (s *Store) CreatePlayerWithSignInMethod(ctx context.Context, player *identity.Player, method identity.SignInMethod) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return oops.Code("PLAYER_CREATE_FAILED").
			With("operation", "begin transaction").
			Wrap(err)
	}
	defer func() { _ = tx.Rollback(ctx) }() //nolint:errcheck // no-op after commit

	_, err = tx.Exec(ctx, `
		INSERT INTO players (id, screen_name, joined_at)
		VALUES ($1, $2, $3)
	`,
		player.ID.String(),
		player.ScreenName,
		player.JoinedAt,
	)
	if err != nil {
		return oops.Code("PLAYER_CREATE_FAILED").
			With("operation", "insert player").
			With("player_id", player.ID.String()).
			Wrap(err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO third_party_sign_in_methods (provider, external_user_id, player_id)
		VALUES ($1, $2, $3)
	`,
		string(method.Provider),
		method.ExternalUserID,
		player.ID.String(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code("SIGN_IN_METHOD_EXISTS").
				With("provider", string(method.Provider)).
				Wrap(identity.ErrSignInMethodExists)
		}
		return oops.Code("PLAYER_CREATE_FAILED").
			With("operation", "insert sign-in method").
			With("provider", string(method.Provider)).
			Wrap(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return oops.Code("PLAYER_CREATE_FAILED").
			With("operation", "commit transaction").
			Wrap(err)
	}
	return nil
}

// FindBySignInMethod retrieves the player linked to the given sign-in
// method.
func (s *Store) FindBySignInMethod(ctx context.Context, method identity.SignInMethod) (*identity.Player, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT p.id, p.screen_name, p.joined_at
		FROM players p
		JOIN third_party_sign_in_methods m ON p.id = m.player_id
		WHERE m.provider = $1 AND m.external_user_id = $2
	`, string(method.Provider), method.ExternalUserID)

	player, err := scanPlayer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("PLAYER_NOT_FOUND").
			With("provider", string(method.Provider)).
			Wrap(identity.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("PLAYER_FIND_BY_SIGN_IN_METHOD_FAILED").
			With("operation", "find player by sign-in method").
			With("provider", string(method.Provider)).
			Wrap(err)
	}
	return player, nil
}

// FindByPlayerID retrieves a player by ID.
func (s *Store) FindByPlayerID(ctx context.Context, id ulid.ULID) (*identity.Player, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, screen_name, joined_at
		FROM players
		WHERE id = $1
	`, id.String())

	player, err := scanPlayer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("PLAYER_NOT_FOUND").
			With("player_id", id.String()).
			Wrap(identity.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("PLAYER_FIND_BY_ID_FAILED").
			With("operation", "find player by id").
			With("player_id", id.String()).
			Wrap(err)
	}
	return player, nil
}

// scanPlayer scans a single row into a Player.
// Callers are responsible for handling pgx.ErrNoRows.
func scanPlayer(row pgx.Row) (*identity.Player, error) {
	var (
		idStr      string
		screenName string
		joinedAt   time.Time
	)

	if err := row.Scan(&idStr, &screenName, &joinedAt); err != nil {
		// Propagate pgx.ErrNoRows unchanged for callers to handle with context.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("PLAYER_SCAN_FAILED").
			With("operation", "scan player").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("PLAYER_INVALID_ID").
			With("operation", "parse player id").
			With("id", idStr).
			Wrap(err)
	}

	return &identity.Player{
		ID:         id,
		ScreenName: screenName,
		JoinedAt:   joinedAt,
	}, nil
}

// Compile-time interface check.
var _ identity.Store = (*Store)(nil)
