package save

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vraelian/OrbitalTrading/internal/game"
)

var ErrSaveNotFound = errors.New("save not found")

// Store persists whole game states as JSONB rows. A save is immutable once
// written; loading one starts a fresh session from the captured state.
type Store struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewStore(db *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, log: logger}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS saves (
			id         uuid PRIMARY KEY,
			name       text NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now(),
			state      jsonb NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure saves table: %w", err)
	}
	return nil
}

type SaveInfo struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Day       int       `json:"day"`
	Credits   float64   `json:"credits"`
}

func (s *Store) Save(ctx context.Context, name string, state *game.State) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("day %d", state.Day)
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode state: %w", err)
	}
	id := uuid.New()
	_, err = s.db.Exec(ctx, `
		INSERT INTO saves (id, name, state)
		VALUES ($1, $2, $3)
	`, id, name, payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert save: %w", err)
	}
	s.log.Info("game saved", "save_id", id, "name", name, "day", state.Day)
	return id, nil
}

func (s *Store) Load(ctx context.Context, id uuid.UUID) (*game.State, error) {
	var payload []byte
	err := s.db.QueryRow(ctx, `
		SELECT state
		FROM saves
		WHERE id = $1
	`, id).Scan(&payload)
	if err == pgx.ErrNoRows {
		return nil, ErrSaveNotFound
	}
	if err != nil {
		return nil, err
	}
	var state game.State
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return &state, nil
}

func (s *Store) List(ctx context.Context) ([]SaveInfo, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, created_at,
		       (state->>'day')::int,
		       (state->'player'->>'credits')::float8
		FROM saves
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SaveInfo
	for rows.Next() {
		var info SaveInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.CreatedAt, &info.Day, &info.Credits); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM saves WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSaveNotFound
	}
	return nil
}
