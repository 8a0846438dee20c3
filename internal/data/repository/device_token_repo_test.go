package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubRows feeds canned token rows and reports err after iteration,
// standing in for a connection that drops mid-result-set.
type stubRows struct {
	tokens []string
	idx    int
	err    error
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return r.err }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Values() ([]any, error)                       { return nil, nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	if r.idx < len(r.tokens) {
		r.idx++
		return true
	}
	return false
}

func (r *stubRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.tokens[r.idx-1]
	return nil
}

type stubQuerier struct {
	rows pgx.Rows
}

func (s *stubQuerier) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return s.rows, nil
}

func (s *stubQuerier) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row { return nil }
func (s *stubQuerier) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (s *stubQuerier) Begin(_ context.Context) (pgx.Tx, error) { return nil, nil }
func (s *stubQuerier) Ping(_ context.Context) error            { return nil }
func (s *stubQuerier) Close()                                  {}

func TestFindTokensByUserID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns all rows", func(t *testing.T) {
		db := &stubQuerier{rows: &stubRows{tokens: []string{"device-1", "device-2"}}}
		repo := NewDeviceTokenRepository(db, zap.NewNop())

		tokens, err := repo.FindTokensByUserID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, []string{"device-1", "device-2"}, tokens)
	})

	t.Run("surfaces an iteration error", func(t *testing.T) {
		dropped := errors.New("connection reset")
		db := &stubQuerier{rows: &stubRows{tokens: []string{"device-1"}, err: dropped}}
		repo := NewDeviceTokenRepository(db, zap.NewNop())

		_, err := repo.FindTokensByUserID(ctx, uuid.New())
		assert.ErrorIs(t, err, dropped)
	})
}
