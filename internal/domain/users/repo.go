package users

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davron-dev/murojaat-bot/internal/apperr"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Upsert регистрирует пользователя при первом контакте.
// Если пользователь уже есть — роль не трогаем.
func (r *Repo) Upsert(ctx context.Context, telegramID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (telegram_id, role)
		VALUES ($1, $2)
		ON CONFLICT (telegram_id) DO NOTHING
	`, telegramID, RoleUser)
	if err != nil {
		return apperr.NewStorageError("users.upsert", err)
	}
	return nil
}

// SetRole — безусловная перезапись роли. Авторизацию проверяет вызывающий.
func (r *Repo) SetRole(ctx context.Context, telegramID int64, role Role) error {
	if !role.Valid() {
		return apperr.NewValidationError("неизвестная роль %q", role)
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (telegram_id, role)
		VALUES ($1, $2)
		ON CONFLICT (telegram_id) DO UPDATE SET role = $2
	`, telegramID, role)
	if err != nil {
		return apperr.NewStorageError("users.set_role", err)
	}
	return nil
}

func (r *Repo) List(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT telegram_id, role FROM users ORDER BY telegram_id`)
	if err != nil {
		return nil, apperr.NewStorageError("users.list", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.TelegramID, &u.Role); err != nil {
			return nil, apperr.NewStorageError("users.list", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// IsAdmin — неизвестный пользователь не админ.
func (r *Repo) IsAdmin(ctx context.Context, telegramID int64) (bool, error) {
	row := r.pool.QueryRow(ctx, `SELECT role FROM users WHERE telegram_id = $1`, telegramID)
	var role Role
	if err := row.Scan(&role); err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, apperr.NewStorageError("users.is_admin", err)
	}
	return role == RoleAdmin, nil
}

func (r *Repo) GetStats(ctx context.Context) (Stats, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE role = 'admin')
		FROM users
	`)
	var s Stats
	if err := row.Scan(&s.Total, &s.Admins); err != nil {
		return Stats{}, apperr.NewStorageError("users.stats", err)
	}
	s.Users = s.Total - s.Admins
	return s, nil
}
