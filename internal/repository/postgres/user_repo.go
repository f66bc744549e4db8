package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkovac/relay/internal/domain"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, full_name, email, password_hash, profile_pic, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.FullName, user.Email,
		user.PasswordHash, user.ProfilePic, user.CreatedAt, user.UpdatedAt,
	)
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT id, full_name, email, password_hash, profile_pic, created_at, updated_at FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT id, full_name, email, password_hash, profile_pic, created_at, updated_at FROM users WHERE email = $1", email)
}

func (r *UserRepo) ListOthers(ctx context.Context, id uuid.UUID) ([]domain.User, error) {
	query := `
		SELECT id, full_name, email, password_hash, profile_pic, created_at, updated_at
		FROM users
		WHERE id != $1
		ORDER BY full_name ASC`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.FullName, &u.Email,
			&u.PasswordHash, &u.ProfilePic, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *UserRepo) UpdateProfilePic(ctx context.Context, id uuid.UUID, url string) (*domain.User, error) {
	query := `
		UPDATE users
		SET profile_pic = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, full_name, email, password_hash, profile_pic, created_at, updated_at`

	var u domain.User
	err := r.pool.QueryRow(ctx, query, id, url, time.Now()).Scan(
		&u.ID, &u.FullName, &u.Email,
		&u.PasswordHash, &u.ProfilePic, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.FullName, &u.Email,
		&u.PasswordHash, &u.ProfilePic, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
