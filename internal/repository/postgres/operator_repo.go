package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventgate/internal/domain"
)

type operatorRepository struct {
	DB *sql.DB
}

func NewOperatorRepository(db *sql.DB) domain.OperatorRepository {
	return &operatorRepository{
		DB: db,
	}
}

func (r *operatorRepository) Create(ctx context.Context, op *domain.Operator) error {
	query := `
		INSERT INTO operators (id, email, name, password_hash, password_salt, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query,
		op.ID, op.Email, op.Name, op.PasswordHash, op.PasswordSalt, op.CreatedAt)
	return err
}

func (r *operatorRepository) GetByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	query := `
		SELECT id, email, name, password_hash, password_salt, created_at
		FROM operators
		WHERE email = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *operatorRepository) GetByID(ctx context.Context, id string) (*domain.Operator, error) {
	query := `
		SELECT id, email, name, password_hash, password_salt, created_at
		FROM operators
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *operatorRepository) scanOne(row *sql.Row) (*domain.Operator, error) {
	op := &domain.Operator{}
	err := row.Scan(&op.ID, &op.Email, &op.Name, &op.PasswordHash, &op.PasswordSalt, &op.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return op, nil
}
