package repository

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/database"

	"github.com/google/uuid"
)

var ErrVouchDuplicate = errors.New("vouch already exists")

// Vouch is a one-directional endorsement; one per (voucher, vouched) pair,
// enforced by a unique constraint.
type Vouch struct {
	ID            uuid.UUID
	VoucherID     uuid.UUID
	VouchedID     uuid.UUID
	VoucherHandle string
	Comment       string
	CreatedAt     time.Time
}

type VouchRepository interface {
	Create(ctx context.Context, v Vouch) (Vouch, error)
	ListForUser(ctx context.Context, vouchedID uuid.UUID) ([]Vouch, error)
}

type PostgresVouchRepository struct {
	db database.DB
}

func NewPostgresVouchRepository(db database.DB) *PostgresVouchRepository {
	return &PostgresVouchRepository{db: db}
}

func (r *PostgresVouchRepository) Create(ctx context.Context, v Vouch) (Vouch, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO vouches (id, voucher_id, vouched_id, comment) VALUES ($1, $2, $3, $4)`,
		v.ID, v.VoucherID, v.VouchedID, v.Comment,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Vouch{}, ErrVouchDuplicate
		}
		return Vouch{}, err
	}

	row := r.db.QueryRow(ctx,
		`SELECT v.id, v.voucher_id, v.vouched_id, u.handle, v.comment, v.created_at
		 FROM vouches v JOIN users u ON u.id = v.voucher_id
		 WHERE v.id = $1`,
		v.ID,
	)
	var created Vouch
	if err := row.Scan(&created.ID, &created.VoucherID, &created.VouchedID, &created.VoucherHandle, &created.Comment, &created.CreatedAt); err != nil {
		return Vouch{}, err
	}
	return created, nil
}

func (r *PostgresVouchRepository) ListForUser(ctx context.Context, vouchedID uuid.UUID) ([]Vouch, error) {
	rows, err := r.db.Query(ctx,
		`SELECT v.id, v.voucher_id, v.vouched_id, u.handle, v.comment, v.created_at
		 FROM vouches v JOIN users u ON u.id = v.voucher_id
		 WHERE v.vouched_id = $1
		 ORDER BY v.created_at DESC`,
		vouchedID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Vouch, 0)
	for rows.Next() {
		var v Vouch
		if err := rows.Scan(&v.ID, &v.VoucherID, &v.VouchedID, &v.VoucherHandle, &v.Comment, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
