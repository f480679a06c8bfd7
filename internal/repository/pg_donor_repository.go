package repository

import (
	"context"

	"github.com/helpinghands/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgDonorRepository struct {
	pool *pgxpool.Pool
}

// NewPgDonorRepository returns a PostgreSQL-backed DonorRepository.
func NewPgDonorRepository(pool *pgxpool.Pool) DonorRepository {
	return &pgDonorRepository{pool: pool}
}

const donorSelectCols = `id, name, email, location, phone, payment_ref, is_approved,
	description, created_at, updated_at`

func scanDonor(scan func(...any) error) (*model.Donor, error) {
	d := &model.Donor{}
	err := scan(
		&d.ID, &d.Name, &d.Email, &d.Location, &d.Phone, &d.PaymentRef,
		&d.IsApproved, &d.Description, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return d, nil
}

func (r *pgDonorRepository) List(ctx context.Context) ([]*model.Donor, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+donorSelectCols+` FROM donors`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*model.Donor
	for rows.Next() {
		d, err := scanDonor(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *pgDonorRepository) GetByID(ctx context.Context, id int64) (*model.Donor, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+donorSelectCols+` FROM donors WHERE id = $1`, id)
	return scanDonor(row.Scan)
}

func (r *pgDonorRepository) Create(ctx context.Context, d *model.Donor) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO donors
		 (name, email, location, phone, payment_ref, is_approved, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		d.Name, d.Email, d.Location, d.Phone, d.PaymentRef, d.IsApproved, d.Description,
		d.CreatedAt, d.UpdatedAt,
	).Scan(&d.ID)
	return mapErr(err)
}

func (r *pgDonorRepository) Update(ctx context.Context, d *model.Donor) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE donors SET name = $1, email = $2, location = $3, phone = $4, payment_ref = $5,
		 is_approved = $6, description = $7, updated_at = $8
		 WHERE id = $9`,
		d.Name, d.Email, d.Location, d.Phone, d.PaymentRef, d.IsApproved, d.Description,
		d.UpdatedAt, d.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
