package repository

import (
	"context"

	"github.com/helpinghands/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgNeedyRepository struct {
	pool *pgxpool.Pool
}

// NewPgNeedyRepository returns a PostgreSQL-backed NeedyRepository.
func NewPgNeedyRepository(pool *pgxpool.Pool) NeedyRepository {
	return &pgNeedyRepository{pool: pool}
}

const needySelectCols = `id, name, email, location, phone, is_approved, description,
	pdf, document_path, bank_transfer_ref, created_at, updated_at`

func scanNeedy(scan func(...any) error) (*model.Needy, error) {
	n := &model.Needy{}
	err := scan(
		&n.ID, &n.Name, &n.Email, &n.Location, &n.Phone, &n.IsApproved, &n.Description,
		&n.PDF, &n.DocumentPath, &n.BankTransferRef, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return n, nil
}

func (r *pgNeedyRepository) List(ctx context.Context) ([]*model.Needy, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+needySelectCols+` FROM needy`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*model.Needy
	for rows.Next() {
		n, err := scanNeedy(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *pgNeedyRepository) GetByID(ctx context.Context, id int64) (*model.Needy, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+needySelectCols+` FROM needy WHERE id = $1`, id)
	return scanNeedy(row.Scan)
}

func (r *pgNeedyRepository) Create(ctx context.Context, n *model.Needy) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO needy
		 (name, email, location, phone, is_approved, description, pdf, document_path,
		  bank_transfer_ref, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		n.Name, n.Email, n.Location, n.Phone, n.IsApproved, n.Description, n.PDF,
		n.DocumentPath, n.BankTransferRef, n.CreatedAt, n.UpdatedAt,
	).Scan(&n.ID)
	return mapErr(err)
}

func (r *pgNeedyRepository) Update(ctx context.Context, n *model.Needy) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE needy SET name = $1, email = $2, location = $3, phone = $4, is_approved = $5,
		 description = $6, pdf = $7, document_path = $8, bank_transfer_ref = $9, updated_at = $10
		 WHERE id = $11`,
		n.Name, n.Email, n.Location, n.Phone, n.IsApproved, n.Description, n.PDF,
		n.DocumentPath, n.BankTransferRef, n.UpdatedAt, n.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
