package repository

import (
	"context"
	"fmt"

	"github.com/helpinghands/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// approvalTables is the only source of table identifiers interpolated into
// approval queries.
var approvalTables = map[model.Kind]string{
	model.KindDonor: "donors",
	model.KindNeedy: "needy",
}

type pgApprovalRepository struct {
	pool *pgxpool.Pool
}

// NewPgApprovalRepository returns a PostgreSQL-backed ApprovalRepository.
func NewPgApprovalRepository(pool *pgxpool.Pool) ApprovalRepository {
	return &pgApprovalRepository{pool: pool}
}

// ListAll returns get_all_approvals() rows keyed by column name.
func (r *pgApprovalRepository) ListAll(ctx context.Context) ([]model.ApprovalRow, error) {
	rows, err := r.pool.Query(ctx, `SELECT * FROM get_all_approvals()`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []model.ApprovalRow
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(model.ApprovalRow, len(fields))
		for i, f := range fields {
			row[f.Name] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *pgApprovalRepository) SetApproved(ctx context.Context, kind model.Kind, id int64, approved bool) error {
	table, ok := approvalTables[kind]
	if !ok {
		return fmt.Errorf("invalid approval kind: %s", kind)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE `+table+` SET is_approved = $1, updated_at = NOW() WHERE id = $2`,
		approved, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgApprovalRepository) Document(ctx context.Context, needyID int64) (*string, *string, error) {
	var inline, path *string
	err := r.pool.QueryRow(ctx,
		`SELECT pdf, document_path FROM needy WHERE id = $1`, needyID,
	).Scan(&inline, &path)
	if err != nil {
		return nil, nil, mapErr(err)
	}
	return inline, path, nil
}
