package service

import (
	"context"

	"github.com/helpinghands/backend/internal/model"
)

// SubmissionService handles donor and needy submissions.
type SubmissionService interface {
	// CreateDonor stores a new donor. Approval is always reset to false and the
	// stored row is returned.
	CreateDonor(ctx context.Context, d *model.Donor) (*model.Donor, error)
	GetDonor(ctx context.Context, id int64) (*model.Donor, error)
	ListDonors(ctx context.Context) ([]*model.Donor, error)
	// UpdateDonor applies patch to the stored donor and returns the new row.
	UpdateDonor(ctx context.Context, id int64, patch model.DonorPatch) (*model.Donor, error)

	// CreateNeedy stores a new needy record. An inline document is size checked
	// before anything is written.
	CreateNeedy(ctx context.Context, n *model.Needy) (*model.Needy, error)
	GetNeedy(ctx context.Context, id int64) (*model.Needy, error)
	ListNeedy(ctx context.Context) ([]*model.Needy, error)
	UpdateNeedy(ctx context.Context, id int64, patch model.NeedyPatch) (*model.Needy, error)
}
