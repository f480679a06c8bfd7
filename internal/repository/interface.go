package repository

import (
	"context"

	"github.com/helpinghands/backend/internal/model"
)

// DB checks that the database connection is alive.
type DB interface {
	Ping(ctx context.Context) error
}

// UserRepository persists user accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]*model.User, error)
}

// DonorRepository persists donor submissions.
type DonorRepository interface {
	List(ctx context.Context) ([]*model.Donor, error)
	GetByID(ctx context.Context, id int64) (*model.Donor, error)
	// Create inserts d and sets d.ID. Timestamps and approval are written as given.
	Create(ctx context.Context, d *model.Donor) error
	// Update overwrites every mutable column of the row identified by d.ID.
	Update(ctx context.Context, d *model.Donor) error
}

// NeedyRepository persists needy submissions.
type NeedyRepository interface {
	List(ctx context.Context) ([]*model.Needy, error)
	GetByID(ctx context.Context, id int64) (*model.Needy, error)
	Create(ctx context.Context, n *model.Needy) error
	Update(ctx context.Context, n *model.Needy) error
}

// ApprovalRepository backs the admin review queue.
type ApprovalRepository interface {
	// ListAll returns the rows produced by get_all_approvals().
	ListAll(ctx context.Context) ([]model.ApprovalRow, error)
	// SetApproved flips is_approved on the table mapped from kind.
	SetApproved(ctx context.Context, kind model.Kind, id int64, approved bool) error
	// Document returns the inline payload and path reference of a needy row.
	Document(ctx context.Context, needyID int64) (inline, path *string, err error)
}
