package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/helpinghands/backend/internal/document"
	"github.com/helpinghands/backend/internal/model"
	"github.com/helpinghands/backend/internal/repository"
)

// SubmissionServiceImpl is the production implementation of SubmissionService.
type SubmissionServiceImpl struct {
	donors repository.DonorRepository
	needy  repository.NeedyRepository
	// allowClientApproval lets PUT bodies change isApproved directly.
	allowClientApproval bool
	now                 func() time.Time
}

// NewSubmissionService creates a SubmissionService backed by the given repositories.
func NewSubmissionService(donors repository.DonorRepository, needy repository.NeedyRepository, allowClientApproval bool) *SubmissionServiceImpl {
	return &SubmissionServiceImpl{
		donors:              donors,
		needy:               needy,
		allowClientApproval: allowClientApproval,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}

var _ SubmissionService = (*SubmissionServiceImpl)(nil)

func requireContact(name, email, phone string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(phone) == "" {
		return invalid("name, email and phone are required")
	}
	return nil
}

func (s *SubmissionServiceImpl) CreateDonor(ctx context.Context, d *model.Donor) (*model.Donor, error) {
	if err := requireContact(d.Name, d.Email, d.Phone); err != nil {
		return nil, err
	}
	now := s.now()
	d.CreatedAt = now
	d.UpdatedAt = now
	d.IsApproved = false
	if err := s.donors.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create donor: %w", err)
	}
	slog.Info("donor created", "donor_id", d.ID)

	stored, err := s.donors.GetByID(ctx, d.ID)
	if err != nil {
		return nil, fmt.Errorf("reload donor %d: %w", d.ID, err)
	}
	return stored, nil
}

func (s *SubmissionServiceImpl) GetDonor(ctx context.Context, id int64) (*model.Donor, error) {
	return s.donors.GetByID(ctx, id)
}

func (s *SubmissionServiceImpl) ListDonors(ctx context.Context) ([]*model.Donor, error) {
	list, err := s.donors.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*model.Donor{}
	}
	return list, nil
}

func (s *SubmissionServiceImpl) UpdateDonor(ctx context.Context, id int64, patch model.DonorPatch) (*model.Donor, error) {
	current, err := s.donors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.allowClientApproval {
		patch.IsApproved = nil
	}
	patch.Apply(current)
	current.UpdatedAt = s.now()
	if err := s.donors.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("update donor %d: %w", id, err)
	}
	return s.donors.GetByID(ctx, id)
}

func (s *SubmissionServiceImpl) CreateNeedy(ctx context.Context, n *model.Needy) (*model.Needy, error) {
	if err := requireContact(n.Name, n.Email, n.Phone); err != nil {
		return nil, err
	}
	if n.PDF != nil {
		if err := document.Validate(*n.PDF); err != nil {
			return nil, err
		}
	}
	now := s.now()
	n.CreatedAt = now
	n.UpdatedAt = now
	n.IsApproved = false
	if err := s.needy.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create needy: %w", err)
	}
	slog.Info("needy created", "needy_id", n.ID, "has_document", n.HasDocument())

	stored, err := s.needy.GetByID(ctx, n.ID)
	if err != nil {
		return nil, fmt.Errorf("reload needy %d: %w", n.ID, err)
	}
	return stored, nil
}

func (s *SubmissionServiceImpl) GetNeedy(ctx context.Context, id int64) (*model.Needy, error) {
	return s.needy.GetByID(ctx, id)
}

func (s *SubmissionServiceImpl) ListNeedy(ctx context.Context) ([]*model.Needy, error) {
	list, err := s.needy.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*model.Needy{}
	}
	return list, nil
}

func (s *SubmissionServiceImpl) UpdateNeedy(ctx context.Context, id int64, patch model.NeedyPatch) (*model.Needy, error) {
	if patch.PDF != nil {
		if err := document.Validate(*patch.PDF); err != nil {
			return nil, err
		}
	}
	current, err := s.needy.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.allowClientApproval {
		patch.IsApproved = nil
	}
	patch.Apply(current)
	current.UpdatedAt = s.now()
	if err := s.needy.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("update needy %d: %w", id, err)
	}
	return s.needy.GetByID(ctx, id)
}
