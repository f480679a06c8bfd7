package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/helpinghands/backend/internal/document"
	"github.com/helpinghands/backend/internal/model"
	"github.com/helpinghands/backend/internal/repository"
	"github.com/helpinghands/backend/internal/storage"
)

// ApprovalService drives the admin review queue.
type ApprovalService interface {
	ListAllForApproval(ctx context.Context) ([]model.ApprovalRow, error)
	// SetApproval validates kind before touching the store.
	SetApproval(ctx context.Context, kind string, id int64, approved bool) error
	// FetchDocument returns the raw PDF bytes of a needy record.
	FetchDocument(ctx context.Context, needyID int64) ([]byte, error)
}

// ApprovalServiceImpl is the production implementation of ApprovalService.
type ApprovalServiceImpl struct {
	repo  repository.ApprovalRepository
	store storage.Storage
}

// NewApprovalService creates an ApprovalService. store resolves path-reference
// documents and may be nil when only inline documents are used.
func NewApprovalService(repo repository.ApprovalRepository, store storage.Storage) *ApprovalServiceImpl {
	return &ApprovalServiceImpl{repo: repo, store: store}
}

var _ ApprovalService = (*ApprovalServiceImpl)(nil)

func (s *ApprovalServiceImpl) ListAllForApproval(ctx context.Context) ([]model.ApprovalRow, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list approvals: %w", err)
	}
	if rows == nil {
		rows = []model.ApprovalRow{}
	}
	return rows, nil
}

func (s *ApprovalServiceImpl) SetApproval(ctx context.Context, kind string, id int64, approved bool) error {
	k, err := model.ParseKind(kind)
	if err != nil || id <= 0 {
		return ErrInvalidKind
	}
	if err := s.repo.SetApproved(ctx, k, id, approved); err != nil {
		return err
	}
	slog.Info("approval updated", "kind", k, "id", id, "approved", approved)
	return nil
}

func (s *ApprovalServiceImpl) FetchDocument(ctx context.Context, needyID int64) ([]byte, error) {
	inline, path, err := s.repo.Document(ctx, needyID)
	if err != nil {
		return nil, err
	}
	if inline != nil && *inline != "" {
		return document.Decode(*inline)
	}
	if path == nil || *path == "" || s.store == nil {
		return nil, ErrNoDocument
	}

	key, ok := s.store.KeyFromURL(*path)
	if !ok {
		return nil, fmt.Errorf("document path %q: %w", *path, ErrNoDocument)
	}
	rc, err := s.store.Open(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
