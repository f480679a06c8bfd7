package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/helpinghands/backend/internal/model"
	"github.com/helpinghands/backend/internal/repository"
	"github.com/helpinghands/backend/internal/service"
	"github.com/helpinghands/backend/internal/storage"
)

// ---------------------------------------------------------------------------
// In-memory repositories shared by handler tests
// ---------------------------------------------------------------------------

type memDonors struct {
	mu   sync.Mutex
	rows map[int64]model.Donor
	next int64
}

func (m *memDonors) List(ctx context.Context) ([]*model.Donor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Donor
	for _, id := range sortedKeys(m.rows) {
		d := m.rows[id]
		out = append(out, &d)
	}
	return out, nil
}

func (m *memDonors) GetByID(ctx context.Context, id int64) (*model.Donor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (m *memDonors) Create(ctx context.Context, d *model.Donor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	d.ID = m.next
	m.rows[d.ID] = *d
	return nil
}

func (m *memDonors) Update(ctx context.Context, d *model.Donor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[d.ID]; !ok {
		return repository.ErrNotFound
	}
	m.rows[d.ID] = *d
	return nil
}

type memNeedy struct {
	mu   sync.Mutex
	rows map[int64]model.Needy
	next int64
}

func (m *memNeedy) List(ctx context.Context) ([]*model.Needy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Needy
	for _, id := range sortedKeys(m.rows) {
		n := m.rows[id]
		out = append(out, &n)
	}
	return out, nil
}

func (m *memNeedy) GetByID(ctx context.Context, id int64) (*model.Needy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &n, nil
}

func (m *memNeedy) Create(ctx context.Context, n *model.Needy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	n.ID = m.next
	m.rows[n.ID] = *n
	return nil
}

func (m *memNeedy) Update(ctx context.Context, n *model.Needy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[n.ID]; !ok {
		return repository.ErrNotFound
	}
	m.rows[n.ID] = *n
	return nil
}

// memApprovals reads and flips rows owned by memDonors and memNeedy.
type memApprovals struct {
	donors *memDonors
	needy  *memNeedy
}

func (m *memApprovals) ListAll(ctx context.Context) ([]model.ApprovalRow, error) {
	var rows []model.ApprovalRow
	donors, _ := m.donors.List(ctx)
	for _, d := range donors {
		rows = append(rows, model.ApprovalRow{
			"id": d.ID, "user_type": "donor", "name": d.Name, "email": d.Email,
			"is_approved": d.IsApproved, "has_document": false, "created_at": d.CreatedAt,
		})
	}
	needy, _ := m.needy.List(ctx)
	for _, n := range needy {
		rows = append(rows, model.ApprovalRow{
			"id": n.ID, "user_type": "needy", "name": n.Name, "email": n.Email,
			"is_approved": n.IsApproved, "has_document": n.HasDocument(), "created_at": n.CreatedAt,
		})
	}
	return rows, nil
}

func (m *memApprovals) SetApproved(ctx context.Context, kind model.Kind, id int64, approved bool) error {
	switch kind {
	case model.KindDonor:
		d, err := m.donors.GetByID(ctx, id)
		if err != nil {
			return err
		}
		d.IsApproved = approved
		return m.donors.Update(ctx, d)
	case model.KindNeedy:
		n, err := m.needy.GetByID(ctx, id)
		if err != nil {
			return err
		}
		n.IsApproved = approved
		return m.needy.Update(ctx, n)
	}
	return repository.ErrNotFound
}

func (m *memApprovals) Document(ctx context.Context, needyID int64) (*string, *string, error) {
	n, err := m.needy.GetByID(ctx, needyID)
	if err != nil {
		return nil, nil, err
	}
	return n.PDF, n.DocumentPath, nil
}

// memStorage is a map-backed storage.Storage serving under /uploads.
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *memStorage) Save(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = b
	return "/uploads/" + key, nil
}

func (s *memStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *memStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memStorage) KeyFromURL(url string) (string, bool) {
	return strings.CutPrefix(url, "/uploads/")
}

func (s *memStorage) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ---------------------------------------------------------------------------
// Test server wiring
// ---------------------------------------------------------------------------

type mockPaymentService struct {
	createFunc func(ctx context.Context, amount float64, currency string) (string, error)
}

func (m *mockPaymentService) CreatePaymentIntent(ctx context.Context, amount float64, currency string) (string, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, amount, currency)
	}
	return "pi_secret", nil
}

type testEnv struct {
	donors   *memDonors
	needy    *memNeedy
	store    *memStorage
	payments *mockPaymentService
	handler  http.Handler
}

type envOption func(*envConfig)

type envConfig struct {
	allowClientApproval bool
	storeFiles          bool
}

func withClientApproval(allow bool) envOption {
	return func(c *envConfig) { c.allowClientApproval = allow }
}

func withFileStorage() envOption {
	return func(c *envConfig) { c.storeFiles = true }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	cfg := envConfig{allowClientApproval: true}
	for _, o := range opts {
		o(&cfg)
	}

	env := &testEnv{
		donors:   &memDonors{rows: map[int64]model.Donor{}},
		needy:    &memNeedy{rows: map[int64]model.Needy{}},
		store:    &memStorage{objects: map[string][]byte{}},
		payments: &mockPaymentService{},
	}
	submissions := service.NewSubmissionService(env.donors, env.needy, cfg.allowClientApproval)
	approvals := service.NewApprovalService(&memApprovals{donors: env.donors, needy: env.needy}, env.store)

	env.handler = Routes{
		Base:    New(&mockDB{}, "http://localhost:3000"),
		Donor:   NewDonorHandler(submissions, env.payments),
		Needy:   NewNeedyHandler(submissions, env.store, cfg.storeFiles),
		Admin:   NewAdminHandler(approvals),
		Contact: NewContactHandler(&mockContactService{}),
		Auth:    NewAuthHandler(&mockAuthService{}),
	}.Handler()
	return env
}

func (e *testEnv) do(t *testing.T, method, target, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doJSON(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return e.do(t, method, target, "application/json", r)
}
