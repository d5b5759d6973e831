package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"invoicer/config"
	"invoicer/internal/domain/entity"
	"invoicer/internal/domain/repository"
	"invoicer/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Invoices: &config.InvoicesConfig{
			DefaultListLimit: 100,
			MaxListLimit:     1000,
		},
	}
}

// --- in-memory repository fakes ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return fmt.Errorf("duplicate username %q", user.Username)
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.Username] = &copied
	return nil
}

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[uuid.UUID]*entity.Invoice
	seq      int
	order    map[uuid.UUID]int

	createErr error
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[uuid.UUID]*entity.Invoice),
		order:    make(map[uuid.UUID]int),
	}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	copied := *invoice
	r.invoices[invoice.ID] = &copied
	r.order[invoice.ID] = r.seq
	r.seq++
	return nil
}

func (r *fakeInvoiceRepo) FindByID(_ context.Context, id, ownerID uuid.UUID) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	invoice, ok := r.invoices[id]
	if !ok || invoice.OwnerID != ownerID {
		return nil, repository.ErrInvoiceNotFound
	}
	copied := *invoice
	return &copied, nil
}

func (r *fakeInvoiceRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, offset, limit int) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owned := make([]*entity.Invoice, 0)
	for _, invoice := range r.invoices {
		if invoice.OwnerID == ownerID {
			owned = append(owned, invoice)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return r.order[owned[i].ID] < r.order[owned[j].ID]
	})

	if offset >= len(owned) {
		return nil, nil
	}
	owned = owned[offset:]
	if limit < len(owned) {
		owned = owned[:limit]
	}

	out := make([]*entity.Invoice, 0, len(owned))
	for _, invoice := range owned {
		copied := *invoice
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, invoice *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.invoices[invoice.ID]
	if !ok || existing.OwnerID != invoice.OwnerID {
		return repository.ErrInvoiceNotFound
	}
	copied := *invoice
	r.invoices[invoice.ID] = &copied
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.invoices[id]
	if !ok || existing.OwnerID != ownerID {
		return repository.ErrInvoiceNotFound
	}
	delete(r.invoices, id)
	delete(r.order, id)
	return nil
}

// fakeTxManager runs the callback against the shared fakes without any real
// transaction semantics.
type fakeTxManager struct {
	userRepo    *fakeUserRepo
	invoiceRepo *fakeInvoiceRepo
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *fakeTxManager) UserRepo() repository.UserRepository {
	return m.userRepo
}

func (m *fakeTxManager) InvoiceRepo() repository.InvoiceRepository {
	return m.invoiceRepo
}

// --- domain service fakes ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type fakeTokenService struct {
	validateErr error
}

func (s *fakeTokenService) GenerateToken(username string) (string, error) {
	return "token-for-" + username, nil
}

func (s *fakeTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	username, ok := strings.CutPrefix(tokenString, "token-for-")
	if !ok {
		return nil, fmt.Errorf("malformed test token %q", tokenString)
	}
	return &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: username},
	}, nil
}

func (s *fakeTokenService) AccessTokenTTL() time.Duration {
	return 30 * time.Minute
}

type fakeRenderer struct {
	renderErr error
	renders   int
}

func (r *fakeRenderer) Render(snapshot entity.Snapshot) ([]byte, error) {
	if r.renderErr != nil {
		return nil, r.renderErr
	}
	r.renders++
	return []byte(fmt.Sprintf("doc:%s:%s:%s", snapshot.InvoiceID, snapshot.ClientName, snapshot.Total)), nil
}

type fakeDocumentStore struct {
	mu        sync.Mutex
	artifacts map[uuid.UUID][]byte
	putErr    error
	deletes   int
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{artifacts: make(map[uuid.UUID][]byte)}
}

func (s *fakeDocumentStore) Put(_ context.Context, invoiceID uuid.UUID, artifact []byte) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[invoiceID] = append([]byte(nil), artifact...)
	return fmt.Sprintf("invoice_%s.pdf", invoiceID), nil
}

func (s *fakeDocumentStore) Get(_ context.Context, invoiceID uuid.UUID) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	artifact, ok := s.artifacts[invoiceID]
	if !ok {
		return nil, service.ErrDocumentNotFound
	}
	return append([]byte(nil), artifact...), nil
}

func (s *fakeDocumentStore) Delete(_ context.Context, invoiceID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.artifacts, invoiceID)
	s.deletes++
	return nil
}
