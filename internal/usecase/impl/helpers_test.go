package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
)

// memoryUserRepo is an in-memory UserRepository used by the service tests. It
// enforces the same uniqueness rules the real store declares on its indexes.
type memoryUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		nextID: 1,
		users:  make(map[int64]entity.User),
	}
}

func (r *memoryUserRepo) findOne(match func(*entity.User) bool) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if match(&user) {
			found := user

			return &found, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	return r.findOne(func(u *entity.User) bool { return u.ID == id })
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.findOne(func(u *entity.User) bool { return u.Email == email })
}

func (r *memoryUserRepo) FindByGoogleID(_ context.Context, googleID string) (*entity.User, error) {
	return r.findOne(func(u *entity.User) bool { return u.GoogleID != nil && *u.GoogleID == googleID })
}

func (r *memoryUserRepo) FindByEmailConfirmToken(_ context.Context, token string) (*entity.User, error) {
	return r.findOne(func(u *entity.User) bool {
		return u.EmailConfirmToken != nil && *u.EmailConfirmToken == token
	})
}

func (r *memoryUserRepo) FindByResetPasswordToken(_ context.Context, token string) (*entity.User, error) {
	return r.findOne(func(u *entity.User) bool {
		return u.ResetPasswordToken != nil && *u.ResetPasswordToken == token
	})
}

func (r *memoryUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domainerrors.ErrDuplicateEmail
		}
		if user.GoogleID != nil && existing.GoogleID != nil && *existing.GoogleID == *user.GoogleID {
			return domainerrors.ErrDuplicateEmail
		}
	}

	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user

	return nil
}

func (r *memoryUserRepo) Save(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	r.users[user.ID] = *user

	return nil
}

// memoryProductRepo is an in-memory ProductRepository.
type memoryProductRepo struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]entity.Product
}

func newMemoryProductRepo() *memoryProductRepo {
	return &memoryProductRepo{
		nextID:   1,
		products: make(map[int64]entity.Product),
	}
}

func (r *memoryProductRepo) FindByID(_ context.Context, id int64) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return &product, nil
}

func (r *memoryProductRepo) FindAll(_ context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.Product, 0, len(r.products))
	for id := int64(1); id < r.nextID; id++ {
		if product, ok := r.products[id]; ok {
			found := product
			out = append(out, &found)
		}
	}

	return out, nil
}

func (r *memoryProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = *product

	return nil
}

func (r *memoryProductRepo) Save(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	r.products[product.ID] = *product

	return nil
}

func (r *memoryProductRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)

	return nil
}

// memoryTxManager executes the function directly against the in-memory repos.
type memoryTxManager struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
}

func (m *memoryTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *memoryTxManager) UserRepo() repository.UserRepository { return m.userRepo }

func (m *memoryTxManager) ProductRepo() repository.ProductRepository { return m.productRepo }

// sequenceTokenGen returns deterministic tokens for assertions.
type sequenceTokenGen struct {
	mu    sync.Mutex
	count int
}

func (g *sequenceTokenGen) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.count++

	return fmt.Sprintf("%064d", g.count), nil
}

// recordingMailer captures outbound mail; failSend makes every send fail.
type recordingMailer struct {
	mu       sync.Mutex
	failSend bool
	sent     []sentMail
}

type sentMail struct {
	kind  string
	to    string
	token string
}

func (m *recordingMailer) record(kind, to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSend {
		return fmt.Errorf("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{kind: kind, to: to, token: token})

	return nil
}

func (m *recordingMailer) SendConfirmationEmail(_ context.Context, to, _, token string) error {
	return m.record("confirm", to, token)
}

func (m *recordingMailer) SendPasswordResetEmail(_ context.Context, to, _, token string) error {
	return m.record("reset", to, token)
}

func (m *recordingMailer) sentTo(to string) []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []sentMail
	for _, mail := range m.sent {
		if strings.EqualFold(mail.to, to) {
			out = append(out, mail)
		}
	}

	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "unit-test-secret"
	cfg.Auth = &config.AuthConfig{BcryptCost: 4, ResetTokenTTL: 0}

	return cfg
}

var _ repository.UserRepository = (*memoryUserRepo)(nil)
var _ repository.ProductRepository = (*memoryProductRepo)(nil)
var _ repository.TransactionManager = (*memoryTxManager)(nil)
var _ repository.RepositoryFactory = (*memoryTxManager)(nil)
var _ service.TokenGenerator = (*sequenceTokenGen)(nil)
var _ service.Mailer = (*recordingMailer)(nil)
