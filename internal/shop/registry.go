package shop

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shoptodo/shoptodo-backend/internal/catalog"
	"github.com/shoptodo/shoptodo-backend/internal/persist"
	"github.com/shoptodo/shoptodo-backend/internal/session"
	pkgerrors "github.com/shoptodo/shoptodo-backend/pkg/errors"
	"github.com/shoptodo/shoptodo-backend/pkg/ids"
	"github.com/shoptodo/shoptodo-backend/pkg/kv"
	"github.com/shoptodo/shoptodo-backend/pkg/logger"
	"github.com/shoptodo/shoptodo-backend/pkg/metrics"
)

type RegistryParams struct {
	Store   kv.Store
	Catalog *catalog.Catalog
	// Auth backs Shop.Login on every shop the registry opens.
	Auth session.Authenticator
	// StoreRetryAfter is passed to each adapter; zero keeps the default.
	StoreRetryAfter time.Duration
	IDs             *ids.Sequence
	Now             func() time.Time
	Logger          *logger.Logger
	Metrics         *metrics.ShopMetrics
}

// Registry keeps one Shop per backend user, each persisted under its own
// user:<name>: namespace.
type Registry struct {
	mu     sync.Mutex
	shops  map[string]*Shop
	params RegistryParams
}

func NewRegistry(params RegistryParams) *Registry {
	if params.Store == nil {
		params.Store = kv.NewMemory()
	}
	if params.Catalog == nil {
		params.Catalog = catalog.Default()
	}
	if params.IDs == nil {
		params.IDs = ids.NewSequence(params.Now)
	}
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	return &Registry{shops: map[string]*Shop{}, params: params}
}

// For returns the shop of user, creating and restoring it on first use, and
// makes sure user is logged in on it.
func (r *Registry) For(ctx context.Context, user session.User) (*Shop, error) {
	username := strings.TrimSpace(user.Username)
	if username == "" {
		return nil, session.ErrLoginRequired
	}
	user.Username = username

	r.mu.Lock()
	s, ok := r.shops[username]
	if !ok {
		var err error
		s, err = New(ctx, Params{
			Store: persist.New(persist.Params{
				Store:      r.params.Store,
				Namespace:  persist.UserNamespace(username),
				RetryAfter: r.params.StoreRetryAfter,
				Now:        r.params.Now,
				Logger:     r.params.Logger,
				Metrics:    r.params.Metrics,
			}),
			Catalog: r.params.Catalog,
			Auth:    r.params.Auth,
			IDs:     r.params.IDs,
			Now:     r.params.Now,
			Logger:  r.params.Logger,
			Metrics: r.params.Metrics,
		})
		if err != nil {
			r.mu.Unlock()
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open shop")
		}
		r.shops[username] = s
	}
	r.mu.Unlock()

	if err := s.Resume(ctx, user); err != nil {
		return nil, err
	}
	return s, nil
}

// Lookup returns the shop of username if it was opened before.
func (r *Registry) Lookup(username string) (*Shop, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shops[strings.TrimSpace(username)]
	return s, ok
}

// Forget drops the cached shop; its persisted state stays in the store.
func (r *Registry) Forget(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.shops, strings.TrimSpace(username))
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.shops)
}
