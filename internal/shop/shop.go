// Package shop owns the application state: the session gate, cart, todos,
// checkout workflow and order history, persisted through a persist.Adapter.
// Every mutation runs the same pipeline: gate check, mutate, persist.
package shop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shoptodo/shoptodo-backend/internal/cart"
	"github.com/shoptodo/shoptodo-backend/internal/catalog"
	"github.com/shoptodo/shoptodo-backend/internal/checkout"
	"github.com/shoptodo/shoptodo-backend/internal/orders"
	"github.com/shoptodo/shoptodo-backend/internal/persist"
	"github.com/shoptodo/shoptodo-backend/internal/session"
	"github.com/shoptodo/shoptodo-backend/internal/todos"
	"github.com/shoptodo/shoptodo-backend/pkg/enums"
	"github.com/shoptodo/shoptodo-backend/pkg/ids"
	"github.com/shoptodo/shoptodo-backend/pkg/logger"
	"github.com/shoptodo/shoptodo-backend/pkg/metrics"
)

// Params bundles the collaborators of a Shop.
type Params struct {
	Store   *persist.Adapter
	Catalog *catalog.Catalog
	Auth    session.Authenticator
	IDs     *ids.Sequence
	Now     func() time.Time
	Logger  *logger.Logger
	Metrics *metrics.ShopMetrics
}

// Shop is safe for concurrent use; every public method holds mu.
type Shop struct {
	mu sync.Mutex

	store   *persist.Adapter
	catalog *catalog.Catalog
	gate    *session.Gate
	ids     *ids.Sequence
	now     func() time.Time
	logg    *logger.Logger
	metrics *metrics.ShopMetrics

	cart     *cart.Cart
	todos    *todos.List
	orders   *orders.Log
	checkout *checkout.Workflow
	language enums.Language
	profiles map[string]session.Profile
}

// New builds a Shop and restores its state from the adapter.
func New(ctx context.Context, params Params) (*Shop, error) {
	if params.Store == nil {
		return nil, errors.New("persistence adapter is required")
	}
	cat := params.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	seq := params.IDs
	if seq == nil {
		seq = ids.NewSequence(now)
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	s := &Shop{
		store:    params.Store,
		catalog:  cat,
		gate:     session.NewGate(params.Auth),
		ids:      seq,
		now:      now,
		logg:     logg,
		metrics:  params.Metrics,
		checkout: checkout.New(),
	}
	s.restore(ctx)
	return s, nil
}

// restore loads every slice of state. Missing or corrupted slices come back
// empty.
func (s *Shop) restore(ctx context.Context) {
	var lines []cart.Line
	s.store.Load(ctx, persist.KeyCart, &lines)
	s.cart = cart.New(lines)

	var items []todos.Item
	s.store.Load(ctx, persist.KeyTodos, &items)
	s.todos = todos.New(items)

	var history []orders.Order
	s.store.Load(ctx, persist.KeyOrders, &history)
	s.orders = orders.NewLog(validOrders(history))

	var lang string
	s.language = enums.DefaultLanguage
	if s.store.Load(ctx, persist.KeyLanguage, &lang) {
		if parsed, err := enums.ParseLanguage(lang); err == nil {
			s.language = parsed
		}
	}

	s.profiles = map[string]session.Profile{}
	var profiles map[string]session.Profile
	if s.store.Load(ctx, persist.KeyProfiles, &profiles) && profiles != nil {
		s.profiles = profiles
	}

	var current *session.User
	if s.store.Load(ctx, persist.KeyCurrentUser, &current) && current != nil {
		if err := s.gate.Resume(s.withProfile(*current)); err != nil {
			s.logg.WarnErr(ctx, "discarding stored session", err)
		}
	}

	s.ids.Observe(s.todos.MaxID())
	s.ids.Observe(s.orders.MaxID())
}

func validOrders(in []orders.Order) []orders.Order {
	out := make([]orders.Order, 0, len(in))
	for _, o := range in {
		if o.Valid() {
			out = append(out, o)
		}
	}
	return out
}

// persist writes the listed slices. Callers hold mu.
func (s *Shop) persist(ctx context.Context, keys ...string) {
	values := make(map[string]any, len(keys))
	for _, key := range keys {
		values[key] = s.snapshot(key)
	}
	if err := s.store.SaveAll(ctx, values); err != nil {
		s.logg.Error(ctx, "failed to encode shop state", err)
	}
}

func (s *Shop) snapshot(key string) any {
	switch key {
	case persist.KeyCart:
		return s.cart.Lines()
	case persist.KeyTodos:
		return s.todos.Items()
	case persist.KeyOrders:
		return s.orders.All()
	case persist.KeyLanguage:
		return s.language
	case persist.KeyProfiles:
		return s.profiles
	case persist.KeyCurrentUser:
		if user, ok := s.gate.Current(); ok {
			return &user
		}
		return nil
	}
	return nil
}

// require runs the gate check and tags ctx with the username.
func (s *Shop) require(ctx context.Context) (context.Context, session.User, error) {
	user, err := s.gate.Require()
	if err != nil {
		return ctx, session.User{}, err
	}
	return s.logg.WithUsername(ctx, user.Username), user, nil
}

// Degraded reports whether persistence has fallen back to memory.
func (s *Shop) Degraded() bool {
	return s.store.Degraded()
}
