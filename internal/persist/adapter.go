// Package persist stores JSON snapshots of shop state in a kv.Store. Reads
// always recover to the empty default and store failures switch the adapter
// to an in-memory fallback instead of reaching the caller. A degraded adapter
// tries the store again once RetryAfter has passed and, when it answers,
// copies the fallback back and resumes normal writes.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shoptodo/shoptodo-backend/pkg/kv"
	"github.com/shoptodo/shoptodo-backend/pkg/logger"
	"go.uber.org/multierr"
)

// Logical snapshot keys.
const (
	KeyCurrentUser = "current-user"
	KeyCart        = "cart"
	KeyTodos       = "todos"
	KeyOrders      = "orders"
	KeyLanguage    = "language"
	KeyProfiles    = "profiles"
)

// LocalNamespace prefixes the single-user demo state.
const LocalNamespace = "shoptodo:"

// UserNamespace prefixes the state of a backend account.
func UserNamespace(username string) string {
	return "user:" + strings.TrimSpace(username) + ":"
}

// DefaultRetryAfter is how long a degraded adapter waits before trying the
// store again.
const DefaultRetryAfter = 30 * time.Second

type degradeMarker interface {
	MarkDegraded()
	MarkRecovered()
}

type Params struct {
	Store      kv.Store
	Namespace  string
	RetryAfter time.Duration
	Now        func() time.Time
	Logger     *logger.Logger
	Metrics    degradeMarker
}

type Adapter struct {
	mu         sync.Mutex
	primary    kv.Store
	store      kv.Store
	fallback   *kv.Memory
	degraded   bool
	nextRetry  time.Time
	retryAfter time.Duration
	now        func() time.Time
	namespace  string
	logg       *logger.Logger
	metrics    degradeMarker
}

// New builds an adapter. A nil store starts on the in-memory fallback.
func New(params Params) *Adapter {
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	retryAfter := params.RetryAfter
	if retryAfter <= 0 {
		retryAfter = DefaultRetryAfter
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	a := &Adapter{
		primary:    params.Store,
		store:      params.Store,
		retryAfter: retryAfter,
		now:        now,
		namespace:  params.Namespace,
		logg:       logg,
		metrics:    params.Metrics,
	}
	if a.store == nil {
		a.store = kv.NewMemory()
	}
	return a
}

// Degraded reports whether the backing store failed and writes now go to memory.
func (a *Adapter) Degraded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.degraded
}

// Save encodes value as JSON under key. Only encoding failures are returned.
func (a *Adapter) Save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	a.write(ctx, key, string(raw))
	return nil
}

// SaveAll writes every entry, in key order.
func (a *Adapter) SaveAll(ctx context.Context, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs error
	for _, key := range keys {
		errs = multierr.Append(errs, a.Save(ctx, key, values[key]))
	}
	return errs
}

// Load decodes the value under key into dest, which must be a non-nil
// pointer. On a missing or unreadable value dest is reset to its zero value
// and false is returned.
func (a *Adapter) Load(ctx context.Context, key string, dest any) bool {
	target := reflect.ValueOf(dest)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return false
	}
	elem := target.Elem()

	raw, ok := a.read(ctx, key)
	if !ok {
		elem.Set(reflect.Zero(elem.Type()))
		return false
	}

	fresh := reflect.New(elem.Type())
	if err := json.Unmarshal([]byte(raw), fresh.Interface()); err != nil {
		a.logg.WarnErr(a.logg.WithStorageKey(ctx, a.namespace+key), "discarding corrupted snapshot", err)
		elem.Set(reflect.Zero(elem.Type()))
		return false
	}
	elem.Set(fresh.Elem())
	return true
}

func (a *Adapter) write(ctx context.Context, key, raw string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.retryPrimary(ctx)
	if err := a.store.Set(ctx, a.namespace+key, raw); err != nil {
		a.degrade(ctx, key, err)
		_ = a.store.Set(ctx, a.namespace+key, raw)
	}
}

func (a *Adapter) read(ctx context.Context, key string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.retryPrimary(ctx)
	raw, err := a.store.Get(ctx, a.namespace+key)
	if err == nil {
		return raw, true
	}
	if !errors.Is(err, kv.ErrNotFound) {
		a.degrade(ctx, key, err)
	}
	return "", false
}

// degrade swaps in the memory store. Callers hold a.mu.
func (a *Adapter) degrade(ctx context.Context, key string, cause error) {
	if a.degraded {
		return
	}
	a.degraded = true
	a.fallback = kv.NewMemory()
	a.store = a.fallback
	a.nextRetry = a.now().Add(a.retryAfter)
	a.logg.WarnErr(a.logg.WithStorageKey(ctx, a.namespace+key), "snapshot store failed; continuing in memory", cause)
	if a.metrics != nil {
		a.metrics.MarkDegraded()
	}
}

// retryPrimary tries the primary store again once the retry interval has
// passed. Every key written while degraded is copied back before the primary
// takes over again; any failure keeps the fallback and schedules the next
// attempt.
// Callers hold a.mu.
func (a *Adapter) retryPrimary(ctx context.Context) {
	if !a.degraded || a.primary == nil || a.now().Before(a.nextRetry) {
		return
	}
	a.nextRetry = a.now().Add(a.retryAfter)

	for _, key := range a.fallback.Keys("") {
		raw, err := a.fallback.Get(ctx, key)
		if err != nil {
			continue
		}
		if err := a.primary.Set(ctx, key, raw); err != nil {
			a.logg.WarnErr(a.logg.WithStorageKey(ctx, key), "snapshot store still failing", err)
			return
		}
	}
	if _, err := a.primary.Get(ctx, a.namespace+KeyCurrentUser); err != nil && !errors.Is(err, kv.ErrNotFound) {
		a.logg.WarnErr(a.logg.WithStorageKey(ctx, a.namespace+KeyCurrentUser), "snapshot store still failing", err)
		return
	}

	a.degraded = false
	a.store = a.primary
	a.fallback = nil
	a.logg.Info(a.logg.WithField(ctx, "namespace", a.namespace), "snapshot store recovered")
	if a.metrics != nil {
		a.metrics.MarkRecovered()
	}
}
