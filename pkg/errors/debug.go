package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
)

// Backends reported in ErrorDump.Store.
const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"
)

// ErrorDump is the log-side view of an error: the typed code, the unwrap
// chain and, when a storage driver raised it, the driver's own details.
type ErrorDump struct {
	TopMessage string   `json:"top_message"`
	Code       Code     `json:"code,omitempty"`
	Chain      []string `json:"chain,omitempty"`

	Store       string `json:"store,omitempty"`
	StoreCode   string `json:"store_code,omitempty"`
	Constraint  string `json:"constraint,omitempty"`
	Table       string `json:"table,omitempty"`
	StoreDetail string `json:"store_detail,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{TopMessage: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		d.Store = StorePostgres
		d.StoreCode = pgxErr.Code
		d.Constraint = pgxErr.ConstraintName
		d.Table = pgxErr.TableName
		d.StoreDetail = pgxErr.Detail
		return d
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		d.Store = StorePostgres
		d.StoreCode = string(pqErr.Code)
		d.Constraint = pqErr.Constraint
		d.Table = pqErr.Table
		d.StoreDetail = pqErr.Detail
		return d
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		d.Store = StoreSQLite
		d.StoreCode = fmt.Sprintf("%d", int(liteErr.ExtendedCode))
		d.StoreDetail = liteErr.Code.Error()
		return d
	}

	var redisErr redis.Error
	if errors.As(err, &redisErr) {
		d.Store = StoreRedis
		d.StoreDetail = redisErr.Error()
		return d
	}

	return d
}

// Fields flattens the dump into log fields, skipping empty store details.
func (d ErrorDump) Fields() map[string]any {
	fields := map[string]any{
		"error_code":  d.Code,
		"error_chain": d.Chain,
	}
	if d.Store == "" {
		return fields
	}
	fields["store"] = d.Store
	for key, value := range map[string]string{
		"store_code":   d.StoreCode,
		"constraint":   d.Constraint,
		"table":        d.Table,
		"store_detail": d.StoreDetail,
	} {
		if value != "" {
			fields[key] = value
		}
	}
	return fields
}
