// Package orm is a thin fluent layer over GORM used by the repositories. It
// keeps context propagation, transactions and read-through caching in one
// place.
package orm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/foodhub/pkg/cache"
)

// ErrRecordNotFound mirrors gorm.ErrRecordNotFound so callers need not
// import gorm.
var ErrRecordNotFound = gorm.ErrRecordNotFound

type Query struct {
	db *gorm.DB
}

// New starts a query bound to ctx.
func New(ctx context.Context, db *gorm.DB) *Query {
	return &Query{db: db.WithContext(ctx)}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Table(name string) *Query {
	return &Query{db: q.db.Table(name)}
}

func (q *Query) Select(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Select(query, args...)}
}

func (q *Query) Joins(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Joins(query, args...)}
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

func (q *Query) Distinct(args ...interface{}) *Query {
	return &Query{db: q.db.Distinct(args...)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) Scan(dest interface{}) error {
	return q.db.Scan(dest).Error
}

func (q *Query) Pluck(column string, dest interface{}) error {
	return q.db.Pluck(column, dest).Error
}

func (q *Query) Count() (int64, error) {
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

// First loads the first match. A miss is reported as (false, nil).
func (q *Query) First(dest interface{}) (bool, error) {
	err := q.db.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Cache serves dest from pkg/cache, running the query on a miss.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	return cache.Remember(q.db.Statement.Context, key, ttl, dest, func() error {
		return q.db.Find(dest).Error
	})
}

// Transaction runs fn inside a database transaction bound to ctx. GORM
// commits when fn returns nil and rolls back on an error or a panic.
func Transaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if err := db.WithContext(ctx).Transaction(fn); err != nil {
		return fmt.Errorf("orm: transaction: %w", err)
	}
	return nil
}
