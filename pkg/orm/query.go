// Package orm is a thin fluent wrapper around GORM with read-through
// caching and offset pagination. Repositories talk to this, not to
// gorm.DB directly.
package orm

import (
	"time"

	"github.com/shashiranjanraj/bazaar/pkg/database"
	"gorm.io/gorm"
)

// Cacher is the cache hook used by Query.Cache. Wired at boot to pkg/cache
// (the indirection keeps orm and cache from importing each other).
type Cacher interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{}, ttl time.Duration) error
	Forget(key string) error
}

// CacheStore is set once during server boot. Nil disables caching.
var CacheStore Cacher

// Pagination describes one page of a paginated result set.
type Pagination struct {
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	Total    int64 `json:"total"`
	LastPage int   `json:"last_page"`
}

// DefaultPageSize matches the public API contract: 10 records per page.
const DefaultPageSize = 10

type Query struct {
	db *gorm.DB
}

// DB starts a query against the connected database.
func DB() *Query {
	return &Query{db: database.DB}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

// OrderBy applies an ORDER BY clause, e.g. OrderBy("created_at DESC").
func (q *Query) OrderBy(clause string) *Query {
	return &Query{db: q.db.Order(clause)}
}

// Preload eager-loads an association by name.
func (q *Query) Preload(assoc string) *Query {
	return &Query{db: q.db.Preload(assoc)}
}

// Get loads all matching rows into dest.
func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

// First loads the first matching row. Returns gorm.ErrRecordNotFound when
// nothing matches.
func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

// Count stores the number of matching rows in n.
func (q *Query) Count(n *int64) error {
	return q.db.Count(n).Error
}

// Create inserts v.
func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

// Save persists all fields of v (full update).
func (q *Query) Save(v interface{}) error {
	return q.db.Save(v).Error
}

// Delete removes v. This is a hard delete: the catalog relies on the
// store's ON DELETE CASCADE to clean up dependents, and a soft delete
// would never trigger it.
func (q *Query) Delete(v interface{}) error {
	return q.db.Unscoped().Delete(v).Error
}

// GetWithPagination loads one page of results into dest and reports the
// pagination window. page is 1-based; limit <= 0 falls back to
// DefaultPageSize.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	var total int64
	if err := q.db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	if err := q.db.Offset((page - 1) * limit).Limit(limit).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	lastPage := int((total + int64(limit) - 1) / int64(limit))
	if lastPage < 1 {
		lastPage = 1
	}

	return Pagination{Page: page, PerPage: limit, Total: total, LastPage: lastPage}, nil
}

// Cache answers from CacheStore when the key is warm, otherwise runs the
// query and stores the result for ttl.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if CacheStore != nil && CacheStore.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	if CacheStore != nil {
		_ = CacheStore.Set(key, dest, ttl)
	}
	return nil
}
