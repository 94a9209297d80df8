package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Persistence - доступ к хранилищу; все операции здесь одиночные
// (lookup/insert/scan), транзакции не нужны
type Persistence interface {
	Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Exec(ctx context.Context, query string, args ...interface{}) error
	ExecWithResult(ctx context.Context, query string, args ...interface{}) (int64, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) *sqlx.Row
}
