package userRepo

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/admin/tg-bots/image2url-bot/internal/domain"
	"github.com/admin/tg-bots/image2url-bot/internal/ports/persistence"
)

type fakePersistence struct {
	execRows  int64
	execErr   error
	getErr    error
	lastQuery string
	lastArgs  []interface{}
}

var _ persistence.Persistence = (*fakePersistence)(nil)

func (f *fakePersistence) Get(_ context.Context, _ interface{}, query string, args ...interface{}) error {
	f.lastQuery = query
	f.lastArgs = args
	return f.getErr
}

func (f *fakePersistence) Select(_ context.Context, _ interface{}, query string, args ...interface{}) error {
	f.lastQuery = query
	f.lastArgs = args
	return f.getErr
}

func (f *fakePersistence) Exec(_ context.Context, query string, args ...interface{}) error {
	f.lastQuery = query
	f.lastArgs = args
	return f.execErr
}

func (f *fakePersistence) ExecWithResult(_ context.Context, query string, args ...interface{}) (int64, error) {
	f.lastQuery = query
	f.lastArgs = args
	return f.execRows, f.execErr
}

func (f *fakePersistence) QueryRow(_ context.Context, _ string, _ ...interface{}) *sqlx.Row {
	return nil
}

func newTestRepo(db *fakePersistence) *Repository {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(db, log).(*Repository)
}

func testUser() *domain.BotUser {
	name := "Alice"
	return &domain.BotUser{
		ID:        uuid.New(),
		ChatID:    42,
		FirstName: &name,
		CreatedAt: time.Now(),
	}
}

func TestRegisterReportsCreated(t *testing.T) {
	db := &fakePersistence{execRows: 1}
	repo := newTestRepo(db)

	created, err := repo.Register(context.Background(), testUser())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !created {
		t.Fatal("first registration must report created=true")
	}
	if !strings.Contains(db.lastQuery, "ON CONFLICT (chat_id) DO NOTHING") {
		t.Fatalf("insert must tolerate the duplicate race: %q", db.lastQuery)
	}
}

func TestRegisterDuplicateIsNotCreated(t *testing.T) {
	db := &fakePersistence{execRows: 0} // конфликт по chat_id, строка не вставлена
	repo := newTestRepo(db)

	created, err := repo.Register(context.Background(), testUser())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created {
		t.Fatal("duplicate registration must report created=false")
	}
}

func TestRegisterPropagatesError(t *testing.T) {
	db := &fakePersistence{execErr: errors.New("connection refused")}
	repo := newTestRepo(db)

	if _, err := repo.Register(context.Background(), testUser()); err == nil {
		t.Fatal("expected error from storage")
	}
}

func TestGetByChatIDNotFound(t *testing.T) {
	db := &fakePersistence{getErr: sql.ErrNoRows}
	repo := newTestRepo(db)

	_, err := repo.GetByChatID(context.Background(), 42)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("sql.ErrNoRows must map to domain.ErrUserNotFound, got %v", err)
	}
}

func TestGetAllOrdersByCreation(t *testing.T) {
	db := &fakePersistence{}
	repo := newTestRepo(db)

	if _, err := repo.GetAll(context.Background()); err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if !strings.Contains(db.lastQuery, "ORDER BY created_at") {
		t.Fatalf("directory listing must be ordered by registration time: %q", db.lastQuery)
	}
}
