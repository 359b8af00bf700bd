package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock, _ := newMockDB(t)
	return &userRepository{db: db, logger: logger.Nop()}, mock
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	user := models.User{
		Email:          "admin@nearmate.local",
		Name:           "Administrator",
		Role:           "admin",
		HashedPassword: "$2a$10$hash",
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), user.Email, user.Name, user.Role, models.StatusActive, user.HashedPassword, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID == "" {
		t.Error("expected generated user id")
	}
	if created.CreatedAt.IsZero() || created.CreatedAt.Location() != time.UTC {
		t.Errorf("expected UTC creation time, got %v", created.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation, "users_email_uq"))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "admin@nearmate.local"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "a@b.c"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestCreateUser_RetryableErrorIsMarked(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.SerializationFailure, ""))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "a@b.c"})
	if !IsRetryable(err) {
		t.Fatalf("expected retryable error, got %v", err)
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.
		NewRows(userColumns).
		AddRow("0190a0d4-0000-7000-8000-000000000001", "admin@nearmate.local", "Administrator", "admin", "active", "$2a$10$hash", now)

	mock.ExpectQuery("SELECT id, email").
		WithArgs("admin@nearmate.local").
		WillReturnRows(rows)

	found, err := repo.FindUserByEmail(context.Background(), "admin@nearmate.local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Role != "admin" || found.HashedPassword != "$2a$10$hash" {
		t.Errorf("unexpected user: %+v", found)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT id, email").
		WithArgs("ghost@nearmate.local").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindUserByEmail(context.Background(), "ghost@nearmate.local")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByEmail_UnexpectedError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT id, email").
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindUserByEmail(context.Background(), "a@b.c")
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByEmail_ScanError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	rows := sqlmock.NewRows([]string{"id"}).AddRow("u1") // intentionally wrong shape

	mock.ExpectQuery("SELECT id, email").WillReturnRows(rows)

	if _, err := repo.FindUserByEmail(context.Background(), "a@b.c"); err == nil {
		t.Fatal("expected scan error, got nil")
	}
}

func TestUserRepository_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewUserRepository(db, logger.Nop())
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, models.User{
		Email:          "admin@nearmate.local",
		Name:           "Administrator",
		Role:           "admin",
		HashedPassword: "$2a$10$hash",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := repo.FindUserByEmail(ctx, "admin@nearmate.local")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.UserID != created.UserID || !found.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("round trip mismatch: %+v vs %+v", found, created)
	}

	_, err = repo.CreateUser(ctx, models.User{Email: "admin@nearmate.local", Name: "Other", Role: "admin", HashedPassword: "x"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}
