package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/fragshare/internal/common"
	"github.com/dmitrijs2005/fragshare/internal/server/auth"
	"github.com/dmitrijs2005/fragshare/internal/server/config"
	"github.com/dmitrijs2005/fragshare/internal/server/models"
)

func newUserService(t *testing.T, rm *fakeRepoManager) *UserService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })
	cfg := &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	}
	return NewUserService(db, rm, cfg, nopLogger{})
}

func TestRegister_Success(t *testing.T) {
	repo := &fakeUsersRepo{createdID: "u-1"}
	s := newUserService(t, &fakeRepoManager{u: repo})

	got, err := s.Register(context.Background(), "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if got.ID != "u-1" || got.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
	// The stored hash must verify against the original password.
	if err := bcrypt.CompareHashAndPassword(repo.lastCreated.PasswordHash, []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &fakeUsersRepo{createErr: common.ErrAlreadyExists}
	s := newUserService(t, &fakeRepoManager{u: repo})

	_, err := s.Register(context.Background(), "alice@example.com", "s3cret")
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("want common.ErrAlreadyExists, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	repo := &fakeUsersRepo{getOut: &models.User{ID: "u-1", Email: "alice@example.com", PasswordHash: hash}}
	s := newUserService(t, &fakeRepoManager{u: repo})

	token, err := s.Login(context.Background(), "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	userID, err := auth.GetUserIDFromToken(token, []byte("k"))
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if userID != "u-1" {
		t.Fatalf("unexpected subject: %s", userID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	repo := &fakeUsersRepo{getOut: &models.User{ID: "u-1", PasswordHash: hash}}
	s := newUserService(t, &fakeRepoManager{u: repo})

	_, err := s.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("want common.ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := &fakeUsersRepo{getErr: common.ErrNotFound}
	s := newUserService(t, &fakeRepoManager{u: repo})

	_, err := s.Login(context.Background(), "ghost@example.com", "s3cret")
	if !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("want common.ErrInvalidCredentials, got %v", err)
	}
}
