package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cuplet/cuplet-go/internal/repository"
	"github.com/cuplet/cuplet-go/internal/storage"
)

func newTestEngine(t *testing.T) *storage.Engine {
	t.Helper()
	engine, err := storage.Open(context.Background(), storage.NewFileMedium(filepath.Join(t.TempDir(), "data.json")))
	if err != nil {
		t.Fatalf("storage.Open() unexpected error: %v", err)
	}
	return engine
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(
		repository.NewUserRepository(newTestEngine(t)),
		"test-secret",
		time.Hour,
	)
}

func newTestCouponService(t *testing.T) *CouponService {
	t.Helper()
	return NewCouponService(repository.NewCouponRepository(newTestEngine(t)))
}
