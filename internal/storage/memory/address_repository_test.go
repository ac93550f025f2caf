package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

func makeAddress(id, userID string, isDefault bool, createdAt time.Time) domain.Address {
	return domain.Address{
		ID:            id,
		UserID:        userID,
		RecipientName: "Ivan Petrov",
		Line1:         "Lenina 1",
		City:          "Moscow",
		IsDefault:     isDefault,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func TestAddressRepositorySingleDefault(t *testing.T) {
	repo := NewAddressRepository()

	base := time.Now().UTC()
	if err := repo.Create(makeAddress("a1", "user-1", true, base)); err != nil {
		t.Fatalf("create a1: %v", err)
	}
	if err := repo.Create(makeAddress("a2", "user-1", true, base.Add(time.Second))); err != nil {
		t.Fatalf("create a2: %v", err)
	}

	addresses, err := repo.ListByUser("user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(addresses) != 2 {
		t.Fatalf("addresses = %d, want 2", len(addresses))
	}
	// Default ровно один и идёт первым.
	if !addresses[0].IsDefault || addresses[0].ID != "a2" {
		t.Fatalf("expected a2 to be the default first, got %+v", addresses[0])
	}
	if addresses[1].IsDefault {
		t.Fatalf("a1 must lose the default flag, got %+v", addresses[1])
	}
}

func TestAddressRepositoryUpdateMovesDefault(t *testing.T) {
	repo := NewAddressRepository()

	base := time.Now().UTC()
	if err := repo.Create(makeAddress("a1", "user-1", true, base)); err != nil {
		t.Fatalf("create a1: %v", err)
	}
	if err := repo.Create(makeAddress("a2", "user-1", false, base.Add(time.Second))); err != nil {
		t.Fatalf("create a2: %v", err)
	}

	updated := makeAddress("a2", "user-1", true, base.Add(time.Second))
	updated.City = "Kazan"
	if err := repo.Update(updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	a1, err := repo.Get("a1")
	if err != nil {
		t.Fatalf("get a1: %v", err)
	}
	if a1.IsDefault {
		t.Fatal("a1 must lose the default flag after update of a2")
	}

	a2, err := repo.Get("a2")
	if err != nil {
		t.Fatalf("get a2: %v", err)
	}
	if !a2.IsDefault || a2.City != "Kazan" {
		t.Fatalf("unexpected a2 after update: %+v", a2)
	}
}

func TestAddressRepositoryNotFound(t *testing.T) {
	repo := NewAddressRepository()

	if _, err := repo.Get("missing"); !errors.Is(err, domain.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound from Get, got %v", err)
	}
	if err := repo.Update(makeAddress("missing", "user-1", false, time.Now().UTC())); !errors.Is(err, domain.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound from Update, got %v", err)
	}
	if err := repo.Delete("missing"); !errors.Is(err, domain.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound from Delete, got %v", err)
	}
}

func TestAddressRepositoryDelete(t *testing.T) {
	repo := NewAddressRepository()

	if err := repo.Create(makeAddress("a1", "user-1", false, time.Now().UTC())); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Delete("a1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	addresses, err := repo.ListByUser("user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(addresses) != 0 {
		t.Fatalf("expected empty address book, got %d", len(addresses))
	}
}
