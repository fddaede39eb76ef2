package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/techhive/users-api/internal/core/domain"
)

func TestUserRepository_Insert(t *testing.T) {
	repo := NewUserRepository()

	created, err := repo.Insert(context.Background(), &domain.User{
		Name: "Ada", Email: "ada@techhive.com", Age: 30, Role: domain.RoleUser, IsActive: true,
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("expected createdAt == updatedAt, got %v / %v", created.CreatedAt, created.UpdatedAt)
	}

	second, err := repo.Insert(context.Background(), &domain.User{
		Name: "Bea", Email: "bea@techhive.com", Age: 31, Role: domain.RoleUser, IsActive: true,
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if second.ID == created.ID {
		t.Fatalf("expected fresh id per insert")
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository()

	if _, err := repo.Insert(context.Background(), &domain.User{Name: "A", Email: "dup@techhive.com"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := repo.Insert(context.Background(), &domain.User{Name: "B", Email: "Dup@TechHive.com"}); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected DuplicateEmail, got %v", err)
	}
}

func TestUserRepository_FindByEmail_CaseInsensitive(t *testing.T) {
	repo := NewUserRepository()
	created, _ := repo.Insert(context.Background(), &domain.User{Name: "Ada", Email: "Ada@TechHive.com"})

	found, err := repo.FindByEmail(context.Background(), "ada@techhive.com")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("unexpected record: %+v", found)
	}
}

func TestUserRepository_Update_MaintainsEmailIndex(t *testing.T) {
	repo := NewUserRepository()
	a, _ := repo.Insert(context.Background(), &domain.User{Name: "A", Email: "a@techhive.com"})
	_, _ = repo.Insert(context.Background(), &domain.User{Name: "B", Email: "b@techhive.com"})

	// Taking b's email must conflict.
	changed := a.Clone()
	changed.Email = "B@techhive.com"
	if _, err := repo.Update(context.Background(), a.ID, changed); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected DuplicateEmail, got %v", err)
	}

	// Moving to a free email releases the old one.
	changed.Email = "c@techhive.com"
	if _, err := repo.Update(context.Background(), a.ID, changed); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, err := repo.FindByEmail(context.Background(), "a@techhive.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("old email still indexed")
	}
	if _, err := repo.FindByEmail(context.Background(), "c@techhive.com"); err != nil {
		t.Fatalf("new email not indexed: %v", err)
	}
}

func TestUserRepository_Update_Immutable(t *testing.T) {
	repo := NewUserRepository()
	created, _ := repo.Insert(context.Background(), &domain.User{Name: "A B", Email: "ab@techhive.com"})

	tampered := created.Clone()
	tampered.ID = "hijacked"
	tampered.CreatedAt = time.Now().Add(-time.Hour)
	tampered.Name = "Renamed"

	updated, err := repo.Update(context.Background(), created.ID, tampered)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ID != created.ID || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("immutable fields changed: %+v", updated)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("mutable field not applied")
	}
}

func TestUserRepository_Delete(t *testing.T) {
	repo := NewUserRepository()
	created, _ := repo.Insert(context.Background(), &domain.User{Name: "A", Email: "a@techhive.com"})

	if err := repo.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := repo.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	// Deleting frees the email for reuse.
	if _, err := repo.Insert(context.Background(), &domain.User{Name: "A2", Email: "a@techhive.com"}); err != nil {
		t.Fatalf("email not released after delete: %v", err)
	}
}

func TestUserRepository_All_InsertionOrder(t *testing.T) {
	repo := NewUserRepository()
	if err := repo.Seed(SeedUsers()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	users, err := repo.All(context.Background())
	if err != nil {
		t.Fatalf("all failed: %v", err)
	}
	if len(users) != 5 {
		t.Fatalf("expected 5 seeded users, got %d", len(users))
	}
	for i, want := range []string{"1", "2", "3", "4", "5"} {
		if users[i].ID != want {
			t.Fatalf("expected insertion order, got %s at %d", users[i].ID, i)
		}
	}
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	repo := NewUserRepository()
	created, _ := repo.Insert(context.Background(), &domain.User{Name: "A", Email: "a@techhive.com"})

	created.Name = "mutated"
	fresh, _ := repo.FindByID(context.Background(), created.ID)
	if fresh.Name == "mutated" {
		t.Fatalf("repository shared its record with the caller")
	}
}

func TestUserRepository_ConcurrentInsertSameEmail(t *testing.T) {
	repo := NewUserRepository()

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Insert(context.Background(), &domain.User{Name: "Race", Email: "race@techhive.com"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, domain.ErrDuplicateEmail) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one insert to win, got %d", succeeded)
	}
}

func TestRevocationStore(t *testing.T) {
	store := NewRevocationStore()

	revoked, err := store.IsRevoked(context.Background(), "tok")
	if err != nil || revoked {
		t.Fatalf("expected unknown token to be clean, got %v %v", revoked, err)
	}

	if err := store.Revoke(context.Background(), "tok", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	revoked, _ = store.IsRevoked(context.Background(), "tok")
	if !revoked {
		t.Fatalf("expected token to be revoked")
	}
}
