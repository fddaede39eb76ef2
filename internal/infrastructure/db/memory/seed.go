package memory

import (
	"time"

	"github.com/techhive/users-api/internal/core/domain"
)

// SeedUsers returns the demo dataset loaded at startup. IDs are fixed short
// strings so the documented example requests work out of the box.
func SeedUsers() []domain.User {
	at := func(day int) time.Time {
		return time.Date(2026, time.January, day, 9, 0, 0, 0, time.UTC)
	}

	return []domain.User{
		{ID: "1", Name: "Ada Admin", Email: "admin@techhive.com", Age: 34, Role: domain.RoleAdmin, IsActive: true, CreatedAt: at(5), UpdatedAt: at(5)},
		{ID: "2", Name: "Marco Vega", Email: "marco.vega@techhive.com", Age: 28, Role: domain.RoleUser, IsActive: true, CreatedAt: at(6), UpdatedAt: at(6)},
		{ID: "3", Name: "Mina Osei", Email: "manager@techhive.com", Age: 41, Role: domain.RoleManager, IsActive: true, CreatedAt: at(7), UpdatedAt: at(7)},
		{ID: "4", Name: "Jules Barre", Email: "jules.barre@techhive.com", Age: 23, Role: domain.RoleUser, IsActive: false, CreatedAt: at(8), UpdatedAt: at(9)},
		{ID: "5", Name: "Priya Nair", Email: "priya.nair@techhive.com", Age: 37, Role: domain.RoleUser, IsActive: true, CreatedAt: at(10), UpdatedAt: at(10)},
	}
}

// SeedCredentials returns the plaintext login pairs matching SeedUsers.
// Demo-only; a real deployment would source credentials elsewhere.
func SeedCredentials() map[string]string {
	return map[string]string{
		"admin@techhive.com":      "admin123",
		"manager@techhive.com":    "manager123",
		"marco.vega@techhive.com": "user123",
		"priya.nair@techhive.com": "user123",
	}
}
