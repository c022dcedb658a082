// Command seed creates the initial admin account and a handful of employee
// records so a fresh database is immediately usable.
package main

import (
	"context"
	"fmt"
	"os"

	"staffdir/internal/auth"
	"staffdir/internal/config"
	"staffdir/internal/employee"
	"staffdir/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if err := store.EnsureSchema(ctx, db); err != nil {
		return err
	}

	hasher := auth.NewBcryptHasher(cfg.GetBcryptCost())
	accounts := auth.NewAccountsRepository(db)

	email := envOr("SEED_ADMIN_EMAIL", "admin@demo.com")
	password := envOr("SEED_ADMIN_PASSWORD", "admin123")

	hash, err := hasher.HashPassword(password)
	if err != nil {
		return err
	}

	admin, err := accounts.GetOrCreate(ctx, &auth.Account{
		Email:        email,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
	})
	if err != nil {
		return err
	}
	fmt.Printf("admin account ready: %s (%s)\n", admin.Email, admin.ID)

	employees := employee.NewRepository(db)
	existing, err := employees.List(ctx, employee.Filter{}, employee.DefaultListOptions())
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Println("employees already seeded")
		return nil
	}

	for _, input := range sampleEmployees() {
		if _, err := employees.Create(ctx, input); err != nil {
			return err
		}
	}
	fmt.Printf("seeded %d employees\n", len(sampleEmployees()))

	return nil
}

func sampleEmployees() []employee.Input {
	classA := "A"
	classB := "B"
	full := 1.0
	most := 0.85

	return []employee.Input{
		{Name: "Ada Lindgren", Age: 34, Class: &classA, Subjects: []string{"Maths", "Physics"}, Attendance: &full},
		{Name: "Tomas Rivera", Age: 41, Class: &classB, Subjects: []string{"Biology"}, Attendance: &most},
		{Name: "June Okafor", Age: 28, Class: &classA, Subjects: []string{"Chemistry", "Maths"}},
	}
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
