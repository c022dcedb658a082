package main

import (
	"context"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"staffdir/internal/auth"
	"staffdir/internal/config"
	"staffdir/internal/employee"
	"staffdir/internal/graph"
	"staffdir/internal/server"
	"staffdir/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "staffdir: %v\n", err)
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

	if err := store.EnsureSchema(context.Background(), db); err != nil {
		return err
	}

	hasher := auth.NewBcryptHasher(cfg.GetBcryptCost())
	tokens := auth.NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetTokenExpiration(),
		cfg.GetIssuer(),
		jwt.ClaimStrings(cfg.GetAudience()),
		nil,
	)

	accounts := auth.NewAccountsRepository(db)
	provider := auth.NewAccountProvider(accounts, hasher)
	auther := auth.NewAuthenticator(provider, tokens)

	employees := employee.NewRepository(db)

	resolver := graph.NewResolver(auther, accounts, hasher, employees)
	exec := graph.NewExecutor(resolver, nil)

	srv := server.New(exec, tokens, nil)

	fmt.Printf("staffdir listening on :%s\n", cfg.Port)
	return srv.Listen(":" + cfg.Port)
}
