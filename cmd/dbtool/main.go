// Command dbtool provides maintenance operations against the backing
// database: reset drops and recreates the schema, seed inserts demo users,
// check probes connectivity and the expected tables.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/config"
	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/persistence"
	"github.com/spec-kit/todo-service/internal/repository"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Postgres.DSN == "" {
		log.Fatal("POSTGRES_DSN required for dbtool")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	switch os.Args[1] {
	case "reset":
		err = reset(ctx, pg, logger)
	case "seed":
		err = seed(ctx, pg, cfg.Auth.BcryptCost, logger)
	case "check":
		err = check(ctx, pg, logger)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal("dbtool failed", zap.Error(err))
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: dbtool <reset|seed|check>")
}

func reset(ctx context.Context, pg *persistence.Postgres, logger *zap.Logger) error {
	pool := pg.PoolHandle()
	if _, err := pool.Exec(ctx, `DROP TABLE IF EXISTS todos, users CASCADE`); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	logger.Info("dropped existing tables")
	return persistence.RunMigrations(ctx, pool, logger)
}

func seed(ctx context.Context, pg *persistence.Postgres, bcryptCost int, logger *zap.Logger) error {
	users := repository.NewUserRepository(pg.PoolHandle())

	var count int
	if err := pg.PoolHandle().QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		logger.Info("users already exist; skipping seed", zap.Int("count", count))
		return nil
	}

	hash, err := auth.HashPassword("changeme", bcryptCost)
	if err != nil {
		return err
	}

	seedUsers := []domain.User{
		{Name: "Juan Pérez", Email: "juan@example.com", Color: "bg-blue-500"},
		{Name: "María García", Email: "maria@example.com", Color: "bg-green-500"},
		{Name: "Carlos López", Email: "carlos@example.com", Color: "bg-purple-500"},
		{Name: "Ana Martín", Email: "ana@example.com", Color: "bg-pink-500"},
	}
	for i := range seedUsers {
		seedUsers[i].PasswordHash = hash
		seedUsers[i].Active = true
		if err := users.Create(ctx, &seedUsers[i]); err != nil {
			return fmt.Errorf("seed user %s: %w", seedUsers[i].Email, err)
		}
		logger.Info("seeded user", zap.String("email", seedUsers[i].Email))
	}
	return nil
}

func check(ctx context.Context, pg *persistence.Postgres, logger *zap.Logger) error {
	if err := pg.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	logger.Info("database reachable")

	rows, err := pg.PoolHandle().Query(ctx,
		`SELECT table_name FROM information_schema.tables WHERE table_schema='public'`)
	if err != nil {
		return err
	}
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		found[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, table := range []string{"users", "todos"} {
		if found[table] {
			logger.Info("table present", zap.String("table", table))
		} else {
			logger.Warn("table missing; run dbtool reset", zap.String("table", table))
		}
	}
	return nil
}
