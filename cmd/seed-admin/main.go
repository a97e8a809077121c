package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"customer-onboarding.backend/internal/config"
	"customer-onboarding.backend/internal/domain/entities"
	domainerrors "customer-onboarding.backend/internal/domain/errors"
	domainrepo "customer-onboarding.backend/internal/domain/repositories"
	"customer-onboarding.backend/internal/infrastructure/repositories"
	"customer-onboarding.backend/pkg/crypto"
)

var openSeedDB = func(dsn string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
}

var openSeedSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type seedAdminRuntime interface {
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, user *entities.User) error
	UpdateUserRole(ctx context.Context, userID uuid.UUID, role entities.UserRole) error
}

type seedAdminDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (seedAdminRuntime, io.Closer, error)
	out     io.Writer
}

type seedAdminRuntimeImpl struct {
	userRepo domainrepo.UserRepository
}

func (r seedAdminRuntimeImpl) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.userRepo.GetByEmail(ctx, email)
}

func (r seedAdminRuntimeImpl) CreateUser(ctx context.Context, user *entities.User) error {
	return r.userRepo.Create(ctx, user)
}

func (r seedAdminRuntimeImpl) UpdateUserRole(ctx context.Context, userID uuid.UUID, role entities.UserRole) error {
	_, err := r.userRepo.UpdateRole(ctx, userID, role)
	return err
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultSeedAdminDeps() seedAdminDeps {
	return seedAdminDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (seedAdminRuntime, io.Closer, error) {
			db, err := openSeedDB(cfg.Database.URL())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			sqlDB, err := openSeedSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}
			return seedAdminRuntimeImpl{userRepo: repositories.NewUserRepository(db)}, sqlDB, nil
		},
		out: os.Stdout,
	}
}

func runSeedAdmin(args []string, deps seedAdminDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.prepare == nil {
		def := defaultSeedAdminDeps()
		deps.prepare = def.prepare
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("seed-admin", flag.ContinueOnError)
	emailFlag := fs.String("email", "", "admin email (required)")
	passwordFlag := fs.String("password", "", "admin password (required for new accounts)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *emailFlag == "" {
		return fmt.Errorf("--email is required")
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	runtime, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	existing, err := runtime.GetUserByEmail(ctx, *emailFlag)
	if err == nil {
		if existing.Role == entities.UserRoleAdmin {
			_, _ = fmt.Fprintf(deps.out, "user %s is already admin\n", *emailFlag)
			return nil
		}
		if err := runtime.UpdateUserRole(ctx, existing.ID, entities.UserRoleAdmin); err != nil {
			return fmt.Errorf("failed promoting user %s: %w", *emailFlag, err)
		}
		_, _ = fmt.Fprintf(deps.out, "promoted %s to admin\n", *emailFlag)
		return nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return fmt.Errorf("failed to look up user %s: %w", *emailFlag, err)
	}

	if *passwordFlag == "" {
		return fmt.Errorf("--password is required when creating a new admin")
	}

	hash, err := crypto.HashPassword(*passwordFlag)
	if err != nil {
		return fmt.Errorf("failed hashing password: %w", err)
	}

	user := &entities.User{
		ID:           uuid.New(),
		Email:        *emailFlag,
		PasswordHash: hash,
		Role:         entities.UserRoleAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := runtime.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed creating admin user: %w", err)
	}

	_, _ = fmt.Fprintf(deps.out, "created admin user %s (id=%s)\n", *emailFlag, user.ID)
	return nil
}

func main() {
	if err := runSeedAdmin(os.Args[1:], defaultSeedAdminDeps()); err != nil {
		log.Fatal(err)
	}
}
