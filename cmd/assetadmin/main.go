// assetadmin is the operator-side companion binary: it provisions
// clients, mints user tokens, rotates the secrets file and reports
// partition disk usage without going through the HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"asset-manager-api/config"
	"asset-manager-api/internal/application/services"
	"asset-manager-api/internal/infrastructure/db/postgres"
	clientDB "asset-manager-api/internal/infrastructure/db/postgres/client"
	userDB "asset-manager-api/internal/infrastructure/db/postgres/user"
	"asset-manager-api/internal/infrastructure/secrets"
	"asset-manager-api/internal/infrastructure/sqlbuilder"
	"asset-manager-api/internal/infrastructure/storage"
	"asset-manager-api/internal/infrastructure/token"
)

const usage = `usage: assetadmin <command> [flags]

commands:
  create-client  -name <client name>        register a client, print its token
  regen-token    -id <client id>            re-issue an existing client's token
  token          -id <user id>              print a fresh access token for a user
  xgen           [-dir <directory>]         generate a new secrets file
  du             -path <folder>             print folder size in bytes
`

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "create-client":
		err = runCreateClient(os.Args[2:])
	case "regen-token":
		err = runRegenToken(os.Args[2:])
	case "token":
		err = runToken(os.Args[2:])
	case "xgen":
		err = runXGen(os.Args[2:])
	case "du":
		err = runDU(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("assetadmin: %v", err)
	}
}

// env is shared wiring for the db-backed commands.
type env struct {
	cfg     config.Config
	secrets *secrets.Secrets
	backend sqlbuilder.Backend
	db      postgres.DB
	close   func()
}

func setup(ctx context.Context) (*env, error) {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	path := cfg.Storage.SecretsPath
	if path == "" {
		dir, err := secrets.InstallDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, secrets.Filename)
	}
	sec, err := secrets.Load(path)
	if err != nil {
		return nil, err
	}

	backend, err := sqlbuilder.ParseBackend(cfg.DB.Backend)
	if err != nil {
		return nil, err
	}

	dsn, err := cfg.DBDSN()
	if err != nil {
		return nil, err
	}
	pool, err := postgres.New(ctx, zap.NewNop(), dsn)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:     cfg,
		secrets: sec,
		backend: backend,
		db:      pool,
		close:   pool.Close,
	}, nil
}

func runCreateClient(args []string) error {
	fs := flag.NewFlagSet("create-client", flag.ExitOnError)
	name := fs.String("name", "", "client name")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("-name is required")
	}

	ctx := context.Background()
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	repo, err := clientDB.NewRepository(e.db, e.backend)
	if err != nil {
		return err
	}
	cipher, err := token.NewClientCipher(e.secrets)
	if err != nil {
		return err
	}

	tok, err := services.NewClientService(repo, cipher).CreateClient(ctx, *name)
	if err != nil {
		return err
	}

	fmt.Println(tok)
	return nil
}

func runRegenToken(args []string) error {
	fs := flag.NewFlagSet("regen-token", flag.ExitOnError)
	id := fs.String("id", "", "client public identifier")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	ctx := context.Background()
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	repo, err := clientDB.NewRepository(e.db, e.backend)
	if err != nil {
		return err
	}
	cipher, err := token.NewClientCipher(e.secrets)
	if err != nil {
		return err
	}

	tok, err := services.NewClientService(repo, cipher).RegenerateToken(ctx, *id)
	if err != nil {
		return err
	}

	fmt.Println(tok)
	return nil
}

func runToken(args []string) error {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	id := fs.String("id", "", "user public identifier")
	_ = fs.Parse(args)

	pid, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("-id must be a valid UUID")
	}

	ctx := context.Background()
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	repo, err := userDB.NewRepository(e.db, e.backend)
	if err != nil {
		return err
	}
	u, err := repo.FetchUserByPID(ctx, pid)
	if err != nil {
		return err
	}

	session := token.NewSessionService(e.secrets.JWTSecret, e.cfg.App.Bearer)
	tok, err := session.Create(uint64(u.ID), e.cfg.App.AccessTTL, token.TypeAccess)
	if err != nil {
		return err
	}

	fmt.Println(tok)
	return nil
}

func runXGen(args []string) error {
	fs := flag.NewFlagSet("xgen", flag.ExitOnError)
	dir := fs.String("dir", "", "directory to write the secrets file into")
	_ = fs.Parse(args)

	target := *dir
	if target == "" {
		d, err := secrets.InstallDir()
		if err != nil {
			return err
		}
		target = d
	}

	path, err := secrets.Generate(target)
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}

func runDU(args []string) error {
	fs := flag.NewFlagSet("du", flag.ExitOnError)
	path := fs.String("path", "", "folder to measure")
	_ = fs.Parse(args)

	if *path == "" {
		return fmt.Errorf("-path is required")
	}

	size, err := storage.New("", zap.NewNop()).FolderSize(*path)
	if err != nil {
		return err
	}

	fmt.Println(size)
	return nil
}
