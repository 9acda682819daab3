package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"vas_import/internal/config/connections/mongo"
	"vas_import/internal/config/connections/postgres"
	"vas_import/internal/config/connections/s3"

	"github.com/joho/godotenv"
)

// Import holds the pipeline-level settings: where uploaded spreadsheets are
// picked up, where failed files go, and the root under which processed files
// are archived per provider/year.
type Import struct {
	InputDir    string
	ErrorDir    string
	ArchiveRoot string
	UserID      string
}

type Config struct {
	Port     string
	S3       *s3.S3
	Mongo    *mongo.Mongo
	Postgres *postgres.Postgres
	Import   Import
}

func Init(ctx context.Context) *Config {
	_ = godotenv.Load()
	port := getenv("SERVER_PORT", "8070")

	s3c, err := s3.NewConnection(s3.ConnectionInfo{
		Endpoint:  getenv("AWS_ENDPOINT", "http://localhost:9000"),
		AccessKey: getenv("AWS_ACCESS_KEY_ID", "minioadmin"),
		SecretKey: getenv("AWS_SECRET_ACCESS_KEY", "minioadmin"),
		Region:    getenv("AWS_DEFAULT_REGION", "us-east-1"),
		Bucket:    getenv("AWS_BUCKET", "reports"),
		UseSSL:    getenv("AWS_USE_SSL", "false") == "true",
	})
	if err != nil {
		log.Fatal("S3 connect error:", err)
	}

	mg, err := mongo.NewConnection(ctx, mongo.ConnectionInfo{
		Scheme:     getenv("MONGO_SCHEME", "mongodb"),
		User:       getenv("MONGO_USER", "root"),
		Password:   getenv("MONGO_PASSWORD", "secret"),
		Host:       getenv("MONGO_HOST", "127.0.0.1"),
		Port:       getenv("MONGO_PORT", "27017"),
		DB:         getenv("MONGO_DB", "vas_audit"),
		AuthSource: getenv("MONGO_AUTH_SOURCE", "admin"),
	})
	if err != nil {
		log.Fatal("Mongo connect error:", err)
	}

	pg, err := postgres.NewConnection(ctx, postgres.ConnectionInfo{
		Host:     getenv("PG_HOST", "127.0.0.1"),
		Port:     getenv("PG_PORT", "5432"),
		User:     getenv("PG_USER", "root"),
		Password: getenv("PG_PASSWORD", "hello-world"),
		DB:       getenv("PG_DB", "vas_billing"),
		SSLMode:  getenv("PG_SSLMODE", "disable"),
	})
	if err != nil {
		log.Fatal("Postgres connect error:", err)
	}

	root := getenv("PROJECT_ROOT", ".")

	imp := Import{
		InputDir:    getenv("IMPORT_INPUT_DIR", filepath.Join(root, "scripts", "input")),
		ErrorDir:    getenv("IMPORT_ERROR_DIR", filepath.Join(root, "scripts", "errors")),
		ArchiveRoot: getenv("ARCHIVE_ROOT", filepath.Join(root, "public")),
		UserID:      getenv("IMPORT_USER_ID", "system-user"),
	}
	for _, dir := range []string{imp.InputDir, imp.ErrorDir, imp.ArchiveRoot} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("create pipeline dir %q: %v", dir, err)
		}
	}

	return &Config{
		S3:       s3c,
		Mongo:    mg,
		Postgres: pg,
		Port:     port,
		Import:   imp,
	}
}

// ConnectionErrors pings every backing connection and returns one message
// per failure. Both the startup check and /health report from it.
func (c *Config) ConnectionErrors(ctx context.Context) []string {
	var errs []string

	if c.Postgres == nil || c.Postgres.Pool == nil {
		errs = append(errs, "postgres not initialized")
	} else if err := c.Postgres.Pool.Ping(ctx); err != nil {
		errs = append(errs, "postgres ping failed: "+err.Error())
	}

	if c.Mongo == nil || c.Mongo.Client == nil {
		errs = append(errs, "mongo not initialized")
	} else if err := c.Mongo.Client.Ping(ctx, nil); err != nil {
		errs = append(errs, "mongo ping failed: "+err.Error())
	}

	if c.S3 == nil || c.S3.Client == nil {
		errs = append(errs, "s3 not initialized")
	} else if ok, err := c.S3.Client.BucketExists(ctx, c.S3.Bucket); err != nil {
		errs = append(errs, "s3 bucket check failed: "+err.Error())
	} else if !ok {
		errs = append(errs, fmt.Sprintf("s3 bucket %q not found", c.S3.Bucket))
	}

	return errs
}

func (c *Config) CheckConnections(ctx context.Context) error {
	errs := c.ConnectionErrors(ctx)
	if len(errs) == 0 {
		return nil
	}
	return errors.New(strings.Join(errs, "; "))
}

func (c *Config) Close(ctx context.Context) {
	if c.Postgres != nil {
		c.Postgres.Close()
	}
	if c.Mongo != nil {
		_ = c.Mongo.Close(ctx)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
