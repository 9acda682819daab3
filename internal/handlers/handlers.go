package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"vas_import/internal/adapters/archive"
	"vas_import/internal/adapters/opener"
	"vas_import/internal/config"
	"vas_import/internal/config/connections/mongo"
	"vas_import/internal/config/connections/s3"
	"vas_import/internal/repository"
	"vas_import/internal/repository/database"
	"vas_import/internal/services/importer"
)

type Handlers struct {
	Cfg   *config.Config
	Mongo *mongo.Mongo
	S3    *s3.S3
	HTTP  *http.Client

	Importer *importer.Service
	Tokens   *repository.PersonalAccessTokenRepository

	Logger *log.Logger
}

// New wires the full pipeline: compound opener (http/s3/local), pgx
// repositories, Mongo audit sink and the local archive mover.
func New(cfg *config.Config) *Handlers {
	httpClient := &http.Client{}

	compound := opener.NewCompoundOpener(
		opener.NewHTTPOpener(httpClient),
		opener.NewS3Opener(cfg.S3.Client),
		opener.NewLocalOpener(),
		cfg.S3.Bucket,
	)

	archiver := archive.NewCompoundArchiver(
		archive.NewS3Archiver(cfg.S3.Client, cfg.S3.Bucket),
		archive.NewLocalArchiver(),
	)

	svc := &importer.Service{
		Opener:           compound,
		Archiver:         archiver,
		Providers:        database.NewProviderRepo(cfg.Postgres),
		ParkingServices:  database.NewParkingServiceRepo(cfg.Postgres),
		Services:         database.NewServiceRepo(cfg.Postgres),
		Contracts:        database.NewContractRepo(cfg.Postgres),
		ServiceContracts: database.NewServiceContractRepo(cfg.Postgres),
		VasTx:            database.NewVasTransactionRepo(cfg.Postgres),
		ParkingTx:        database.NewParkingTransactionRepo(cfg.Postgres),
		VasServices:      database.NewVasServiceRepo(cfg.Postgres),
		Audit:            &importer.MongoAuditor{M: cfg.Mongo},
		InputDir:         cfg.Import.InputDir,
		ErrorDir:         cfg.Import.ErrorDir,
		ArchiveRoot:      cfg.Import.ArchiveRoot,
		UserID:           cfg.Import.UserID,
	}

	return &Handlers{
		Cfg:      cfg,
		Mongo:    cfg.Mongo,
		S3:       cfg.S3,
		HTTP:     httpClient,
		Importer: svc,
		Tokens:   repository.NewPersonalAccessTokenRepository(cfg.Postgres),
		Logger:   log.Default(),
	}
}

func (h *Handlers) JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
