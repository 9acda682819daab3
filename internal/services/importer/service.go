package importer

import (
	"context"
	"fmt"
	"log"
	"path"
	"path/filepath"
	"time"

	mg "vas_import/internal/config/connections/mongo"
	"vas_import/internal/models"
	"vas_import/internal/ports"
	"vas_import/internal/repository/auditlog"
	"vas_import/internal/utils"
)

// Stores the pipeline persists through. Implemented by the pgx repositories;
// tests drop in fakes.
type ProviderStore interface {
	GetOrCreate(ctx context.Context, name string) (*models.Provider, bool, error)
}

type ParkingServiceStore interface {
	GetOrCreate(ctx context.Context, name, createdByID string) (*models.ParkingService, bool, error)
}

type ServiceStore interface {
	GetOrCreate(ctx context.Context, s models.Service) (*models.Service, bool, error)
}

type ContractStore interface {
	GetOrCreateForProvider(ctx context.Context, c models.Contract) (*models.Contract, bool, error)
	GetOrCreateForParkingService(ctx context.Context, c models.Contract) (*models.Contract, bool, error)
}

type ServiceContractStore interface {
	GetOrCreate(ctx context.Context, serviceID, contractID string) (*models.ServiceContract, bool, error)
}

type VasTransactionStore interface {
	Upsert(ctx context.Context, t models.VasTransaction) (bool, error)
}

type ParkingTransactionStore interface {
	Upsert(ctx context.Context, t models.ParkingTransaction) (bool, error)
}

type VasServiceStore interface {
	UpsertBatch(ctx context.Context, entries []models.VasServiceEntry) (int, int, error)
}

// Auditor appends audit entries best-effort.
type Auditor interface {
	Log(ctx context.Context, e auditlog.Entry)
}

type Service struct {
	Opener   ports.FileOpener
	Archiver ports.Archiver

	Providers        ProviderStore
	ParkingServices  ParkingServiceStore
	Services         ServiceStore
	Contracts        ContractStore
	ServiceContracts ServiceContractStore
	VasTx            VasTransactionStore
	ParkingTx        ParkingTransactionStore
	VasServices      VasServiceStore

	Audit Auditor

	InputDir    string
	ErrorDir    string
	ArchiveRoot string
	UserID      string

	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) userID(ctx context.Context) string {
	if v, ok := ctx.Value(ports.CtxUserID).(string); ok && v != "" {
		return v
	}
	return s.UserID
}

func (s *Service) audit(ctx context.Context, entityType, entityID, action, details, severity string) {
	if s.Audit == nil {
		return
	}
	s.Audit.Log(ctx, auditlog.Entry{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
		Severity:   severity,
		UserID:     s.userID(ctx),
	})
}

// FileResult summarizes one processed report file.
type FileResult struct {
	Filename   string `json:"filename"`
	Provider   string `json:"provider"`
	Records    int    `json:"records"`
	Inserted   int    `json:"inserted"`
	Updated    int    `json:"updated"`
	Errors     int    `json:"errors"`
	ArchivedTo string `json:"archived_to,omitempty"`
}

// ProcessVasFile runs the whole pipeline for one provider report: classify
// the filename, provision provider/contract/services, extract and merge the
// sheet records, upsert the reconciled facts and archive the file.
func (s *Service) ProcessVasFile(ctx context.Context, filePath string) (FileResult, error) {
	filename := path.Base(filePath)
	log.Printf("[IMP][VAS][START] file=%q", filename)
	s.audit(ctx, "System", "start", "PROCESS_START", "Started processing "+filename, auditlog.SeverityInfo)

	res, err := s.processVasFile(ctx, filePath, filename)
	if err != nil {
		log.Printf("[IMP][VAS][ERR] file=%q err=%v", filename, err)
		s.audit(ctx, "System", "error", "PROCESS_ERROR", fmt.Sprintf("Error processing %s: %v", filename, err), auditlog.SeverityError)
		return res, err
	}

	log.Printf("[IMP][VAS][DONE] file=%q records=%d inserted=%d updated=%d errors=%d",
		filename, res.Records, res.Inserted, res.Updated, res.Errors)
	return res, nil
}

func (s *Service) processVasFile(ctx context.Context, filePath, filename string) (FileResult, error) {
	res := FileResult{Filename: filename}

	rc, _, err := s.Opener.Open(ctx, filePath)
	if err != nil {
		return res, fmt.Errorf("open: %w", err)
	}
	sheets, err := readWorkbook(rc)
	rc.Close()
	if err != nil {
		return res, fmt.Errorf("read workbook: %w", err)
	}

	providerName := ExtractProviderName(filename)
	res.Provider = providerName

	provider, created, err := s.Providers.GetOrCreate(ctx, providerName)
	if err != nil {
		return res, fmt.Errorf("provider %q: %w", providerName, err)
	}
	if created {
		s.audit(ctx, "Provider", provider.ID, "CREATE", "Created provider "+providerName, auditlog.SeverityInfo)
	}

	details, err := ExtractContractDetails(filename)
	if err != nil {
		return res, err
	}
	contract, created, err := s.Contracts.GetOrCreateForProvider(ctx, models.Contract{
		Name:              details.Name,
		ContractNumber:    ContractNumber("VAS", details.Type, s.now()),
		Type:              models.ContractTypeProvider,
		Status:            models.ContractStatusActive,
		StartDate:         s.now(),
		EndDate:           s.now().AddDate(1, 0, 0),
		RevenuePercentage: 0,
		Description:       fmt.Sprintf("Auto-generated contract for %s services", details.Name),
		ProviderID:        provider.ID,
		CreatedByID:       s.userID(ctx),
	})
	if err != nil {
		return res, fmt.Errorf("contract %q: %w", details.Name, err)
	}
	if created {
		s.audit(ctx, "Contract", contract.ID, "CREATE", "Created contract "+contract.ContractNumber, auditlog.SeverityInfo)
	}
	log.Printf("[IMP][VAS] provider=%q contract=%q type=%s", providerName, contract.ContractNumber, details.Type)

	records := extractRecords(sheets)
	res.Records = len(records)

	serviceIDs, err := s.ensureVasServices(ctx, records, contract.ID)
	if err != nil {
		return res, err
	}

	merged := mergeRecords(records)
	log.Printf("[IMP][VAS] raw=%d merged=%d", len(records), len(merged))

	for i, rec := range merged {
		date, err := parseColumnDate(rec.Date)
		if err != nil {
			res.Errors++
			log.Printf("[IMP][VAS][ERR] record %d: %v", i+1, err)
			continue
		}

		createdTx, err := s.VasTx.Upsert(ctx, models.VasTransaction{
			ProviderID:  provider.ID,
			ServiceID:   serviceIDs[rec.ServiceName],
			Date:        date,
			Group:       rec.Group,
			ServiceName: rec.ServiceName,
			ServiceCode: rec.ServiceCode,
			Price:       rec.Price,
			Quantity:    rec.Quantity,
			Amount:      rec.Amount,
		})
		if err != nil {
			res.Errors++
			log.Printf("[IMP][VAS][ERR] record %d (%s %s): %v", i+1, rec.Date, rec.ServiceName, err)
			continue
		}
		if createdTx {
			res.Inserted++
		} else {
			res.Updated++
		}
	}

	res.ArchivedTo = s.archiveVas(ctx, filePath, filename, providerName)
	return res, nil
}

// ensureVasServices provisions a Service row and its contract link for every
// distinct service name in the file, returning name -> id.
func (s *Service) ensureVasServices(ctx context.Context, records []Record, contractID string) (map[string]string, error) {
	ids := make(map[string]string)
	for _, rec := range records {
		if _, ok := ids[rec.ServiceName]; ok {
			continue
		}

		svc, created, err := s.Services.GetOrCreate(ctx, models.Service{
			Name:        rec.ServiceName,
			Type:        models.ServiceTypeVAS,
			BillingType: models.BillingTypePrepaid,
			Description: "Auto-created VAS service: " + rec.ServiceName,
			IsActive:    true,
		})
		if err != nil {
			return nil, fmt.Errorf("service %q: %w", rec.ServiceName, err)
		}
		if created {
			log.Printf("[IMP][VAS] new service %q code=%q", rec.ServiceName, rec.ServiceCode)
			s.audit(ctx, "Service", svc.ID, "CREATE", "Created service "+rec.ServiceName, auditlog.SeverityInfo)
		}
		ids[rec.ServiceName] = svc.ID

		sc, scCreated, err := s.ServiceContracts.GetOrCreate(ctx, svc.ID, contractID)
		if err != nil {
			return nil, fmt.Errorf("service contract for %q: %w", rec.ServiceName, err)
		}
		if scCreated {
			s.audit(ctx, "ServiceContract", sc.ID, "CREATE", "Created service contract connection", auditlog.SeverityInfo)
		}
	}
	return ids, nil
}

// archiveVas moves a processed file into the provider archive tree. Archive
// failures are audited but do not fail the import; the data is already in.
func (s *Service) archiveVas(ctx context.Context, filePath, filename, providerName string) string {
	if s.Archiver == nil {
		return ""
	}
	year := ExtractYear(filename, s.now())
	targetDir := filepath.Join(s.ArchiveRoot, "providers", utils.SafeFolderName(providerName), "reports", year)

	moved, err := s.Archiver.Move(ctx, filePath, targetDir, filename)
	if err != nil {
		s.audit(ctx, "System", "file", "FILE_MOVE_ERROR", fmt.Sprintf("Failed to move %s: %v", filename, err), auditlog.SeverityError)
		return ""
	}
	s.audit(ctx, "System", "file", "FILE_MOVED", fmt.Sprintf("Moved %s to %s", filename, targetDir), auditlog.SeverityInfo)
	return moved
}

// MongoAuditor adapts the Mongo activity log to the Auditor port.
type MongoAuditor struct {
	M *mg.Mongo
}

func (a *MongoAuditor) Log(ctx context.Context, e auditlog.Entry) {
	auditlog.Log(ctx, a.M, e)
}
