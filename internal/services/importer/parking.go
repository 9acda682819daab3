package importer

import (
	"context"
	"fmt"
	"log"
	"path"
	"path/filepath"

	"vas_import/internal/models"
	"vas_import/internal/repository/auditlog"
	"vas_import/internal/utils"
)

// ProcessParkingFile runs the pipeline for a city-operator parking report.
// Same shape as the VAS flow, but counterparties are parking services and
// one auto-generated contract per operator covers all its services.
func (s *Service) ProcessParkingFile(ctx context.Context, filePath string) (FileResult, error) {
	filename := path.Base(filePath)
	log.Printf("[IMP][PARKING][START] file=%q", filename)
	s.audit(ctx, "System", "start", "PROCESS_START", "Started processing "+filename, auditlog.SeverityInfo)

	res, err := s.processParkingFile(ctx, filePath, filename)
	if err != nil {
		log.Printf("[IMP][PARKING][ERR] file=%q err=%v", filename, err)
		s.audit(ctx, "System", "error", "PROCESS_ERROR", fmt.Sprintf("Error processing %s: %v", filename, err), auditlog.SeverityError)
		return res, err
	}

	log.Printf("[IMP][PARKING][DONE] file=%q records=%d inserted=%d updated=%d errors=%d",
		filename, res.Records, res.Inserted, res.Updated, res.Errors)
	return res, nil
}

func (s *Service) processParkingFile(ctx context.Context, filePath, filename string) (FileResult, error) {
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

	operatorName := NormalizeParkingName(ExtractParkingProvider(filename))
	res.Provider = operatorName

	parking, created, err := s.ParkingServices.GetOrCreate(ctx, operatorName, s.userID(ctx))
	if err != nil {
		return res, fmt.Errorf("parking service %q: %w", operatorName, err)
	}
	if created {
		s.audit(ctx, "ParkingService", parking.ID, "CREATE", "Created parking service "+operatorName, auditlog.SeverityInfo)
	}

	contract, created, err := s.Contracts.GetOrCreateForParkingService(ctx, models.Contract{
		Name:              "Auto-generated parking contract",
		ContractNumber:    ContractNumber("PARKING", "", s.now()),
		Type:              models.ContractTypeParking,
		Status:            models.ContractStatusActive,
		StartDate:         s.now(),
		EndDate:           s.now().AddDate(1, 0, 0),
		RevenuePercentage: 10.0,
		ParkingServiceID:  parking.ID,
		CreatedByID:       s.userID(ctx),
	})
	if err != nil {
		return res, fmt.Errorf("parking contract: %w", err)
	}
	if created {
		s.audit(ctx, "Contract", contract.ID, "CREATE", "Created contract "+contract.ContractNumber, auditlog.SeverityInfo)
	}
	log.Printf("[IMP][PARKING] operator=%q contract=%q", operatorName, contract.ContractNumber)

	records := extractRecords(sheets)
	res.Records = len(records)

	serviceIDs, err := s.ensureParkingServices(ctx, records, contract.ID)
	if err != nil {
		return res, err
	}

	merged := mergeRecords(records)
	log.Printf("[IMP][PARKING] raw=%d merged=%d", len(records), len(merged))

	for i, rec := range merged {
		date, err := parseColumnDate(rec.Date)
		if err != nil {
			res.Errors++
			log.Printf("[IMP][PARKING][ERR] record %d: %v", i+1, err)
			continue
		}

		createdTx, err := s.ParkingTx.Upsert(ctx, models.ParkingTransaction{
			ParkingServiceID: parking.ID,
			ServiceID:        serviceIDs[rec.ServiceName],
			Date:             date,
			Group:            rec.Group,
			ServiceName:      rec.ServiceName,
			Price:            rec.Price,
			Quantity:         rec.Quantity,
			Amount:           rec.Amount,
		})
		if err != nil {
			res.Errors++
			log.Printf("[IMP][PARKING][ERR] record %d (%s %s): %v", i+1, rec.Date, rec.ServiceName, err)
			continue
		}
		if createdTx {
			res.Inserted++
		} else {
			res.Updated++
		}
	}

	res.ArchivedTo = s.archiveParking(ctx, filePath, filename, operatorName)
	return res, nil
}

func (s *Service) ensureParkingServices(ctx context.Context, records []Record, contractID string) (map[string]string, error) {
	ids := make(map[string]string)
	for _, rec := range records {
		if _, ok := ids[rec.ServiceName]; ok {
			continue
		}

		svc, created, err := s.Services.GetOrCreate(ctx, models.Service{
			Name:        rec.ServiceName,
			Type:        models.ServiceTypeParking,
			BillingType: models.BillingTypePrepaid,
			Description: "Auto-created parking service: " + rec.ServiceName,
			IsActive:    true,
		})
		if err != nil {
			return nil, fmt.Errorf("service %q: %w", rec.ServiceName, err)
		}
		if created {
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

func (s *Service) archiveParking(ctx context.Context, filePath, filename, operatorName string) string {
	if s.Archiver == nil {
		return ""
	}
	year := ExtractYear(filename, s.now())
	targetDir := filepath.Join(s.ArchiveRoot, "parking-servis", utils.SafeFolderName(operatorName), "reports", year)

	moved, err := s.Archiver.Move(ctx, filePath, targetDir, filename)
	if err != nil {
		s.audit(ctx, "System", "file", "FILE_MOVE_ERROR", fmt.Sprintf("Failed to move %s: %v", filename, err), auditlog.SeverityError)
		return ""
	}
	s.audit(ctx, "System", "file", "FILE_MOVED", fmt.Sprintf("Moved %s to %s", filename, targetDir), auditlog.SeverityInfo)
	return moved
}
