package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"vas_import/internal/models"
	"vas_import/internal/repository/auditlog"
)

// Postpaid figures never appear in the daily reports; the operator delivers
// them as a monthly semicolon-separated statement instead.

// PostpaidResult summarizes one statement import.
type PostpaidResult struct {
	TotalRows   int      `json:"total_rows"`
	Inserted    int      `json:"inserted"`
	Updated     int      `json:"updated"`
	InvalidRows int      `json:"invalid_rows"`
	RowErrors   []string `json:"row_errors,omitempty"`
}

// ImportPostpaidStatement parses a monthly postpaid CSV statement and
// upserts its rows keyed by (product, month, provider). Valid rows of one
// file are written in a single transaction; rows failing validation are
// reported but do not abort the file.
func (s *Service) ImportPostpaidStatement(ctx context.Context, r io.Reader) (PostpaidResult, error) {
	var res PostpaidResult

	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return res, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{"Proizvod", "Mesec_pruzanja_usluge", "Provajder"} {
		if _, ok := cols[required]; !ok {
			return res, fmt.Errorf("statement missing column %q", required)
		}
	}

	providerIDs := make(map[string]string)
	var entries []models.VasServiceEntry

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("[IMP][POSTPAID][WARN] read row: %v", err)
			res.InvalidRows++
			continue
		}
		res.TotalRows++

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		var rowErrors []string
		product := field("Proizvod")
		if product == "" {
			rowErrors = append(rowErrors, "missing Proizvod")
		}
		providerName := field("Provajder")
		if providerName == "" {
			rowErrors = append(rowErrors, "missing Provajder")
		}

		month, err := parseStatementMonth(field("Mesec_pruzanja_usluge"))
		if err != nil {
			rowErrors = append(rowErrors, err.Error())
		} else if month.Year() < 2000 || month.Year() > 2100 {
			rowErrors = append(rowErrors, fmt.Sprintf("unrealistic year in Mesec_pruzanja_usluge: %d", month.Year()))
		}

		if len(rowErrors) > 0 {
			res.InvalidRows++
			res.RowErrors = append(res.RowErrors, fmt.Sprintf("row %d: %s", res.TotalRows, strings.Join(rowErrors, "; ")))
			continue
		}

		providerID, ok := providerIDs[providerName]
		if !ok {
			provider, created, err := s.Providers.GetOrCreate(ctx, NormalizeProviderName(providerName))
			if err != nil {
				return res, fmt.Errorf("provider %q: %w", providerName, err)
			}
			if created {
				s.audit(ctx, "Provider", provider.ID, "CREATE", "Created provider "+provider.Name, auditlog.SeverityInfo)
			}
			providerID = provider.ID
			providerIDs[providerName] = providerID
		}

		svc, created, err := s.Services.GetOrCreate(ctx, models.Service{
			Name:        product,
			Type:        models.ServiceTypeVAS,
			BillingType: models.BillingTypePostpaid,
			Description: "Auto-created VAS service: " + product,
			IsActive:    true,
		})
		if err != nil {
			return res, fmt.Errorf("service %q: %w", product, err)
		}
		if created {
			s.audit(ctx, "Service", svc.ID, "CREATE", "Created service "+product, auditlog.SeverityInfo)
		}

		count, _ := strconv.ParseInt(field("Broj_transakcija"), 10, 64)
		entries = append(entries, models.VasServiceEntry{
			Product:              product,
			ServiceMonth:         month,
			UnitPrice:            statementFloat(field("Jedinicna_cena")),
			TransactionCount:     count,
			InvoicedAmount:       statementFloat(field("Fakturisan_iznos")),
			InvoicedCorrected:    statementFloat(field("Fakturisan_korigovan_iznos")),
			CollectedAmount:      statementFloat(field("Naplacen_iznos")),
			CollectedCumulative:  statementFloat(field("Kumulativ_naplacenih_iznosa")),
			UncollectedAmount:    statementFloat(field("Nenaplacen_iznos")),
			UncollectedCorrected: statementFloat(field("Nenaplacen_korigovan_iznos")),
			ReversedAmount:       statementFloat(field("Storniran_iznos_u_tekucem_mesecu_iz_perioda_pracenja")),
			CancelledAmount:      statementFloat(field("Otkazan_iznos")),
			CancelledCumulative:  statementFloat(field("Kumulativ_otkazanih_iznosa")),
			TransferAmount:       statementFloat(field("Iznos_za_prenos_sredstava_")),
			ServiceID:            svc.ID,
			ProviderID:           providerID,
		})
	}

	if len(entries) > 0 {
		inserted, updated, err := s.VasServices.UpsertBatch(ctx, entries)
		if err != nil {
			return res, fmt.Errorf("write statement rows: %w", err)
		}
		res.Inserted = inserted
		res.Updated = updated
	}

	log.Printf("[IMP][POSTPAID][DONE] rows=%d inserted=%d updated=%d invalid=%d",
		res.TotalRows, res.Inserted, res.Updated, res.InvalidRows)
	return res, nil
}

// statementFloat parses a statement number that may use a decimal comma.
func statementFloat(val string) float64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(val), ",", "."), 64)
	if err != nil {
		return 0
	}
	return f
}

var statementMonthLayouts = []string{
	"2006-01-02",
	"2006-01",
	"02.01.2006",
	"01.2006",
	"2006/01/02",
}

func parseStatementMonth(val string) (time.Time, error) {
	for _, layout := range statementMonthLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format for Mesec_pruzanja_usluge: %q", val)
}
