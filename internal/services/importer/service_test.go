package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vas_import/internal/adapters/archive"
	"vas_import/internal/models"
	"vas_import/internal/ports"
	"vas_import/internal/repository/auditlog"

	"github.com/minio/minio-go/v7"
	"github.com/xuri/excelize/v2"
)

// fakeStore backs every persistence port with in-memory maps so the whole
// pipeline can run without a database.
type fakeStore struct {
	providers        map[string]*models.Provider
	parkingServices  map[string]*models.ParkingService
	services         map[string]*models.Service
	contracts        map[string]*models.Contract
	serviceContracts map[string]*models.ServiceContract
	vasTx            map[string]*models.VasTransaction
	parkingTx        map[string]*models.ParkingTransaction
	vasEntries       map[string]*models.VasServiceEntry

	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		providers:        map[string]*models.Provider{},
		parkingServices:  map[string]*models.ParkingService{},
		services:         map[string]*models.Service{},
		contracts:        map[string]*models.Contract{},
		serviceContracts: map[string]*models.ServiceContract{},
		vasTx:            map[string]*models.VasTransaction{},
		parkingTx:        map[string]*models.ParkingTransaction{},
		vasEntries:       map[string]*models.VasServiceEntry{},
	}
}

func (f *fakeStore) id() string {
	f.nextID++
	return fmt.Sprintf("id-%d", f.nextID)
}

func (f *fakeStore) GetOrCreate(ctx context.Context, name string) (*models.Provider, bool, error) {
	if p, ok := f.providers[name]; ok {
		return p, false, nil
	}
	p := &models.Provider{ID: f.id(), Name: name, IsActive: true}
	f.providers[name] = p
	return p, true, nil
}

type fakeParkingStore struct{ f *fakeStore }

func (s fakeParkingStore) GetOrCreate(ctx context.Context, name, createdByID string) (*models.ParkingService, bool, error) {
	if p, ok := s.f.parkingServices[name]; ok {
		return p, false, nil
	}
	p := &models.ParkingService{ID: s.f.id(), Name: name, IsActive: true, CreatedByID: createdByID}
	s.f.parkingServices[name] = p
	return p, true, nil
}

type fakeServiceStore struct{ f *fakeStore }

func (s fakeServiceStore) GetOrCreate(ctx context.Context, in models.Service) (*models.Service, bool, error) {
	if svc, ok := s.f.services[in.Name]; ok {
		return svc, false, nil
	}
	svc := in
	svc.ID = s.f.id()
	s.f.services[in.Name] = &svc
	return &svc, true, nil
}

type fakeContractStore struct{ f *fakeStore }

func (s fakeContractStore) GetOrCreateForProvider(ctx context.Context, c models.Contract) (*models.Contract, bool, error) {
	key := "provider|" + c.ProviderID + "|" + c.Name
	if got, ok := s.f.contracts[key]; ok {
		return got, false, nil
	}
	c.ID = s.f.id()
	s.f.contracts[key] = &c
	return &c, true, nil
}

func (s fakeContractStore) GetOrCreateForParkingService(ctx context.Context, c models.Contract) (*models.Contract, bool, error) {
	key := "parking|" + c.ParkingServiceID
	if got, ok := s.f.contracts[key]; ok {
		return got, false, nil
	}
	c.ID = s.f.id()
	s.f.contracts[key] = &c
	return &c, true, nil
}

type fakeServiceContractStore struct{ f *fakeStore }

func (s fakeServiceContractStore) GetOrCreate(ctx context.Context, serviceID, contractID string) (*models.ServiceContract, bool, error) {
	key := serviceID + "|" + contractID
	if sc, ok := s.f.serviceContracts[key]; ok {
		return sc, false, nil
	}
	sc := &models.ServiceContract{ID: s.f.id(), ServiceID: serviceID, ContractID: contractID}
	s.f.serviceContracts[key] = sc
	return sc, true, nil
}

type fakeVasTxStore struct{ f *fakeStore }

func (s fakeVasTxStore) Upsert(ctx context.Context, t models.VasTransaction) (bool, error) {
	key := fmt.Sprintf("%s|%s|%s|%s", t.ProviderID, t.Date.Format("2006-01-02"), t.ServiceName, t.Group)
	if existing, ok := s.f.vasTx[key]; ok {
		existing.Price, existing.Quantity, existing.Amount = t.Price, t.Quantity, t.Amount
		return false, nil
	}
	t.ID = s.f.id()
	s.f.vasTx[key] = &t
	return true, nil
}

type fakeParkingTxStore struct{ f *fakeStore }

func (s fakeParkingTxStore) Upsert(ctx context.Context, t models.ParkingTransaction) (bool, error) {
	key := fmt.Sprintf("%s|%s|%s|%s", t.ParkingServiceID, t.Date.Format("2006-01-02"), t.ServiceName, t.Group)
	if existing, ok := s.f.parkingTx[key]; ok {
		existing.Price, existing.Quantity, existing.Amount = t.Price, t.Quantity, t.Amount
		return false, nil
	}
	t.ID = s.f.id()
	s.f.parkingTx[key] = &t
	return true, nil
}

type fakeVasServiceStore struct{ f *fakeStore }

func (s fakeVasServiceStore) UpsertBatch(ctx context.Context, entries []models.VasServiceEntry) (int, int, error) {
	inserted, updated := 0, 0
	for _, e := range entries {
		e := e
		key := fmt.Sprintf("%s|%s|%s", e.Product, e.ServiceMonth.Format("2006-01"), e.ProviderID)
		if _, ok := s.f.vasEntries[key]; ok {
			s.f.vasEntries[key] = &e
			updated++
		} else {
			s.f.vasEntries[key] = &e
			inserted++
		}
	}
	return inserted, updated, nil
}

type fakeOpener struct {
	files    map[string][]byte
	requests []string
}

func (o *fakeOpener) Open(ctx context.Context, filePath string) (io.ReadCloser, ports.Meta, error) {
	o.requests = append(o.requests, filePath)
	data, ok := o.files[filePath]
	if !ok {
		return nil, ports.Meta{}, fmt.Errorf("no such file: %s", filePath)
	}
	return io.NopCloser(bytes.NewReader(data)), ports.Meta{Source: "test", Size: int64(len(data))}, nil
}

type fakeArchiver struct {
	moves [][3]string
	fail  bool
}

func (a *fakeArchiver) Move(ctx context.Context, sourcePath, targetDir, filename string) (string, error) {
	if a.fail {
		return "", fmt.Errorf("move failed")
	}
	a.moves = append(a.moves, [3]string{sourcePath, targetDir, filename})
	return filepath.Join(targetDir, filename), nil
}

// fakeObjectStore records object moves so the archiver can run bucket-side.
type fakeObjectStore struct {
	copies  [][2]string
	removed []string
}

func (f *fakeObjectStore) CopyObject(_ context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error) {
	f.copies = append(f.copies, [2]string{src.Object, dst.Object})
	return minio.UploadInfo{Bucket: dst.Bucket, Key: dst.Object}, nil
}

func (f *fakeObjectStore) RemoveObject(_ context.Context, _, objectName string, _ minio.RemoveObjectOptions) error {
	f.removed = append(f.removed, objectName)
	return nil
}

type fakeAuditor struct {
	entries []auditlog.Entry
}

func (a *fakeAuditor) Log(ctx context.Context, e auditlog.Entry) {
	a.entries = append(a.entries, e)
}

func (a *fakeAuditor) actions() []string {
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Action)
	}
	return out
}

func reportWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Cover")
	for _, name := range []string{"Totals", "Graph", "Transactions"} {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
	}
	cells := map[string]string{
		"A1": "Service", "B1": "Price", "C1": "Code", "D1": "15.01.2024.", "E1": "16.01.2024.",
		"A2": "Prepaid",
		"A3": "Vesti 1234", "B3": "50", "D3": "10", "E3": "2",
		"D4": "500", "E4": "100",
		"A5": "Kviz 5678", "B5": "100", "D5": "3",
		"D6": "300",
	}
	for ref, val := range cells {
		if err := f.SetCellValue("Transactions", ref, val); err != nil {
			t.Fatalf("set cell: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func newTestService(store *fakeStore, opener ports.FileOpener, archiver ports.Archiver, audit *fakeAuditor) *Service {
	return &Service{
		Opener:           opener,
		Archiver:         archiver,
		Providers:        store,
		ParkingServices:  fakeParkingStore{store},
		Services:         fakeServiceStore{store},
		Contracts:        fakeContractStore{store},
		ServiceContracts: fakeServiceContractStore{store},
		VasTx:            fakeVasTxStore{store},
		ParkingTx:        fakeParkingTxStore{store},
		VasServices:      fakeVasServiceStore{store},
		Audit:            audit,
		ArchiveRoot:      "public",
		UserID:           "system-user",
		Now:              func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestProcessVasFile_endToEnd(t *testing.T) {
	const filename = "Servis__SDP_Mondo_media_20240115.xls"
	store := newFakeStore()
	opener := &fakeOpener{files: map[string][]byte{filename: reportWorkbook(t)}}
	archiver := &fakeArchiver{}
	audit := &fakeAuditor{}
	svc := newTestService(store, opener, archiver, audit)

	res, err := svc.ProcessVasFile(context.Background(), filename)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if res.Provider != "MONDO" {
		t.Fatalf("expected provider MONDO, got %q", res.Provider)
	}
	if _, ok := store.providers["MONDO"]; !ok {
		t.Fatalf("provider not created: %v", store.providers)
	}

	// Vesti on two dates plus Kviz on one
	if res.Records != 3 || res.Inserted != 3 || res.Updated != 0 || res.Errors != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(store.vasTx) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(store.vasTx))
	}

	contract := store.contracts["provider|"+store.providers["MONDO"].ID+"|Mondo_MEDIA"]
	if contract == nil {
		t.Fatalf("contract not created under derived name: %v", store.contracts)
	}
	if contract.Type != models.ContractTypeProvider || contract.Status != models.ContractStatusActive {
		t.Fatalf("unexpected contract: %+v", contract)
	}
	if !strings.HasPrefix(contract.ContractNumber, "VAS-MEDIA-") {
		t.Fatalf("unexpected contract number %q", contract.ContractNumber)
	}

	vesti := store.services["Vesti 1234"]
	if vesti == nil || vesti.Type != models.ServiceTypeVAS || vesti.BillingType != models.BillingTypePrepaid {
		t.Fatalf("unexpected service: %+v", vesti)
	}
	if len(store.serviceContracts) != 2 {
		t.Fatalf("expected 2 service contract links, got %d", len(store.serviceContracts))
	}

	if len(archiver.moves) != 1 {
		t.Fatalf("expected 1 archive move, got %d", len(archiver.moves))
	}
	wantDir := filepath.Join("public", "providers", "MONDO", "reports", "2024")
	if archiver.moves[0][1] != wantDir {
		t.Fatalf("expected archive dir %q, got %q", wantDir, archiver.moves[0][1])
	}

	actions := strings.Join(audit.actions(), ",")
	for _, want := range []string{"PROCESS_START", "CREATE", "FILE_MOVED"} {
		if !strings.Contains(actions, want) {
			t.Errorf("missing audit action %s in %s", want, actions)
		}
	}
}

func TestProcessVasFile_archivesUploadedObject(t *testing.T) {
	const filePath = "s3://reports/uploads/1-Servis__SDP_Mondo_media_20240115.xls"
	store := newFakeStore()
	opener := &fakeOpener{files: map[string][]byte{filePath: reportWorkbook(t)}}
	obj := &fakeObjectStore{}
	archiver := archive.NewCompoundArchiver(archive.NewS3Archiver(obj, "reports"), archive.NewLocalArchiver())
	audit := &fakeAuditor{}
	svc := newTestService(store, opener, archiver, audit)

	res, err := svc.ProcessVasFile(context.Background(), filePath)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	want := "s3://reports/public/providers/MONDO/reports/2024/1-Servis__SDP_Mondo_media_20240115.xls"
	if res.ArchivedTo != want {
		t.Fatalf("archived to %q, want %q", res.ArchivedTo, want)
	}
	if len(obj.copies) != 1 || obj.copies[0][0] != "uploads/1-Servis__SDP_Mondo_media_20240115.xls" {
		t.Fatalf("copies = %v", obj.copies)
	}
	if len(obj.removed) != 1 {
		t.Fatalf("source not removed: %v", obj.removed)
	}

	for _, action := range audit.actions() {
		if action == "FILE_MOVE_ERROR" {
			t.Fatalf("archive of an uploaded object was audited as a failure: %v", audit.actions())
		}
	}
	moved := false
	for _, action := range audit.actions() {
		if action == "FILE_MOVED" {
			moved = true
		}
	}
	if !moved {
		t.Fatalf("no FILE_MOVED entry: %v", audit.actions())
	}
}

func TestProcessVasFile_reimportIsIdempotent(t *testing.T) {
	const filename = "Servis__SDP_Mondo_media_20240115.xls"
	store := newFakeStore()
	opener := &fakeOpener{files: map[string][]byte{filename: reportWorkbook(t)}}
	svc := newTestService(store, opener, &fakeArchiver{}, &fakeAuditor{})

	if _, err := svc.ProcessVasFile(context.Background(), filename); err != nil {
		t.Fatalf("first run: %v", err)
	}
	res, err := svc.ProcessVasFile(context.Background(), filename)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if res.Inserted != 0 || res.Updated != 3 {
		t.Fatalf("expected re-import to update in place, got %+v", res)
	}
	if len(store.providers) != 1 || len(store.services) != 2 || len(store.vasTx) != 3 {
		t.Fatalf("re-import duplicated entities: providers=%d services=%d tx=%d",
			len(store.providers), len(store.services), len(store.vasTx))
	}
}

func TestProcessVasFile_openFailure(t *testing.T) {
	store := newFakeStore()
	opener := &fakeOpener{files: map[string][]byte{}}
	audit := &fakeAuditor{}
	svc := newTestService(store, opener, &fakeArchiver{}, audit)

	if _, err := svc.ProcessVasFile(context.Background(), "missing.xls"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !strings.Contains(strings.Join(audit.actions(), ","), "PROCESS_ERROR") {
		t.Fatalf("expected PROCESS_ERROR audit entry")
	}
}

func TestProcessVasFile_archiveFailureDoesNotFailImport(t *testing.T) {
	const filename = "Servis__SDP_Mondo_media_20240115.xls"
	store := newFakeStore()
	opener := &fakeOpener{files: map[string][]byte{filename: reportWorkbook(t)}}
	audit := &fakeAuditor{}
	svc := newTestService(store, opener, &fakeArchiver{fail: true}, audit)

	res, err := svc.ProcessVasFile(context.Background(), filename)
	if err != nil {
		t.Fatalf("archive failure must not fail the import: %v", err)
	}
	if res.ArchivedTo != "" {
		t.Fatalf("expected empty archive path, got %q", res.ArchivedTo)
	}
	if !strings.Contains(strings.Join(audit.actions(), ","), "FILE_MOVE_ERROR") {
		t.Fatalf("expected FILE_MOVE_ERROR audit entry")
	}
}

func TestProcessParkingFile_endToEnd(t *testing.T) {
	const filename = "Parking_Beograd_20240115.xls"
	store := newFakeStore()
	opener := &fakeOpener{files: map[string][]byte{filename: reportWorkbook(t)}}
	archiver := &fakeArchiver{}
	svc := newTestService(store, opener, archiver, &fakeAuditor{})

	res, err := svc.ProcessParkingFile(context.Background(), filename)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Provider != "Beograd" {
		t.Fatalf("expected operator Beograd, got %q", res.Provider)
	}
	if res.Inserted != 3 {
		t.Fatalf("expected 3 inserted, got %+v", res)
	}

	parking := store.parkingServices["Beograd"]
	if parking == nil || parking.CreatedByID != "system-user" {
		t.Fatalf("unexpected parking service: %+v", parking)
	}

	contract := store.contracts["parking|"+parking.ID]
	if contract == nil || contract.Type != models.ContractTypeParking {
		t.Fatalf("unexpected contract: %+v", contract)
	}
	if contract.RevenuePercentage != 10.0 {
		t.Fatalf("expected 10%% revenue share, got %v", contract.RevenuePercentage)
	}
	if !strings.HasPrefix(contract.ContractNumber, "PARKING-") {
		t.Fatalf("unexpected contract number %q", contract.ContractNumber)
	}

	svc2 := store.services["Vesti 1234"]
	if svc2 == nil || svc2.Type != models.ServiceTypeParking {
		t.Fatalf("unexpected service: %+v", svc2)
	}

	wantDir := filepath.Join("public", "parking-servis", "Beograd", "reports", "2024")
	if archiver.moves[0][1] != wantDir {
		t.Fatalf("expected archive dir %q, got %q", wantDir, archiver.moves[0][1])
	}
}

func TestRunBatch_continuesPastFailures(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "Servis__SDP_Mondo_media_20240115.xls")
	if err := os.WriteFile(good, reportWorkbook(t), 0o644); err != nil {
		t.Fatalf("write good file: %v", err)
	}
	bad := filepath.Join(dir, "Servis__SDP_Other_media_20240116.xls")
	if err := os.WriteFile(bad, []byte("not a workbook"), 0o644); err != nil {
		t.Fatalf("write bad file: %v", err)
	}

	store := newFakeStore()
	opener := &fakeOpener{files: map[string][]byte{}}
	// batch reads from disk
	data, err := os.ReadFile(good)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	opener.files[good] = data
	opener.files[bad] = []byte("not a workbook")

	archiver := &fakeArchiver{}
	svc := newTestService(store, opener, archiver, &fakeAuditor{})
	svc.InputDir = dir
	svc.ErrorDir = filepath.Join(dir, "errors")

	res, err := svc.RunBatch(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Scanned != 2 || res.Processed != 1 || res.Failed != 1 {
		t.Fatalf("unexpected batch result: %+v", res)
	}

	// failed file moved to the error folder
	foundErrorMove := false
	for _, m := range archiver.moves {
		if m[0] == bad && m[1] == svc.ErrorDir {
			foundErrorMove = true
		}
	}
	if !foundErrorMove {
		t.Fatalf("failed file not moved to error folder: %v", archiver.moves)
	}
}

func TestRunBatch_resolvesRelativeInputDir(t *testing.T) {
	origWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origWD); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
	if err := os.MkdirAll("in", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	name := filepath.Join("in", "Servis__SDP_Mondo_media_20240115.xls")
	if err := os.WriteFile(name, reportWorkbook(t), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		t.Fatalf("abs: %v", err)
	}

	store := newFakeStore()
	opener := &fakeOpener{files: map[string][]byte{abs: reportWorkbook(t)}}
	svc := newTestService(store, opener, &fakeArchiver{}, &fakeAuditor{})
	svc.InputDir = "in"

	res, err := svc.RunBatch(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Processed != 1 {
		t.Fatalf("unexpected batch result: %+v", res)
	}
	// a relative path would route to object storage in the compound opener
	for _, req := range opener.requests {
		if !filepath.IsAbs(req) {
			t.Fatalf("opener got relative path %q", req)
		}
	}
}

func TestRunBatch_dispatchesParkingByFilename(t *testing.T) {
	dir := t.TempDir()
	parking := filepath.Join(dir, "Parking_Beograd_20240115.xls")
	if err := os.WriteFile(parking, reportWorkbook(t), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	store := newFakeStore()
	opener := &fakeOpener{files: map[string][]byte{parking: reportWorkbook(t)}}
	svc := newTestService(store, opener, &fakeArchiver{}, &fakeAuditor{})
	svc.InputDir = dir

	if _, err := svc.RunBatch(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(store.parkingServices) != 1 {
		t.Fatalf("parking file not routed to parking pipeline")
	}
	if len(store.providers) != 0 {
		t.Fatalf("parking file must not create a VAS provider")
	}
}

func TestImportPostpaidStatement(t *testing.T) {
	csvData := strings.Join([]string{
		"Proizvod;Mesec_pruzanja_usluge;Jedinicna_cena;Broj_transakcija;Fakturisan_iznos;Fakturisan_korigovan_iznos;Naplacen_iznos;Kumulativ_naplacenih_iznosa;Nenaplacen_iznos;Nenaplacen_korigovan_iznos;Storniran_iznos_u_tekucem_mesecu_iz_perioda_pracenja;Otkazan_iznos;Kumulativ_otkazanih_iznosa;Iznos_za_prenos_sredstava_;Provajder",
		"Vesti Premium;2024-01-01;10,50;100;1050,00;1050,00;900,00;900,00;150,00;150,00;0;0;0;850,00;Mondo",
		"Kviz Plus;2024-01-01;5,00;40;200,00;200,00;200,00;200,00;0;0;0;0;0;180,00;Mondo",
		";2024-01-01;1;1;1;1;1;1;1;1;1;1;1;1;Mondo",
	}, "\n")

	store := newFakeStore()
	svc := newTestService(store, &fakeOpener{}, &fakeArchiver{}, &fakeAuditor{})

	res, err := svc.ImportPostpaidStatement(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.TotalRows != 3 || res.Inserted != 2 || res.InvalidRows != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}

	if _, ok := store.providers["MONDO"]; !ok {
		t.Fatalf("provider not provisioned from statement: %v", store.providers)
	}
	vesti := store.services["Vesti Premium"]
	if vesti == nil || vesti.BillingType != models.BillingTypePostpaid {
		t.Fatalf("statement services must be postpaid: %+v", vesti)
	}

	entry := store.vasEntries["Vesti Premium|2024-01|"+store.providers["MONDO"].ID]
	if entry == nil {
		t.Fatalf("entry not stored: %v", store.vasEntries)
	}
	if entry.UnitPrice != 10.5 || entry.TransactionCount != 100 || entry.TransferAmount != 850 {
		t.Fatalf("decimal comma parsing broken: %+v", entry)
	}
}

func TestImportPostpaidStatement_missingColumn(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeOpener{}, &fakeArchiver{}, &fakeAuditor{})

	_, err := svc.ImportPostpaidStatement(context.Background(), strings.NewReader("Proizvod;Provajder\nX;Y"))
	if err == nil {
		t.Fatalf("expected error for missing month column")
	}
}

func TestImportPostpaidStatement_reimportUpdates(t *testing.T) {
	csvData := "Proizvod;Mesec_pruzanja_usluge;Provajder\nVesti;2024-01-01;Mondo"
	store := newFakeStore()
	svc := newTestService(store, &fakeOpener{}, &fakeArchiver{}, &fakeAuditor{})

	if _, err := svc.ImportPostpaidStatement(context.Background(), strings.NewReader(csvData)); err != nil {
		t.Fatalf("first import: %v", err)
	}
	res, err := svc.ImportPostpaidStatement(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if res.Inserted != 0 || res.Updated != 1 {
		t.Fatalf("expected update on re-import, got %+v", res)
	}
}
