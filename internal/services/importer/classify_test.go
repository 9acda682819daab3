package importer

import (
	"testing"
	"time"
)

func TestExtractProviderName(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"Servis__SDP_Mondo_media_20240115.xls", "MONDO"},
		{"20240115_Servis__SDP_Mondo_media_20240115.xls", "MONDO"},
		{"Servis__SDP__NTH Media_standard_20240131.xls", "NTH"},
		{"Servis__MicropaymentMerchantReport_Fortumo_Apps_123__45_67", "FORTUMO"},
		{"Servis__MicropaymentMerchantReport_Centili_Standard_1__2_3", "CENTILI"},
		{"Servis__MicropaymentMerchantReport_Infobip_Media_9__8_7", "INFOBIP"},
	}
	for _, c := range cases {
		if got := ExtractProviderName(c.filename); got != c.want {
			t.Errorf("ExtractProviderName(%q) = %q, want %q", c.filename, got, c.want)
		}
	}
}

func TestExtractProviderName_fallback(t *testing.T) {
	got := ExtractProviderName("random-report.xls")
	if got == "" {
		t.Fatalf("expected fallback provider, got empty")
	}
	if got := ExtractProviderName("!!"); got != "UNK" {
		t.Errorf("expected UNK for unmatchable filename, got %q", got)
	}
}

func TestNormalizeProviderName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  mondo  media ", "MONDO MEDIA"},
		{"NTHMEDIA", "NTH"},
		{"NTH Savetovanje", "NTH"},
		{"something-NTH-else", "NTH"},
		{"Cen.tili!", "CENTILI"},
	}
	for _, c := range cases {
		if got := NormalizeProviderName(c.in); got != c.want {
			t.Errorf("NormalizeProviderName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeProviderName_idempotent(t *testing.T) {
	for _, in := range []string{"  mondo media ", "NTHMEDIA", "Centili d.o.o."} {
		once := NormalizeProviderName(in)
		twice := NormalizeProviderName(once)
		if once != twice {
			t.Errorf("normalization not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestDetectContractType(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"Servis__SDP_Mondo_media_20240115.xls", "MEDIA"},
		{"Servis__SDP_Fortumo_standard_20240115.xls", "STANDARD"},
		{"report_Apps_123.xls", "APPS"},
		{"report_Commerce_123.xls", "COMMERCE"},
		{"x_y_z.xls", "GENERAL"},
	}
	for _, c := range cases {
		if got := DetectContractType(c.filename); got != c.want {
			t.Errorf("DetectContractType(%q) = %q, want %q", c.filename, got, c.want)
		}
	}
}

func TestExtractContractDetails(t *testing.T) {
	d, err := ExtractContractDetails("Servis__SDP_Mondo_media_20240115.xls")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Type != "MEDIA" || d.Name != "Mondo_MEDIA" {
		t.Fatalf("got %+v", d)
	}

	d, err = ExtractContractDetails("Report_Apps_2024.xls")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Type != "APPS" || d.Name != "APPS" {
		t.Fatalf("got %+v", d)
	}

	if _, err := ExtractContractDetails("short"); err == nil {
		t.Fatalf("expected error for unrecognized filename")
	}
}

func TestContractNumber(t *testing.T) {
	now := time.UnixMilli(1704067200123)
	got := ContractNumber("VAS", "MEDIA", now)
	if got != "VAS-MEDIA-200123" {
		t.Fatalf("got %q", got)
	}
	got = ContractNumber("PARKING", "", now)
	if got != "PARKING-200123" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractYear(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		filename string
		want     string
	}{
		{"Servis__SDP_Mondo_media_20240115.xls", "2024"},
		{"report_1999.xls", "2024"},
		{"report_2030.xls", "2024"},
		{"report_2025.xls", "2025"},
		{"no-year.xls", "2024"},
	}
	for _, c := range cases {
		if got := ExtractYear(c.filename, now); got != c.want {
			t.Errorf("ExtractYear(%q) = %q, want %q", c.filename, got, c.want)
		}
	}
}

func TestExtractParkingProvider(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"Servis__MicropaymentMerchantReport_SDP_mParking_Subotica_1_2__x", "Subotica"},
		{"SDP_mParking_Zrenjanin__report", "Zrenjanin"},
		{"Parking_Beograd_20240115.xls", "Beograd"},
		{"Nis_mParking_report.xls", "Nis"},
		{"Kragujevac_Parking_jan.xls", "Kragujevac"},
	}
	for _, c := range cases {
		if got := ExtractParkingProvider(c.filename); got != c.want {
			t.Errorf("ExtractParkingProvider(%q) = %q, want %q", c.filename, got, c.want)
		}
	}
}

func TestExtractParkingProvider_fallback(t *testing.T) {
	if got := ExtractParkingProvider("subotica_report.xls"); got != "Subotica" {
		t.Errorf("expected first-segment fallback, got %q", got)
	}
}

func TestNormalizeParkingName(t *testing.T) {
	if got := NormalizeParkingName("SDP mParking Subotica"); got != "Subotica" {
		t.Errorf("got %q", got)
	}
	if got := NormalizeParkingName("Subotica"); got != "Subotica" {
		t.Errorf("got %q", got)
	}
}
