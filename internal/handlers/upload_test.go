package handlers

import "testing"

func TestUploadKind(t *testing.T) {
	cases := []struct {
		form     string
		filename string
		want     string
	}{
		{"", "Servis__SDP_Mondo_media_20240115.xls", "vas"},
		{"", "Parking_Beograd_20240115.xls", "parking"},
		{"", "SDP_mParking_Zrenjanin__report.xls", "parking"},
		{"vas", "Parking_Beograd_20240115.xls", "vas"},
		{"PARKING", "Servis__SDP_Mondo_media_20240115.xls", "parking"},
		{"  parking  ", "report.xls", "parking"},
	}
	for _, c := range cases {
		if got := uploadKind(c.form, c.filename); got != c.want {
			t.Errorf("uploadKind(%q, %q) = %q, want %q", c.form, c.filename, got, c.want)
		}
	}
}
