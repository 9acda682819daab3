package importer

import (
	"testing"
	"time"
)

func TestToFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1,234.56", 1234.56},
		{" 15 ", 15},
		{"-3.5", -3.5},
		{"", 0},
		{"n/a", 0},
	}
	for _, c := range cases {
		if got := toFloat(c.in); got != c.want {
			t.Errorf("toFloat(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestExtractServiceCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Vesti 1234 dnevno", "1234"},
		{"Servis 12345", ""},
		{"Kviz 12 i 3456", "3456"},
		{"no digits", ""},
	}
	for _, c := range cases {
		if got := extractServiceCode(c.in); got != c.want {
			t.Errorf("extractServiceCode(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseColumnDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"15.01.24", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"15.01.2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"1.2.2024", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{" 05.03.2024 ", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, err := parseColumnDate(c.in)
		if err != nil {
			t.Errorf("parseColumnDate(%q) unexpected err: %v", c.in, err)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("parseColumnDate(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseColumnDate_invalid(t *testing.T) {
	for _, in := range []string{"", "15.01", "32.01.2024", "15.13.2024", "31.02.2024", "total"} {
		if _, err := parseColumnDate(in); err == nil {
			t.Errorf("parseColumnDate(%q) expected error", in)
		}
	}
}

func TestCleanColumnDate(t *testing.T) {
	if got := cleanColumnDate(" 15. 01. 2024. "); got != "15.01.2024" {
		t.Fatalf("got %q", got)
	}
}
