package store

import (
	"testing"
	"time"
)

func TestParseCertificateSequence(t *testing.T) {
	cases := []struct {
		number string
		seq    int
		ok     bool
	}{
		{"FEST-25-0042", 42, true},
		{"FEST-25-0001", 1, true},
		{"FEST-25-9999", 9999, true},
		{"FEST-24-0042", 0, false},
		{"OTHER-25-0042", 0, false},
		{"FEST-25", 0, false},
		{"FEST-25-xyz", 0, false},
		{"FEST-25-0042-extra", 0, false},
		{"", 0, false},
	}

	for _, tt := range cases {
		seq, ok := ParseCertificateSequence(tt.number, "FEST", "25")
		if ok != tt.ok || seq != tt.seq {
			t.Fatalf("ParseCertificateSequence(%q)=(%d,%v), want (%d,%v)", tt.number, seq, ok, tt.seq, tt.ok)
		}
	}
}

func TestFormatCertificateNumber(t *testing.T) {
	if got := FormatCertificateNumber("FEST", "25", 43); got != "FEST-25-0043" {
		t.Fatalf("FormatCertificateNumber=%q, want FEST-25-0043", got)
	}
	if got := FormatCertificateNumber("FEST", "25", 1); got != "FEST-25-0001" {
		t.Fatalf("FormatCertificateNumber=%q, want FEST-25-0001", got)
	}
	if got := FormatCertificateNumber("FEST", "25", 10000); got != "FEST-25-10000" {
		t.Fatalf("FormatCertificateNumber=%q, want FEST-25-10000", got)
	}
}

func TestFallbackCertificateNumber(t *testing.T) {
	at := time.Date(2025, 8, 30, 14, 5, 0, 0, time.UTC)
	if got := FallbackCertificateNumber("FEST", "25", at); got != "FEST-25-08301405" {
		t.Fatalf("FallbackCertificateNumber=%q, want FEST-25-08301405", got)
	}
}
