package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseCertificateSequence extracts the integer sequence from a stored
// certificate number of the form <prefix>-<yy>-NNNN. The bool is false
// when the number does not match that three-part shape.
func ParseCertificateSequence(number, prefix, yearSuffix string) (int, bool) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != prefix || parts[1] != yearSuffix {
		return 0, false
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}

// FormatCertificateNumber renders a sequence as <prefix>-<yy>-NNNN with a
// four-digit zero-padded sequence.
func FormatCertificateNumber(prefix, yearSuffix string, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, yearSuffix, seq)
}

// FallbackCertificateNumber is the degrade-gracefully number used when the
// stored latest number cannot be parsed or read: a timestamp-derived
// pseudo-sequence. A duplicate-looking number beats a hard failure at a
// live event.
func FallbackCertificateNumber(prefix, yearSuffix string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%s", prefix, yearSuffix, now.Format("01021504"))
}
