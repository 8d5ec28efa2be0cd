package qr

import (
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

// CheckinURL builds the payload a booth's QR code encodes. Scanning it
// opens the check-in page with the booth preselected.
func CheckinURL(baseURL, boothName string) string {
	return fmt.Sprintf("%s/checkin?booth=%s", baseURL, url.QueryEscape(boothName))
}

// BoothPNG renders the check-in QR code for a booth as a PNG.
func BoothPNG(baseURL, boothName string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(CheckinURL(baseURL, boothName), qrcode.Medium, size)
}
