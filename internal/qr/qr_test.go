package qr

import (
	"bytes"
	"testing"
)

func TestCheckinURLEscapesBoothName(t *testing.T) {
	got := CheckinURL("https://fest.example.com", "Math & Magic")
	want := "https://fest.example.com/checkin?booth=Math+%26+Magic"
	if got != want {
		t.Fatalf("CheckinURL = %q, want %q", got, want)
	}
}

func TestBoothPNG(t *testing.T) {
	png, err := BoothPNG("https://fest.example.com", "Robotics", 0)
	if err != nil {
		t.Fatalf("BoothPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatal("output is not a PNG")
	}
}
