package export

import (
	"context"
	"testing"
	"time"

	"boothq/internal/models"
)

type fakeStore struct {
	checkins     []models.CheckIn
	booths       []models.Booth
	certificates []models.Certificate
	students     []models.Student
}

func (f fakeStore) ListCheckIns(ctx context.Context) ([]models.CheckIn, error) {
	return f.checkins, nil
}

func (f fakeStore) ListBooths(ctx context.Context) ([]models.Booth, error) {
	return f.booths, nil
}

func (f fakeStore) ListCertificates(ctx context.Context) ([]models.Certificate, error) {
	return f.certificates, nil
}

func (f fakeStore) ListStudents(ctx context.Context) ([]models.Student, error) {
	return f.students, nil
}

func TestWorkbookSheets(t *testing.T) {
	identity := models.Identity{School: "Daegu High", Grade: 1, Class: 2, Number: 3, Name: "Lee"}
	st := fakeStore{
		checkins: []models.CheckIn{
			{ID: 1, Identity: identity, Booth: "Robotics", Comment: "fun", CreatedAt: time.Now()},
			{ID: 2, Identity: identity, Booth: "Origami", CreatedAt: time.Now()},
		},
		booths: []models.Booth{
			{ID: 1, Name: "Robotics", Location: "Gym", Active: true},
		},
		students: []models.Student{
			{ID: 1, StudentID: "lee01", Identity: identity},
		},
	}

	f, err := Workbook(context.Background(), st, time.Date(2025, 8, 30, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Checkins", "Booths", "Certificates", "Students", "Summary"} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Fatalf("missing sheet %s (idx %d, err %v)", sheet, idx, err)
		}
	}

	rows, err := f.GetRows("Checkins")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("checkin rows = %d, want header + 2", len(rows))
	}
	if rows[1][6] != "Robotics" {
		t.Fatalf("booth cell = %q", rows[1][6])
	}

	summary, err := f.GetRows("Summary")
	if err != nil {
		t.Fatalf("GetRows summary: %v", err)
	}
	// One identity across two check-ins counts once.
	if summary[1][1] != "1" {
		t.Fatalf("participating students = %q, want 1", summary[1][1])
	}
}
