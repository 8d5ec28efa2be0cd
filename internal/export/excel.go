package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"boothq/internal/models"
)

// Store is the read surface the exporter needs.
type Store interface {
	ListCheckIns(ctx context.Context) ([]models.CheckIn, error)
	ListBooths(ctx context.Context) ([]models.Booth, error)
	ListCertificates(ctx context.Context) ([]models.Certificate, error)
	ListStudents(ctx context.Context) ([]models.Student, error)
}

// Workbook dumps the event tables into a five-sheet spreadsheet:
// check-ins, booths, certificates, student accounts and a summary.
func Workbook(ctx context.Context, st Store, now time.Time) (*excelize.File, error) {
	checkins, err := st.ListCheckIns(ctx)
	if err != nil {
		return nil, fmt.Errorf("export checkins: %w", err)
	}
	booths, err := st.ListBooths(ctx)
	if err != nil {
		return nil, fmt.Errorf("export booths: %w", err)
	}
	certificates, err := st.ListCertificates(ctx)
	if err != nil {
		return nil, fmt.Errorf("export certificates: %w", err)
	}
	students, err := st.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("export students: %w", err)
	}

	f := excelize.NewFile()

	if err := writeSheet(f, "Checkins", checkinRows(checkins)); err != nil {
		return nil, err
	}
	if err := writeSheet(f, "Booths", boothRows(booths)); err != nil {
		return nil, err
	}
	if err := writeSheet(f, "Certificates", certificateRows(certificates)); err != nil {
		return nil, err
	}
	if err := writeSheet(f, "Students", studentRows(students)); err != nil {
		return nil, err
	}
	if err := writeSheet(f, "Summary", summaryRows(checkins, booths, certificates, students, now)); err != nil {
		return nil, err
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func writeSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func checkinRows(checkins []models.CheckIn) [][]any {
	rows := [][]any{{"ID", "School", "Grade", "Class", "Number", "Name", "Booth", "Comment", "Checked in at"}}
	for _, c := range checkins {
		rows = append(rows, []any{
			c.ID, c.Identity.School, c.Identity.Grade, c.Identity.Class,
			c.Identity.Number, c.Identity.Name, c.Booth, c.Comment,
			c.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows
}

func boothRows(booths []models.Booth) [][]any {
	rows := [][]any{{"ID", "Name", "Location", "Description", "Active", "Created at", "Updated at"}}
	for _, b := range booths {
		active := "active"
		if !b.Active {
			active = "inactive"
		}
		rows = append(rows, []any{
			b.ID, b.Name, b.Location, b.Description, active,
			b.CreatedAt.Format(time.RFC3339), b.UpdatedAt.Format(time.RFC3339),
		})
	}
	return rows
}

func certificateRows(certificates []models.Certificate) [][]any {
	rows := [][]any{{"ID", "Number", "School", "Grade", "Class", "Number in class", "Name", "Booth count", "Booths", "Issued at"}}
	for _, c := range certificates {
		rows = append(rows, []any{
			c.ID, c.Number, c.Identity.School, c.Identity.Grade, c.Identity.Class,
			c.Identity.Number, c.Identity.Name, c.BoothCount,
			strings.Join(c.BoothNames, ", "), c.IssuedAt.Format(time.RFC3339),
		})
	}
	return rows
}

func studentRows(students []models.Student) [][]any {
	rows := [][]any{{"ID", "Login ID", "School", "Grade", "Class", "Number", "Name", "Phone", "Created at"}}
	for _, s := range students {
		rows = append(rows, []any{
			s.ID, s.StudentID, s.Identity.School, s.Identity.Grade, s.Identity.Class,
			s.Identity.Number, s.Identity.Name, s.Phone,
			s.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows
}

func summaryRows(checkins []models.CheckIn, booths []models.Booth, certificates []models.Certificate, students []models.Student, now time.Time) [][]any {
	unique := make(map[models.Identity]bool, len(checkins))
	for _, c := range checkins {
		unique[c.Identity.Key()] = true
	}
	return [][]any{
		{"Metric", "Value"},
		{"Participating students", len(unique)},
		{"Total check-ins", len(checkins)},
		{"Registered booths", len(booths)},
		{"Issued certificates", len(certificates)},
		{"Student accounts", len(students)},
		{"Exported at", now.Format("2006-01-02 15:04:05")},
	}
}
