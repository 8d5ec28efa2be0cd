package models

import (
	"fmt"
	"strings"
	"time"
)

// Identity is the composite student identity used for check-ins and
// certificates. It is deliberately independent of the login account row:
// a student can accumulate check-in history without an account, and two
// accounts whose normalized tuples are equal share the same history and
// certificate.
type Identity struct {
	School string `json:"school"`
	Grade  int    `json:"grade"`
	Class  int    `json:"class"`
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// Key returns the normalized comparison form of the tuple: fields are
// trimmed and internal whitespace runs collapse to a single space.
func (id Identity) Key() Identity {
	return Identity{
		School: normalizeField(id.School),
		Grade:  id.Grade,
		Class:  id.Class,
		Number: id.Number,
		Name:   normalizeField(id.Name),
	}
}

func (id Identity) String() string {
	return fmt.Sprintf("%s-%d-%d-%d-%s", id.School, id.Grade, id.Class, id.Number, id.Name)
}

func normalizeField(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

type Student struct {
	ID        int64     `json:"id"`
	StudentID string    `json:"student_id"`
	Password  string    `json:"-"`
	Identity  Identity  `json:"identity"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Operator struct {
	ID         int64     `json:"id"`
	OperatorID string    `json:"operator_id"`
	Password   string    `json:"-"`
	School     string    `json:"school"`
	ClubName   string    `json:"club_name"`
	BoothTopic string    `json:"booth_topic"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

type Booth struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	PDFPath     string    `json:"pdf_file_path,omitempty"`
	OperatorID  int64     `json:"operator_id"`
	Active      bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// QueueEntry carries a stable ticket position assigned once at Apply.
// Position is never renumbered; the live rank is derived separately.
type QueueEntry struct {
	ID          int64      `json:"id"`
	StudentID   int64      `json:"student_id"`
	BoothID     int64      `json:"booth_id"`
	Position    int        `json:"queue_position"`
	Status      string     `json:"status"`
	AppliedAt   time.Time  `json:"applied_at"`
	CalledAt    *time.Time `json:"called_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

const (
	StatusWaiting   = "waiting"
	StatusCalled    = "called"
	StatusCompleted = "completed"
)

// QueueEntryView is a queue entry joined with its student display fields
// and the derived count of waiting entries ahead of it.
type QueueEntryView struct {
	QueueEntry
	StudentName   string `json:"student_name"`
	StudentSchool string `json:"student_school"`
	StudentGrade  int    `json:"student_grade"`
	StudentClass  int    `json:"student_class"`
	StudentNumber int    `json:"student_number"`
	StudentPhone  string `json:"student_phone,omitempty"`
	Ahead         int    `json:"ahead"`
}

// StudentQueueView is a queue entry joined with booth display fields,
// shown on the student dashboard.
type StudentQueueView struct {
	QueueEntry
	BoothName        string `json:"booth_name"`
	BoothLocation    string `json:"booth_location"`
	BoothDescription string `json:"booth_description"`
	Ahead            int    `json:"ahead"`
}

type CheckIn struct {
	ID        int64     `json:"id"`
	Identity  Identity  `json:"identity"`
	Booth     string    `json:"booth"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type Certificate struct {
	ID         int64     `json:"id"`
	Number     string    `json:"certificate_number"`
	Identity   Identity  `json:"identity"`
	BoothCount int       `json:"booth_count"`
	BoothNames []string  `json:"booth_names"`
	IssuedAt   time.Time `json:"issued_at"`
}

type Notification struct {
	ID        string    `json:"id"`
	StudentID int64     `json:"student_id"`
	BoothID   int64     `json:"booth_id"`
	Recipient string    `json:"recipient"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)
