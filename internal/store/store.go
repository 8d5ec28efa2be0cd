package store

import (
	"context"
	"time"

	"boothq/internal/models"
)

type ApplyInput struct {
	StudentID int64
	BoothID   int64
	AppliedAt time.Time
}

// QueueEntryDetail is a queue entry joined with the contact and display
// fields a call notification needs.
type QueueEntryDetail struct {
	Entry         models.QueueEntry
	StudentName   string
	StudentPhone  string
	BoothName     string
	BoothLocation string
}

type IssueCertificateInput struct {
	Identity   models.Identity
	BoothNames []string
	BoothCount int
	Prefix     string
	YearSuffix string
	IssuedAt   time.Time
}

type Session struct {
	SessionID string
	Kind      string
	SubjectID int64
	ExpiresAt time.Time
}

const (
	SessionStudent  = "student"
	SessionOperator = "operator"
	SessionAdmin    = "admin"
)

type QueueStats struct {
	TotalBooths    int `json:"total_booths"`
	TotalWaiting   int `json:"total_waiting"`
	TotalCalled    int `json:"total_called"`
	TotalCompleted int `json:"total_completed"`
	TotalOperators int `json:"total_operators"`
}

type BoothQueueStats struct {
	BoothID        int64  `json:"id"`
	Name           string `json:"name"`
	Location       string `json:"location"`
	OperatorClub   string `json:"operator_name,omitempty"`
	WaitingCount   int    `json:"waiting_count"`
	CalledCount    int    `json:"called_count"`
	CompletedCount int    `json:"completed_count"`
}

// BoothListing is a booth with its live waiting count, shown to students.
type BoothListing struct {
	models.Booth
	QueueCount int `json:"queue_count"`
}

type QueueStore interface {
	// Apply assigns the next per-booth position atomically and rejects a
	// second active entry for the same (student, booth) pair.
	Apply(ctx context.Context, input ApplyInput) (models.QueueEntry, error)
	ListBoothQueue(ctx context.Context, boothID int64) ([]models.QueueEntryView, error)
	ListStudentQueue(ctx context.Context, studentID int64) ([]models.StudentQueueView, error)
	GetEntryDetail(ctx context.Context, entryID int64) (QueueEntryDetail, error)
	MarkCalled(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error)
	MarkCompleted(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error)
	MarkWaiting(ctx context.Context, entryID int64) (models.QueueEntry, string, error)
	DeleteEntry(ctx context.Context, entryID int64) error
}

type AccountStore interface {
	CreateStudent(ctx context.Context, student models.Student) (models.Student, error)
	GetStudentByLogin(ctx context.Context, studentID, password string) (models.Student, error)
	GetStudent(ctx context.Context, id int64) (models.Student, error)
	StudentIDTaken(ctx context.Context, studentID string) (bool, error)
	ListStudents(ctx context.Context) ([]models.Student, error)
	UpdateStudent(ctx context.Context, student models.Student) error
	DeleteStudent(ctx context.Context, id int64) error
	ClearStudents(ctx context.Context) error

	CreateOperator(ctx context.Context, operator models.Operator) (models.Operator, error)
	GetOperatorByLogin(ctx context.Context, operatorID, password string) (models.Operator, error)
	OperatorIDTaken(ctx context.Context, operatorID string) (bool, error)
	ListOperators(ctx context.Context) ([]models.Operator, error)
	UpdateOperator(ctx context.Context, operator models.Operator) error
	SetOperatorActive(ctx context.Context, id int64, active bool) error
	DeleteOperator(ctx context.Context, id int64) error
	ClearOperators(ctx context.Context) error
}

type BoothStore interface {
	CreateBooth(ctx context.Context, booth models.Booth) (models.Booth, error)
	UpsertBoothByName(ctx context.Context, name, description string) (models.Booth, error)
	UpdateBooth(ctx context.Context, booth models.Booth) error
	GetBooth(ctx context.Context, id int64) (models.Booth, error)
	GetBoothByName(ctx context.Context, name string) (models.Booth, error)
	ListActiveBooths(ctx context.Context) ([]BoothListing, error)
	ListBoothsByOperator(ctx context.Context, operatorID int64) ([]models.Booth, error)
	ListBooths(ctx context.Context) ([]models.Booth, error)
	// DeleteBoothByName removes the booth and its queue entries.
	DeleteBoothByName(ctx context.Context, name string) error
	ClearBooths(ctx context.Context) error
}

type CheckInStore interface {
	CreateCheckIn(ctx context.Context, checkin models.CheckIn) (models.CheckIn, error)
	ListCheckInsByIdentity(ctx context.Context, identity models.Identity) ([]models.CheckIn, error)
	UpdateCheckInComment(ctx context.Context, id int64, comment string) error
	DeleteCheckIn(ctx context.Context, id int64) error
	ListCheckIns(ctx context.Context) ([]models.CheckIn, error)
}

type CertificateStore interface {
	GetCertificateByIdentity(ctx context.Context, identity models.Identity) (models.Certificate, error)
	// IssueCertificate allocates the next sequential number and inserts,
	// or returns the existing certificate unchanged. The bool reports
	// whether a new row was created.
	IssueCertificate(ctx context.Context, input IssueCertificateInput) (models.Certificate, bool, error)
	ListCertificates(ctx context.Context) ([]models.Certificate, error)
	GetCertificateByNumber(ctx context.Context, number string) (models.Certificate, error)
}

type NotificationStore interface {
	InsertNotification(ctx context.Context, notification models.Notification) error
	ListRecentNotifications(ctx context.Context, limit int) ([]models.Notification, error)
}

type SessionStore interface {
	CreateSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, sessionID string) (Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

type StatsStore interface {
	QueueStats(ctx context.Context) (QueueStats, error)
	BoothQueueStats(ctx context.Context) ([]BoothQueueStats, error)
}

// Store is the full surface the postgres implementation provides.
type Store interface {
	QueueStore
	AccountStore
	BoothStore
	CheckInStore
	CertificateStore
	NotificationStore
	SessionStore
	SettingsStore
	StatsStore
	ClearAllData(ctx context.Context) error
}
