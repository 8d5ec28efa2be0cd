package httpapi

import (
	"context"
	"time"

	"boothq/internal/models"
	"boothq/internal/store"
)

type fakeStore struct {
	applyFn             func(ctx context.Context, input store.ApplyInput) (models.QueueEntry, error)
	listBoothQueueFn    func(ctx context.Context, boothID int64) ([]models.QueueEntryView, error)
	listStudentQueueFn  func(ctx context.Context, studentID int64) ([]models.StudentQueueView, error)
	getEntryDetailFn    func(ctx context.Context, entryID int64) (store.QueueEntryDetail, error)
	markCalledFn        func(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error)
	markCompletedFn     func(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error)
	markWaitingFn       func(ctx context.Context, entryID int64) (models.QueueEntry, string, error)
	deleteEntryFn       func(ctx context.Context, entryID int64) error
	createStudentFn     func(ctx context.Context, student models.Student) (models.Student, error)
	getStudentLoginFn   func(ctx context.Context, studentID, password string) (models.Student, error)
	getStudentFn        func(ctx context.Context, id int64) (models.Student, error)
	studentIDTakenFn    func(ctx context.Context, studentID string) (bool, error)
	listStudentsFn      func(ctx context.Context) ([]models.Student, error)
	createOperatorFn    func(ctx context.Context, operator models.Operator) (models.Operator, error)
	getOperatorLoginFn  func(ctx context.Context, operatorID, password string) (models.Operator, error)
	createBoothFn       func(ctx context.Context, booth models.Booth) (models.Booth, error)
	upsertBoothFn       func(ctx context.Context, name, description string) (models.Booth, error)
	getBoothFn          func(ctx context.Context, id int64) (models.Booth, error)
	listActiveBoothsFn  func(ctx context.Context) ([]store.BoothListing, error)
	listOperatorBooths  func(ctx context.Context, operatorID int64) ([]models.Booth, error)
	createCheckInFn     func(ctx context.Context, checkin models.CheckIn) (models.CheckIn, error)
	listCheckInsByIDFn  func(ctx context.Context, identity models.Identity) ([]models.CheckIn, error)
	issueCertificateFn  func(ctx context.Context, input store.IssueCertificateInput) (models.Certificate, bool, error)
	createSessionFn     func(ctx context.Context, session store.Session) error
	getSessionFn        func(ctx context.Context, sessionID string) (store.Session, error)
	getSettingFn        func(ctx context.Context, key string) (string, error)
	setSettingFn        func(ctx context.Context, key, value string) error
	queueStatsFn        func(ctx context.Context) (store.QueueStats, error)
	boothQueueStatsFn   func(ctx context.Context) ([]store.BoothQueueStats, error)
	insertNotifFn       func(ctx context.Context, notification models.Notification) error
	listRecentNotifsFn  func(ctx context.Context, limit int) ([]models.Notification, error)
	clearAllFn          func(ctx context.Context) error
	deleteBoothByNameFn func(ctx context.Context, name string) error
}

func (f *fakeStore) Apply(ctx context.Context, input store.ApplyInput) (models.QueueEntry, error) {
	if f.applyFn == nil {
		return models.QueueEntry{}, nil
	}
	return f.applyFn(ctx, input)
}

func (f *fakeStore) ListBoothQueue(ctx context.Context, boothID int64) ([]models.QueueEntryView, error) {
	if f.listBoothQueueFn == nil {
		return nil, nil
	}
	return f.listBoothQueueFn(ctx, boothID)
}

func (f *fakeStore) ListStudentQueue(ctx context.Context, studentID int64) ([]models.StudentQueueView, error) {
	if f.listStudentQueueFn == nil {
		return nil, nil
	}
	return f.listStudentQueueFn(ctx, studentID)
}

func (f *fakeStore) GetEntryDetail(ctx context.Context, entryID int64) (store.QueueEntryDetail, error) {
	if f.getEntryDetailFn == nil {
		return store.QueueEntryDetail{}, nil
	}
	return f.getEntryDetailFn(ctx, entryID)
}

func (f *fakeStore) MarkCalled(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error) {
	if f.markCalledFn == nil {
		return models.QueueEntry{}, models.StatusWaiting, nil
	}
	return f.markCalledFn(ctx, entryID, at)
}

func (f *fakeStore) MarkCompleted(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error) {
	if f.markCompletedFn == nil {
		return models.QueueEntry{}, models.StatusCalled, nil
	}
	return f.markCompletedFn(ctx, entryID, at)
}

func (f *fakeStore) MarkWaiting(ctx context.Context, entryID int64) (models.QueueEntry, string, error) {
	if f.markWaitingFn == nil {
		return models.QueueEntry{}, models.StatusCalled, nil
	}
	return f.markWaitingFn(ctx, entryID)
}

func (f *fakeStore) DeleteEntry(ctx context.Context, entryID int64) error {
	if f.deleteEntryFn == nil {
		return nil
	}
	return f.deleteEntryFn(ctx, entryID)
}

func (f *fakeStore) CreateStudent(ctx context.Context, student models.Student) (models.Student, error) {
	if f.createStudentFn == nil {
		return student, nil
	}
	return f.createStudentFn(ctx, student)
}

func (f *fakeStore) GetStudentByLogin(ctx context.Context, studentID, password string) (models.Student, error) {
	if f.getStudentLoginFn == nil {
		return models.Student{}, store.ErrInvalidCredentials
	}
	return f.getStudentLoginFn(ctx, studentID, password)
}

func (f *fakeStore) GetStudent(ctx context.Context, id int64) (models.Student, error) {
	if f.getStudentFn == nil {
		return models.Student{}, store.ErrStudentNotFound
	}
	return f.getStudentFn(ctx, id)
}

func (f *fakeStore) StudentIDTaken(ctx context.Context, studentID string) (bool, error) {
	if f.studentIDTakenFn == nil {
		return false, nil
	}
	return f.studentIDTakenFn(ctx, studentID)
}

func (f *fakeStore) ListStudents(ctx context.Context) ([]models.Student, error) {
	if f.listStudentsFn == nil {
		return nil, nil
	}
	return f.listStudentsFn(ctx)
}

func (f *fakeStore) UpdateStudent(ctx context.Context, student models.Student) error { return nil }

func (f *fakeStore) DeleteStudent(ctx context.Context, id int64) error { return nil }

func (f *fakeStore) ClearStudents(ctx context.Context) error { return nil }

func (f *fakeStore) CreateOperator(ctx context.Context, operator models.Operator) (models.Operator, error) {
	if f.createOperatorFn == nil {
		return operator, nil
	}
	return f.createOperatorFn(ctx, operator)
}

func (f *fakeStore) GetOperatorByLogin(ctx context.Context, operatorID, password string) (models.Operator, error) {
	if f.getOperatorLoginFn == nil {
		return models.Operator{}, store.ErrInvalidCredentials
	}
	return f.getOperatorLoginFn(ctx, operatorID, password)
}

func (f *fakeStore) OperatorIDTaken(ctx context.Context, operatorID string) (bool, error) {
	return false, nil
}

func (f *fakeStore) ListOperators(ctx context.Context) ([]models.Operator, error) { return nil, nil }

func (f *fakeStore) UpdateOperator(ctx context.Context, operator models.Operator) error { return nil }

func (f *fakeStore) SetOperatorActive(ctx context.Context, id int64, active bool) error { return nil }

func (f *fakeStore) DeleteOperator(ctx context.Context, id int64) error { return nil }

func (f *fakeStore) ClearOperators(ctx context.Context) error { return nil }

func (f *fakeStore) CreateBooth(ctx context.Context, booth models.Booth) (models.Booth, error) {
	if f.createBoothFn == nil {
		return booth, nil
	}
	return f.createBoothFn(ctx, booth)
}

func (f *fakeStore) UpsertBoothByName(ctx context.Context, name, description string) (models.Booth, error) {
	if f.upsertBoothFn == nil {
		return models.Booth{Name: name, Description: description, Active: true}, nil
	}
	return f.upsertBoothFn(ctx, name, description)
}

func (f *fakeStore) UpdateBooth(ctx context.Context, booth models.Booth) error { return nil }

func (f *fakeStore) GetBooth(ctx context.Context, id int64) (models.Booth, error) {
	if f.getBoothFn == nil {
		return models.Booth{}, store.ErrBoothNotFound
	}
	return f.getBoothFn(ctx, id)
}

func (f *fakeStore) GetBoothByName(ctx context.Context, name string) (models.Booth, error) {
	return models.Booth{}, store.ErrBoothNotFound
}

func (f *fakeStore) ListActiveBooths(ctx context.Context) ([]store.BoothListing, error) {
	if f.listActiveBoothsFn == nil {
		return nil, nil
	}
	return f.listActiveBoothsFn(ctx)
}

func (f *fakeStore) ListBoothsByOperator(ctx context.Context, operatorID int64) ([]models.Booth, error) {
	if f.listOperatorBooths == nil {
		return nil, nil
	}
	return f.listOperatorBooths(ctx, operatorID)
}

func (f *fakeStore) ListBooths(ctx context.Context) ([]models.Booth, error) { return nil, nil }

func (f *fakeStore) DeleteBoothByName(ctx context.Context, name string) error {
	if f.deleteBoothByNameFn == nil {
		return nil
	}
	return f.deleteBoothByNameFn(ctx, name)
}

func (f *fakeStore) ClearBooths(ctx context.Context) error { return nil }

func (f *fakeStore) CreateCheckIn(ctx context.Context, checkin models.CheckIn) (models.CheckIn, error) {
	if f.createCheckInFn == nil {
		return checkin, nil
	}
	return f.createCheckInFn(ctx, checkin)
}

func (f *fakeStore) ListCheckInsByIdentity(ctx context.Context, identity models.Identity) ([]models.CheckIn, error) {
	if f.listCheckInsByIDFn == nil {
		return nil, nil
	}
	return f.listCheckInsByIDFn(ctx, identity)
}

func (f *fakeStore) UpdateCheckInComment(ctx context.Context, id int64, comment string) error {
	return nil
}

func (f *fakeStore) DeleteCheckIn(ctx context.Context, id int64) error { return nil }

func (f *fakeStore) ListCheckIns(ctx context.Context) ([]models.CheckIn, error) { return nil, nil }

func (f *fakeStore) GetCertificateByIdentity(ctx context.Context, identity models.Identity) (models.Certificate, error) {
	return models.Certificate{}, store.ErrCertificateNotFound
}

func (f *fakeStore) IssueCertificate(ctx context.Context, input store.IssueCertificateInput) (models.Certificate, bool, error) {
	if f.issueCertificateFn == nil {
		return models.Certificate{}, false, nil
	}
	return f.issueCertificateFn(ctx, input)
}

func (f *fakeStore) ListCertificates(ctx context.Context) ([]models.Certificate, error) {
	return nil, nil
}

func (f *fakeStore) GetCertificateByNumber(ctx context.Context, number string) (models.Certificate, error) {
	return models.Certificate{}, store.ErrCertificateNotFound
}

func (f *fakeStore) InsertNotification(ctx context.Context, notification models.Notification) error {
	if f.insertNotifFn == nil {
		return nil
	}
	return f.insertNotifFn(ctx, notification)
}

func (f *fakeStore) ListRecentNotifications(ctx context.Context, limit int) ([]models.Notification, error) {
	if f.listRecentNotifsFn == nil {
		return nil, nil
	}
	return f.listRecentNotifsFn(ctx, limit)
}

func (f *fakeStore) CreateSession(ctx context.Context, session store.Session) error {
	if f.createSessionFn == nil {
		return nil
	}
	return f.createSessionFn(ctx, session)
}

func (f *fakeStore) GetSession(ctx context.Context, sessionID string) (store.Session, error) {
	if f.getSessionFn == nil {
		return store.Session{}, store.ErrSessionNotFound
	}
	return f.getSessionFn(ctx, sessionID)
}

func (f *fakeStore) DeleteSession(ctx context.Context, sessionID string) error { return nil }

func (f *fakeStore) GetSetting(ctx context.Context, key string) (string, error) {
	if f.getSettingFn == nil {
		return "", store.ErrRecordNotFound
	}
	return f.getSettingFn(ctx, key)
}

func (f *fakeStore) SetSetting(ctx context.Context, key, value string) error {
	if f.setSettingFn == nil {
		return nil
	}
	return f.setSettingFn(ctx, key, value)
}

func (f *fakeStore) QueueStats(ctx context.Context) (store.QueueStats, error) {
	if f.queueStatsFn == nil {
		return store.QueueStats{}, nil
	}
	return f.queueStatsFn(ctx)
}

func (f *fakeStore) BoothQueueStats(ctx context.Context) ([]store.BoothQueueStats, error) {
	if f.boothQueueStatsFn == nil {
		return nil, nil
	}
	return f.boothQueueStatsFn(ctx)
}

func (f *fakeStore) ClearAllData(ctx context.Context) error {
	if f.clearAllFn == nil {
		return nil
	}
	return f.clearAllFn(ctx)
}
