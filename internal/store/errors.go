package store

import "errors"

var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrOperatorNotFound     = errors.New("operator not found")
	ErrBoothNotFound        = errors.New("booth not found")
	ErrEntryNotFound        = errors.New("queue entry not found")
	ErrRecordNotFound       = errors.New("check-in record not found")
	ErrCertificateNotFound  = errors.New("certificate not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrDuplicateLoginID     = errors.New("login id already in use")
	ErrDuplicateIdentity    = errors.New("student identity already registered")
	ErrDuplicateBoothName   = errors.New("booth name already exists")
	ErrDuplicateApplication = errors.New("active queue entry already exists for this booth")
)
