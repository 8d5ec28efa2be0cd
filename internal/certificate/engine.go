package certificate

import (
	"context"
	"time"

	"boothq/internal/models"
	"boothq/internal/store"
)

// MinBooths is the number of distinct booths a student must have checked
// in at before a certificate can be issued.
const MinBooths = 3

// Store is the slice of the datastore the engine needs.
type Store interface {
	ListCheckInsByIdentity(ctx context.Context, identity models.Identity) ([]models.CheckIn, error)
	IssueCertificate(ctx context.Context, input store.IssueCertificateInput) (models.Certificate, bool, error)
}

// Engine computes certificate eligibility from check-in history and issues
// at most one certificate per student identity.
type Engine struct {
	store      Store
	prefix     string
	yearSuffix string
	now        func() time.Time
}

func NewEngine(st Store, prefix, yearSuffix string) *Engine {
	return &Engine{store: st, prefix: prefix, yearSuffix: yearSuffix, now: time.Now}
}

// BoothVisit is one distinct booth in a student's history, carrying the
// most recent comment left there.
type BoothVisit struct {
	Booth   string `json:"booth"`
	Comment string `json:"comment"`
}

type Eligibility struct {
	Eligible   bool         `json:"eligible"`
	BoothCount int          `json:"booth_count"`
	Visits     []BoothVisit `json:"visits"`
}

type IssueResult struct {
	Eligible      bool
	BoothCount    int
	Certificate   models.Certificate
	AlreadyIssued bool
}

// ComputeEligibility collapses the check-in history to distinct booths.
// Repeat visits to the same booth count once; the newest check-in wins
// the comment slot. Order follows first appearance in the history, which
// the store returns newest first.
func (e *Engine) ComputeEligibility(ctx context.Context, identity models.Identity) (Eligibility, error) {
	checkins, err := e.store.ListCheckInsByIdentity(ctx, identity.Key())
	if err != nil {
		return Eligibility{}, err
	}
	visits := distinctVisits(checkins)
	return Eligibility{
		Eligible:   len(visits) >= MinBooths,
		BoothCount: len(visits),
		Visits:     visits,
	}, nil
}

// Issue returns the existing certificate when one was already issued for
// this identity; otherwise it checks eligibility and allocates a new one.
func (e *Engine) Issue(ctx context.Context, identity models.Identity) (IssueResult, error) {
	key := identity.Key()

	eligibility, err := e.ComputeEligibility(ctx, key)
	if err != nil {
		return IssueResult{}, err
	}
	if !eligibility.Eligible {
		return IssueResult{Eligible: false, BoothCount: eligibility.BoothCount}, nil
	}

	names := make([]string, len(eligibility.Visits))
	for i, visit := range eligibility.Visits {
		names[i] = visit.Booth
	}
	cert, created, err := e.store.IssueCertificate(ctx, store.IssueCertificateInput{
		Identity:   key,
		BoothNames: names,
		BoothCount: eligibility.BoothCount,
		Prefix:     e.prefix,
		YearSuffix: e.yearSuffix,
		IssuedAt:   e.now(),
	})
	if err != nil {
		return IssueResult{}, err
	}
	return IssueResult{
		Eligible:      true,
		BoothCount:    eligibility.BoothCount,
		Certificate:   cert,
		AlreadyIssued: !created,
	}, nil
}

func distinctVisits(checkins []models.CheckIn) []BoothVisit {
	seen := make(map[string]bool, len(checkins))
	var visits []BoothVisit
	for _, checkin := range checkins {
		if seen[checkin.Booth] {
			continue
		}
		seen[checkin.Booth] = true
		visits = append(visits, BoothVisit{Booth: checkin.Booth, Comment: checkin.Comment})
	}
	return visits
}
