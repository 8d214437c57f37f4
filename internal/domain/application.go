package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxCompanyLength = 200
	MaxRoleLength    = 200
	MaxNotesLength   = 2000
)

// Status is the hiring stage of an application. Any status may follow any other.
type Status string

const (
	StatusApplied   Status = "APPLIED"
	StatusInterview Status = "INTERVIEW"
	StatusOffer     Status = "OFFER"
	StatusRejected  Status = "REJECTED"
)

// Statuses lists every status in pipeline order.
var Statuses = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected}

func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus accepts the wire form of a status, ignoring case and surrounding whitespace.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

type JobApplication struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Company   string
	Role      string
	Status    Status
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplicationDraft is the caller-supplied part of a new application.
type ApplicationDraft struct {
	Company string
	Role    string
	Status  Status
	Notes   string
}

// Normalize trims company and role and checks every field against its limits.
func (d ApplicationDraft) Normalize() (ApplicationDraft, error) {
	d.Company = strings.TrimSpace(d.Company)
	d.Role = strings.TrimSpace(d.Role)

	switch {
	case d.Company == "":
		return d, fmt.Errorf("%w: company is required", ErrInvalidApplication)
	case utf8.RuneCountInString(d.Company) > MaxCompanyLength:
		return d, fmt.Errorf("%w: company must be at most %d characters", ErrInvalidApplication, MaxCompanyLength)
	case d.Role == "":
		return d, fmt.Errorf("%w: role is required", ErrInvalidApplication)
	case utf8.RuneCountInString(d.Role) > MaxRoleLength:
		return d, fmt.Errorf("%w: role must be at most %d characters", ErrInvalidApplication, MaxRoleLength)
	case !d.Status.Valid():
		return d, fmt.Errorf("%w: status is required", ErrInvalidApplication)
	case utf8.RuneCountInString(d.Notes) > MaxNotesLength:
		return d, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidApplication, MaxNotesLength)
	}
	return d, nil
}

// StatusSummary counts an owner's applications per status. ByStatus has an entry for every status.
type StatusSummary struct {
	Total    int
	ByStatus map[Status]int
}

// NewStatusSummary zero-fills missing statuses and computes the total.
func NewStatusSummary(counts map[Status]int) StatusSummary {
	summary := StatusSummary{ByStatus: make(map[Status]int, len(Statuses))}
	for _, s := range Statuses {
		n := counts[s]
		summary.ByStatus[s] = n
		summary.Total += n
	}
	return summary
}

// ApplicationStore persists application records. Every read except FindByID is scoped to an owner.
type ApplicationStore interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]JobApplication, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*JobApplication, error)
	FindByID(ctx context.Context, id uuid.UUID) (*JobApplication, error)
	Insert(ctx context.Context, app *JobApplication) error
	Update(ctx context.Context, app *JobApplication) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, ownerID uuid.UUID) (map[Status]int, error)
}
