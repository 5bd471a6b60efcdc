package candidate

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Candidate is the contended aggregate of the pipeline: its recruiterID
// holds the exclusive ownership relation. A nil recruiterID means the
// candidate sits in the organization-wide unassigned pool.
type Candidate struct {
	id                  uuid.UUID
	tenantID            uuid.UUID
	recruiterID         uuid.NullUUID
	name                string
	email               string
	location            string
	score               int
	assessmentCompleted bool
	createdAt           time.Time
	assignedAt          *time.Time
	updatedAt           time.Time
}

func New(tenantID uuid.UUID, name, email, location string, score int) Candidate {
	return Candidate{
		tenantID: tenantID,
		name:     strings.TrimSpace(name),
		email:    strings.TrimSpace(email),
		location: strings.TrimSpace(location),
		score:    score,
	}
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	recruiterID uuid.NullUUID,
	name string,
	email string,
	location string,
	score int,
	assessmentCompleted bool,
	createdAt time.Time,
	assignedAt *time.Time,
	updatedAt time.Time,
) Candidate {
	return Candidate{
		id:                  id,
		tenantID:            tenantID,
		recruiterID:         recruiterID,
		name:                name,
		email:               email,
		location:            location,
		score:               score,
		assessmentCompleted: assessmentCompleted,
		createdAt:           createdAt,
		assignedAt:          assignedAt,
		updatedAt:           updatedAt,
	}
}

func (c Candidate) ID() uuid.UUID              { return c.id }
func (c Candidate) TenantID() uuid.UUID        { return c.tenantID }
func (c Candidate) RecruiterID() uuid.NullUUID { return c.recruiterID }
func (c Candidate) Name() string               { return c.name }
func (c Candidate) Email() string              { return c.email }
func (c Candidate) Location() string           { return c.location }
func (c Candidate) Score() int                 { return c.score }
func (c Candidate) AssessmentCompleted() bool  { return c.assessmentCompleted }
func (c Candidate) CreatedAt() time.Time       { return c.createdAt }
func (c Candidate) AssignedAt() *time.Time     { return c.assignedAt }
func (c Candidate) UpdatedAt() time.Time       { return c.updatedAt }

func (c Candidate) IsAssigned() bool { return c.recruiterID.Valid }

func (c Candidate) IsOwnedBy(recruiterID uuid.UUID) bool {
	return c.recruiterID.Valid && c.recruiterID.UUID == recruiterID
}

// AssignmentStatus is the ownership relation as seen by one viewer.
type AssignmentStatus string

const (
	StatusAssigned       AssignmentStatus = "assigned"
	StatusUnassigned     AssignmentStatus = "unassigned"
	StatusOtherRecruiter AssignmentStatus = "other_recruiter"
)

// Visible is a candidate annotated with what the viewing recruiter may
// do with it.
type Visible struct {
	Candidate     Candidate
	Status        AssignmentStatus
	CanAssign     bool
	CanReassign   bool
	IsMyCandidate bool
}

// Visibility derives the viewer-relative status and action flags.
func Visibility(c Candidate, viewerID uuid.UUID) Visible {
	v := Visible{Candidate: c}
	switch {
	case !c.IsAssigned():
		v.Status = StatusUnassigned
		v.CanAssign = true
	case c.IsOwnedBy(viewerID):
		v.Status = StatusAssigned
		v.CanReassign = true
		v.IsMyCandidate = true
	default:
		v.Status = StatusOtherRecruiter
	}
	return v
}
