package models

import (
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID                  uuid.UUID
	TenantID            uuid.UUID
	RecruiterID         uuid.NullUUID
	Name                string
	Email               string
	Location            string
	Score               int
	AssessmentCompleted bool
	CreatedAt           time.Time
	AssignedAt          *time.Time
	UpdatedAt           time.Time
}

type PipelineStage struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	Name          string
	OrderPosition int
	Color         string
	CreatedAt     time.Time
}

type PipelinePosition struct {
	CandidateID uuid.UUID
	StageID     uuid.UUID
	MovedBy     uuid.UUID
	MovedAt     time.Time
	Notes       string
}

type AssignmentLogEntry struct {
	ID                  int64
	TenantID            uuid.UUID
	CandidateID         uuid.UUID
	RecruiterID         uuid.NullUUID
	PreviousRecruiterID uuid.NullUUID
	Action              string
	Reason              string
	CreatedAt           time.Time
}

type CandidateAssessment struct {
	CandidateID          uuid.UUID
	Status               string
	CompletionPercentage int
	CulturalFitScore     int
	TopStrength          string
}
