package dtos

import (
	"github.com/google/uuid"

	"github.com/talentflowhq/talentflow/pkg/constants"
)

type MoveDTO struct {
	CandidateID uuid.UUID `json:"candidateId" validate:"required"`
	StageID     uuid.UUID `json:"stageId" validate:"required"`
	Notes       string    `json:"notes" validate:"max=2000"`
}

type BulkMoveDTO struct {
	CandidateIDs []uuid.UUID `json:"candidateIds" validate:"required,min=1,max=200,dive,required"`
	StageID      uuid.UUID   `json:"stageId" validate:"required"`
}

type ReassignDTO struct {
	ToRecruiterID uuid.UUID `json:"toRecruiterId" validate:"required"`
	Reason        string    `json:"reason" validate:"max=500"`
}

type UnassignDTO struct {
	Reason string `json:"reason" validate:"max=500"`
}

type BulkAssignDTO struct {
	CandidateIDs []uuid.UUID `json:"candidateIds" validate:"required,min=1,max=200,dive,required"`
}

func (d *MoveDTO) Ok() error       { return constants.Validate.Struct(d) }
func (d *BulkMoveDTO) Ok() error   { return constants.Validate.Struct(d) }
func (d *ReassignDTO) Ok() error   { return constants.Validate.Struct(d) }
func (d *UnassignDTO) Ok() error   { return constants.Validate.Struct(d) }
func (d *BulkAssignDTO) Ok() error { return constants.Validate.Struct(d) }
