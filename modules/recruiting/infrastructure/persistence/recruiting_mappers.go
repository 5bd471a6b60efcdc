package persistence

import (
	"github.com/talentflowhq/talentflow/modules/recruiting/domain/aggregates/candidate"
	"github.com/talentflowhq/talentflow/modules/recruiting/domain/entities/assignmentlog"
	"github.com/talentflowhq/talentflow/modules/recruiting/domain/entities/position"
	"github.com/talentflowhq/talentflow/modules/recruiting/domain/entities/stage"
	"github.com/talentflowhq/talentflow/modules/recruiting/infrastructure/persistence/models"
)

func toDomainCandidate(row models.Candidate) candidate.Candidate {
	return candidate.Hydrate(
		row.ID,
		row.TenantID,
		row.RecruiterID,
		row.Name,
		row.Email,
		row.Location,
		row.Score,
		row.AssessmentCompleted,
		row.CreatedAt,
		row.AssignedAt,
		row.UpdatedAt,
	)
}

func toDomainStage(row models.PipelineStage) stage.Stage {
	return stage.Hydrate(
		row.ID,
		row.TenantID,
		row.Name,
		row.OrderPosition,
		row.Color,
		row.CreatedAt,
	)
}

func toDomainPosition(row models.PipelinePosition) position.Position {
	return position.Position{
		CandidateID: row.CandidateID,
		StageID:     row.StageID,
		MovedBy:     row.MovedBy,
		MovedAt:     row.MovedAt,
		Notes:       row.Notes,
	}
}

func toDomainLogEntry(row models.AssignmentLogEntry) assignmentlog.Entry {
	return assignmentlog.Entry{
		ID:                  row.ID,
		TenantID:            row.TenantID,
		CandidateID:         row.CandidateID,
		RecruiterID:         row.RecruiterID,
		PreviousRecruiterID: row.PreviousRecruiterID,
		Action:              assignmentlog.Action(row.Action),
		Reason:              row.Reason,
		CreatedAt:           row.CreatedAt,
	}
}

func toDomainAssessment(row models.CandidateAssessment) position.AssessmentSummary {
	return position.AssessmentSummary{
		Status:               row.Status,
		CompletionPercentage: row.CompletionPercentage,
		CulturalFitScore:     row.CulturalFitScore,
		TopStrength:          row.TopStrength,
	}
}
