package mappers

import (
	"time"

	"github.com/google/uuid"

	"github.com/talentflowhq/talentflow/modules/recruiting/domain/aggregates/candidate"
	"github.com/talentflowhq/talentflow/modules/recruiting/domain/entities/assignmentlog"
	"github.com/talentflowhq/talentflow/modules/recruiting/domain/entities/position"
	"github.com/talentflowhq/talentflow/modules/recruiting/domain/entities/stage"
	"github.com/talentflowhq/talentflow/modules/recruiting/presentation/viewmodels"
	"github.com/talentflowhq/talentflow/modules/recruiting/services"
)

func StageToViewModel(s stage.Stage) viewmodels.Stage {
	return viewmodels.Stage{
		ID:            s.ID().String(),
		Name:          s.Name(),
		OrderPosition: s.OrderPosition(),
		Color:         s.Color(),
	}
}

func VisibleToViewModel(v candidate.Visible) viewmodels.Candidate {
	c := v.Candidate
	return viewmodels.Candidate{
		ID:                  c.ID().String(),
		RecruiterID:         nullUUIDString(c.RecruiterID()),
		Name:                c.Name(),
		Email:               c.Email(),
		Location:            c.Location(),
		Score:               c.Score(),
		AssessmentCompleted: c.AssessmentCompleted(),
		AssignmentStatus:    string(v.Status),
		CanAssign:           v.CanAssign,
		CanReassign:         v.CanReassign,
		IsMyCandidate:       v.IsMyCandidate,
		CreatedAt:           c.CreatedAt().Format(time.RFC3339),
		AssignedAt:          timeString(c.AssignedAt()),
		UpdatedAt:           c.UpdatedAt().Format(time.RFC3339),
	}
}

func EntryToPipelineCard(entry position.ViewEntry) viewmodels.PipelineCard {
	return viewmodels.PipelineCard{
		Candidate: VisibleToViewModel(entry.Candidate),
		StageID:   entry.Position.StageID.String(),
		MovedBy:   entry.Position.MovedBy.String(),
		MovedAt:   entry.Position.MovedAt.Format(time.RFC3339),
		Notes:     entry.Position.Notes,
		Assessment: viewmodels.Assessment{
			Status:               entry.Assessment.Status,
			CompletionPercentage: entry.Assessment.CompletionPercentage,
			CulturalFitScore:     entry.Assessment.CulturalFitScore,
			TopStrength:          entry.Assessment.TopStrength,
		},
	}
}

func PipelineViewToViewModel(view services.PipelineView) viewmodels.PipelineView {
	out := viewmodels.PipelineView{Stages: make([]viewmodels.StageColumn, 0, len(view.Stages))}
	for _, column := range view.Stages {
		cards := make([]viewmodels.PipelineCard, 0, len(column.Candidates))
		for _, entry := range column.Candidates {
			cards = append(cards, EntryToPipelineCard(entry))
		}
		out.Stages = append(out.Stages, viewmodels.StageColumn{
			Stage:      StageToViewModel(column.Stage),
			Candidates: cards,
		})
	}
	return out
}

func LogEntryToViewModel(entry assignmentlog.Entry) viewmodels.AssignmentLogEntry {
	return viewmodels.AssignmentLogEntry{
		ID:                  entry.ID,
		CandidateID:         entry.CandidateID.String(),
		RecruiterID:         nullUUIDString(entry.RecruiterID),
		PreviousRecruiterID: nullUUIDString(entry.PreviousRecruiterID),
		Action:              string(entry.Action),
		Reason:              entry.Reason,
		CreatedAt:           entry.CreatedAt.Format(time.RFC3339),
	}
}

func nullUUIDString(id uuid.NullUUID) *string {
	if !id.Valid {
		return nil
	}
	s := id.UUID.String()
	return &s
}

func timeString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
