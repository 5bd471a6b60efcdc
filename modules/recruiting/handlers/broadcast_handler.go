package handlers

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/talentflowhq/talentflow/modules/recruiting/domain/aggregates/candidate"
	"github.com/talentflowhq/talentflow/pkg/application"
	"github.com/talentflowhq/talentflow/pkg/metrics"
)

// BroadcastHandler is the fan-out side of the coordinator: it listens
// for post-commit domain events and pushes frames to the live sessions
// affected. Delivery is best-effort; a dead or slow subscriber never
// fails the mutation that triggered the event.
type BroadcastHandler struct {
	hub    application.Huber
	logger *logrus.Logger
}

func RegisterBroadcastHandlers(app application.Application) {
	handler := &BroadcastHandler{
		hub:    app.Websocket(),
		logger: app.Logger(),
	}
	app.EventPublisher().Subscribe(handler.onAssigned)
	app.EventPublisher().Subscribe(handler.onReassigned)
	app.EventPublisher().Subscribe(handler.onUnassigned)
	app.EventPublisher().Subscribe(handler.onMoved)
	app.EventPublisher().Subscribe(handler.onBulkMoved)
}

type frame struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

type candidateSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *BroadcastHandler) onAssigned(event candidate.AssignedEvent) {
	h.send(application.RecruiterChannel(event.RecruiterID), "lead-assigned", map[string]any{
		"candidateId": event.CandidateID,
		"candidate": candidateSummary{
			Name:  event.Result.Name(),
			Email: event.Result.Email(),
		},
		"assignedBy": event.AssignedBy,
		"reassigned": event.Reassigned,
		"reason":     event.Reason,
	})
	h.send(application.TenantChannel(event.TenantID), "candidate-pool-update", map[string]any{
		"type":        "assigned",
		"candidateId": event.CandidateID,
	})
}

func (h *BroadcastHandler) onReassigned(event candidate.ReassignedEvent) {
	summary := candidateSummary{
		Name:  event.Result.Name(),
		Email: event.Result.Email(),
	}
	h.send(application.RecruiterChannel(event.NewRecruiterID), "lead-assigned", map[string]any{
		"candidateId": event.CandidateID,
		"candidate":   summary,
		"assignedBy":  event.PreviousRecruiterID,
		"reassigned":  true,
		"reason":      event.Reason,
	})
	h.send(application.RecruiterChannel(event.PreviousRecruiterID), "lead-reassigned", map[string]any{
		"candidateId": event.CandidateID,
		"candidate":   summary,
		"reason":      event.Reason,
	})
}

func (h *BroadcastHandler) onUnassigned(event candidate.UnassignedEvent) {
	h.send(application.TenantChannel(event.TenantID), "candidate-pool-update", map[string]any{
		"type":        "unassigned",
		"candidateId": event.CandidateID,
	})
}

func (h *BroadcastHandler) onMoved(event candidate.MovedEvent) {
	payload := map[string]any{
		"candidateId": event.CandidateID,
		"stageId":     event.StageID,
		"movedBy":     event.MovedBy,
	}
	// Moves of an owned candidate concern its owner only; pool
	// candidates are visible organization-wide.
	if event.OwnerID.Valid {
		h.send(application.RecruiterChannel(event.OwnerID.UUID), "pipeline-updated", payload)
		return
	}
	h.send(application.TenantChannel(event.TenantID), "pipeline-updated", payload)
}

func (h *BroadcastHandler) onBulkMoved(event candidate.BulkMovedEvent) {
	h.send(application.TenantChannel(event.TenantID), "pipeline-bulk-updated", map[string]any{
		"candidateIds": event.CandidateIDs,
		"stageId":      event.StageID,
		"movedBy":      event.MovedBy,
	})
}

func (h *BroadcastHandler) send(channel, event string, payload any) {
	message, err := json.Marshal(frame{Event: event, Payload: payload})
	if err != nil {
		h.logger.WithError(err).WithField("event", event).Error("failed to encode broadcast frame")
		return
	}

	err = h.hub.ForEach(channel, func(conn application.Connection) error {
		if sendErr := conn.SendMessage(message); sendErr != nil {
			metrics.RecordBroadcast(event, false)
			h.logger.WithError(sendErr).WithFields(logrus.Fields{
				"event":     event,
				"channel":   channel,
				"recruiter": conn.RecruiterID(),
			}).Warn("dropped broadcast frame")
			return nil
		}
		metrics.RecordBroadcast(event, true)
		return nil
	})
	if err != nil {
		h.logger.WithError(err).WithField("channel", channel).Error("broadcast fan-out failed")
	}
}
