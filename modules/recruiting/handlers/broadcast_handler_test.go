package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/talentflowhq/talentflow/modules/recruiting/domain/aggregates/candidate"
	"github.com/talentflowhq/talentflow/modules/recruiting/handlers"
	"github.com/talentflowhq/talentflow/pkg/application"
	"github.com/talentflowhq/talentflow/pkg/eventbus"
	"github.com/talentflowhq/talentflow/pkg/ws"
)

type stubConnection struct {
	recruiterID uuid.UUID
	tenantID    uuid.UUID
	messages    [][]byte
	sendErr     error
}

func (c *stubConnection) SendMessage(message []byte) error {
	if c.sendErr != nil {
		return c.sendErr
	}
	c.messages = append(c.messages, message)
	return nil
}

func (c *stubConnection) Close() error           { return nil }
func (c *stubConnection) RecruiterID() uuid.UUID { return c.recruiterID }
func (c *stubConnection) TenantID() uuid.UUID    { return c.tenantID }

type stubHub struct {
	channels map[string][]*stubConnection
}

func (h *stubHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {}

func (h *stubHub) ForEach(channel string, f application.WsCallback) error {
	for _, conn := range h.channels[channel] {
		if err := f(conn); err != nil {
			return err
		}
	}
	return nil
}

type frame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

func decodeFrames(t *testing.T, conn *stubConnection) []frame {
	t.Helper()
	out := make([]frame, 0, len(conn.messages))
	for _, message := range conn.messages {
		var f frame
		require.NoError(t, json.Unmarshal(message, &f))
		out = append(out, f)
	}
	return out
}

func setupHandler(t *testing.T, hub *stubHub) eventbus.EventBus {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
		Huber:    hub,
	})
	handlers.RegisterBroadcastHandlers(app)
	return app.EventPublisher()
}

func TestBroadcast_AssignedRoutesToOwnerAndPool(t *testing.T) {
	tenantID := uuid.New()
	ownerID := uuid.New()
	owner := &stubConnection{recruiterID: ownerID, tenantID: tenantID}
	bystander := &stubConnection{recruiterID: uuid.New(), tenantID: tenantID}

	hub := &stubHub{channels: map[string][]*stubConnection{
		application.RecruiterChannel(ownerID): {owner},
		application.TenantChannel(tenantID):   {owner, bystander},
	}}
	bus := setupHandler(t, hub)

	bus.Publish(candidate.AssignedEvent{
		TenantID:    tenantID,
		CandidateID: uuid.New(),
		RecruiterID: ownerID,
		AssignedBy:  ownerID,
	})

	ownerFrames := decodeFrames(t, owner)
	require.Len(t, ownerFrames, 2)
	require.Equal(t, "lead-assigned", ownerFrames[0].Event)
	require.Equal(t, "candidate-pool-update", ownerFrames[1].Event)

	bystanderFrames := decodeFrames(t, bystander)
	require.Len(t, bystanderFrames, 1)
	require.Equal(t, "candidate-pool-update", bystanderFrames[0].Event)
}

func TestBroadcast_ReassignedNotifiesBothRecruiters(t *testing.T) {
	previous := &stubConnection{recruiterID: uuid.New(), tenantID: uuid.New()}
	next := &stubConnection{recruiterID: uuid.New(), tenantID: previous.tenantID}

	hub := &stubHub{channels: map[string][]*stubConnection{
		application.RecruiterChannel(previous.recruiterID): {previous},
		application.RecruiterChannel(next.recruiterID):     {next},
	}}
	bus := setupHandler(t, hub)

	bus.Publish(candidate.ReassignedEvent{
		TenantID:            previous.tenantID,
		CandidateID:         uuid.New(),
		PreviousRecruiterID: previous.recruiterID,
		NewRecruiterID:      next.recruiterID,
		Reason:              "workload",
	})

	nextFrames := decodeFrames(t, next)
	require.Len(t, nextFrames, 1)
	require.Equal(t, "lead-assigned", nextFrames[0].Event)

	previousFrames := decodeFrames(t, previous)
	require.Len(t, previousFrames, 1)
	require.Equal(t, "lead-reassigned", previousFrames[0].Event)
}

func TestBroadcast_MovedRoutesByOwnership(t *testing.T) {
	tenantID := uuid.New()
	ownerID := uuid.New()
	owner := &stubConnection{recruiterID: ownerID, tenantID: tenantID}
	bystander := &stubConnection{recruiterID: uuid.New(), tenantID: tenantID}

	hub := &stubHub{channels: map[string][]*stubConnection{
		application.RecruiterChannel(ownerID): {owner},
		application.TenantChannel(tenantID):   {owner, bystander},
	}}
	bus := setupHandler(t, hub)

	// Owned candidate: only the owner hears about the move.
	bus.Publish(candidate.MovedEvent{
		TenantID:    tenantID,
		CandidateID: uuid.New(),
		StageID:     uuid.New(),
		MovedBy:     ownerID,
		OwnerID:     uuid.NullUUID{UUID: ownerID, Valid: true},
	})
	require.Len(t, owner.messages, 1)
	require.Empty(t, bystander.messages)

	// Pool candidate: the whole organization hears.
	bus.Publish(candidate.MovedEvent{
		TenantID:    tenantID,
		CandidateID: uuid.New(),
		StageID:     uuid.New(),
		MovedBy:     ownerID,
	})
	require.Len(t, owner.messages, 2)
	require.Len(t, bystander.messages, 1)
}

func TestBroadcast_SendFailureIsSwallowed(t *testing.T) {
	tenantID := uuid.New()
	dead := &stubConnection{recruiterID: uuid.New(), tenantID: tenantID, sendErr: ws.ErrSendBufferFull}
	live := &stubConnection{recruiterID: uuid.New(), tenantID: tenantID}

	hub := &stubHub{channels: map[string][]*stubConnection{
		application.TenantChannel(tenantID): {dead, live},
	}}
	bus := setupHandler(t, hub)

	// A dead subscriber never blocks delivery to the rest.
	bus.Publish(candidate.UnassignedEvent{
		TenantID:            tenantID,
		CandidateID:         uuid.New(),
		PreviousRecruiterID: uuid.New(),
	})

	require.Empty(t, dead.messages)
	require.Len(t, live.messages, 1)
	require.Equal(t, "candidate-pool-update", decodeFrames(t, live)[0].Event)
}

func TestBroadcast_BulkMovedGoesTenantWide(t *testing.T) {
	tenantID := uuid.New()
	one := &stubConnection{recruiterID: uuid.New(), tenantID: tenantID}
	two := &stubConnection{recruiterID: uuid.New(), tenantID: tenantID}

	hub := &stubHub{channels: map[string][]*stubConnection{
		application.TenantChannel(tenantID): {one, two},
	}}
	bus := setupHandler(t, hub)

	bus.Publish(candidate.BulkMovedEvent{
		TenantID:     tenantID,
		CandidateIDs: []uuid.UUID{uuid.New(), uuid.New()},
		StageID:      uuid.New(),
		MovedBy:      uuid.New(),
	})

	require.Len(t, one.messages, 1)
	require.Len(t, two.messages, 1)
	require.Equal(t, "pipeline-bulk-updated", decodeFrames(t, one)[0].Event)
}
