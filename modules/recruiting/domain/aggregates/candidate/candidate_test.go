package candidate_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/talentflowhq/talentflow/modules/recruiting/domain/aggregates/candidate"
)

func hydrate(recruiterID uuid.NullUUID) candidate.Candidate {
	now := time.Now()
	return candidate.Hydrate(
		uuid.New(),
		uuid.New(),
		recruiterID,
		"Jordan Reyes",
		"jordan@example.com",
		"Austin, TX",
		82,
		true,
		now,
		nil,
		now,
	)
}

func TestVisibility_Unassigned(t *testing.T) {
	v := candidate.Visibility(hydrate(uuid.NullUUID{}), uuid.New())

	require.Equal(t, candidate.StatusUnassigned, v.Status)
	require.True(t, v.CanAssign)
	require.False(t, v.CanReassign)
	require.False(t, v.IsMyCandidate)
}

func TestVisibility_OwnedByViewer(t *testing.T) {
	viewer := uuid.New()
	v := candidate.Visibility(hydrate(uuid.NullUUID{UUID: viewer, Valid: true}), viewer)

	require.Equal(t, candidate.StatusAssigned, v.Status)
	require.False(t, v.CanAssign)
	require.True(t, v.CanReassign)
	require.True(t, v.IsMyCandidate)
}

func TestVisibility_OwnedByOtherRecruiter(t *testing.T) {
	v := candidate.Visibility(hydrate(uuid.NullUUID{UUID: uuid.New(), Valid: true}), uuid.New())

	require.Equal(t, candidate.StatusOtherRecruiter, v.Status)
	require.False(t, v.CanAssign)
	require.False(t, v.CanReassign)
	require.False(t, v.IsMyCandidate)
}

func TestIsOwnedBy(t *testing.T) {
	owner := uuid.New()
	c := hydrate(uuid.NullUUID{UUID: owner, Valid: true})

	require.True(t, c.IsAssigned())
	require.True(t, c.IsOwnedBy(owner))
	require.False(t, c.IsOwnedBy(uuid.New()))
	require.False(t, hydrate(uuid.NullUUID{}).IsOwnedBy(owner))
}
