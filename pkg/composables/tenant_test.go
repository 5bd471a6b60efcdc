package composables

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUseTenantID_Missing(t *testing.T) {
	_, err := UseTenantID(context.Background())
	require.ErrorIs(t, err, ErrNoTenantID)
}

func TestWithRecruiter_CarriesTenant(t *testing.T) {
	recruiter := &Recruiter{
		ID:       uuid.New(),
		TenantID: uuid.New(),
		Email:    "jordan@example.com",
		Role:     "recruiter",
	}
	ctx := WithRecruiter(context.Background(), recruiter)

	got, err := UseRecruiter(ctx)
	require.NoError(t, err)
	require.Equal(t, recruiter.ID, got.ID)

	tenantID, err := UseTenantID(ctx)
	require.NoError(t, err)
	require.Equal(t, recruiter.TenantID, tenantID)
}

func TestUseRecruiter_Missing(t *testing.T) {
	_, err := UseRecruiter(context.Background())
	require.ErrorIs(t, err, ErrNoRecruiter)
}
