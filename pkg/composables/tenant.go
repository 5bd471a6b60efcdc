package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/talentflowhq/talentflow/pkg/constants"
)

var (
	ErrNoTenantID  = errors.New("no organization id found in context")
	ErrNoRecruiter = errors.New("no recruiter found in context")
)

// Recruiter is the authenticated principal. It is derived from the
// validated session by the auth middleware and never from request input.
type Recruiter struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Email    string
	Name     string
	Role     string
}

func WithTenantID(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.TenantIDKey, tenantID)
}

// UseTenantID returns the caller's organization id. Every read and
// write path resolves scope through this; absence is an authorization
// failure, not a fallback to "all tenants".
func UseTenantID(ctx context.Context) (uuid.UUID, error) {
	tenantID, ok := ctx.Value(constants.TenantIDKey).(uuid.UUID)
	if !ok || tenantID == uuid.Nil {
		return uuid.Nil, ErrNoTenantID
	}
	return tenantID, nil
}

func WithRecruiter(ctx context.Context, r *Recruiter) context.Context {
	ctx = context.WithValue(ctx, constants.RecruiterKey, r)
	return WithTenantID(ctx, r.TenantID)
}

func UseRecruiter(ctx context.Context) (*Recruiter, error) {
	r, ok := ctx.Value(constants.RecruiterKey).(*Recruiter)
	if !ok || r == nil {
		return nil, ErrNoRecruiter
	}
	return r, nil
}
