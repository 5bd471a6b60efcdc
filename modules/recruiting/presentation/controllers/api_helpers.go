package controllers

import (
	"errors"
	"net/http"

	"github.com/talentflowhq/talentflow/modules/recruiting/domain/aggregates/candidate"
	"github.com/talentflowhq/talentflow/modules/recruiting/domain/entities/position"
	"github.com/talentflowhq/talentflow/modules/recruiting/domain/entities/stage"
	"github.com/talentflowhq/talentflow/pkg/composables"
	"github.com/talentflowhq/talentflow/pkg/httpapi"
	"github.com/talentflowhq/talentflow/pkg/serrors"
)

// writeDomainError maps the domain taxonomy onto HTTP statuses. Absent
// and cross-tenant both land on 404 so existence never leaks.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, composables.ErrNoRecruiter), errors.Is(err, composables.ErrNoTenantID):
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
	case errors.Is(err, candidate.ErrNotFound),
		errors.Is(err, stage.ErrNotFound),
		errors.Is(err, position.ErrNotInPipeline):
		writeBaseError(w, http.StatusNotFound, err)
	case errors.Is(err, candidate.ErrAlreadyAssigned):
		writeBaseError(w, http.StatusConflict, err)
	case errors.Is(err, candidate.ErrNotOwned):
		writeBaseError(w, http.StatusForbidden, err)
	default:
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "TRANSACTION_FAILURE", "operation failed", nil)
	}
}

func writeBaseError(w http.ResponseWriter, status int, err error) {
	var base *serrors.BaseError
	if errors.As(err, &base) {
		_ = httpapi.WriteError(w, status, base.Code, base.Message, nil)
		return
	}
	_ = httpapi.WriteError(w, status, http.StatusText(status), err.Error(), nil)
}
