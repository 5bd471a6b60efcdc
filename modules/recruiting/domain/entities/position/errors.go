package position

import "github.com/talentflowhq/talentflow/pkg/serrors"

var ErrNotInPipeline = serrors.NewError("NOT_IN_PIPELINE", "Candidate has no pipeline position", "")
