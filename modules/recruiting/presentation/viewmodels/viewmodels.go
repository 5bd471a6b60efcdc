package viewmodels

type Stage struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	OrderPosition int    `json:"orderPosition"`
	Color         string `json:"color"`
}

type Candidate struct {
	ID                  string  `json:"id"`
	RecruiterID         *string `json:"recruiterId"`
	Name                string  `json:"name"`
	Email               string  `json:"email"`
	Location            string  `json:"location"`
	Score               int     `json:"score"`
	AssessmentCompleted bool    `json:"assessmentCompleted"`
	AssignmentStatus    string  `json:"assignmentStatus"`
	CanAssign           bool    `json:"canAssign"`
	CanReassign         bool    `json:"canReassign"`
	IsMyCandidate       bool    `json:"isMyCandidate"`
	CreatedAt           string  `json:"createdAt"`
	AssignedAt          *string `json:"assignedAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

type Assessment struct {
	Status               string `json:"status"`
	CompletionPercentage int    `json:"completionPercentage"`
	CulturalFitScore     int    `json:"culturalFitScore"`
	TopStrength          string `json:"topStrength"`
}

// PipelineCard is one candidate on the board: identity plus current
// position and the joined assessment summary.
type PipelineCard struct {
	Candidate
	StageID    string     `json:"stageId"`
	MovedBy    string     `json:"movedBy"`
	MovedAt    string     `json:"movedAt"`
	Notes      string     `json:"notes"`
	Assessment Assessment `json:"assessment"`
}

type StageColumn struct {
	Stage      Stage          `json:"stage"`
	Candidates []PipelineCard `json:"candidates"`
}

type PipelineView struct {
	Stages []StageColumn `json:"stages"`
}

type AssignmentLogEntry struct {
	ID                  int64   `json:"id"`
	CandidateID         string  `json:"candidateId"`
	RecruiterID         *string `json:"recruiterId"`
	PreviousRecruiterID *string `json:"previousRecruiterId"`
	Action              string  `json:"action"`
	Reason              string  `json:"reason,omitempty"`
	CreatedAt           string  `json:"createdAt"`
}
