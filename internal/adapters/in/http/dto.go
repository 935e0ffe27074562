package http

// Request and response bodies for the stepper API. These are hand-written;
// the surface is small enough that generated bindings would cost more than
// they save.

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CurrentStageResponse describes where the flow sits for the calling actor.
type CurrentStageResponse struct {
	StageID       string   `json:"stage_id"`
	SequenceNo    int      `json:"sequence_no"`
	Role          string   `json:"role"`
	AllowedStages []string `json:"allowed_stages"`
}

// StageItemsResponse carries a sequential stage's item list.
type StageItemsResponse struct {
	StageID            string   `json:"stage_id"`
	Candidate          []string `json:"candidate"`
	PreviouslyAccepted []string `json:"previously_accepted"`
	Locked             bool     `json:"locked"`
	CanDecide          bool     `json:"can_decide"`
}

// ExceptionItemsResponse carries an exception view's complement keys.
type ExceptionItemsResponse struct {
	StageID string   `json:"stage_id"`
	Keys    []string `json:"keys"`
}

// DecisionRequest records an include/exclude decision over a stage's
// candidate set. Keys absent from Chosen are rejected.
type DecisionRequest struct {
	Chosen        []string `json:"chosen"`
	ActivateStage bool     `json:"activate_stage"`
}
