package entity

type Outcome string

const (
	OutcomeSent      Outcome = "sent"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
	OutcomeDuplicate Outcome = "duplicate"
)

// Skip reasons.
const (
	ReasonUnknownCollection = "unknown_collection"
	ReasonMissingUserID     = "missing_user_id"
	ReasonUserNotFound      = "user_not_found"
	ReasonNoToken           = "no_token"
	ReasonNoTokens          = "no_tokens"
	ReasonAlreadyDispatched = "already_dispatched"
)

// DispatchResult describes what one trigger invocation did. Err is set only
// for OutcomeFailed.
type DispatchResult struct {
	Collection   string  `json:"collection"`
	DocumentID   string  `json:"document_id"`
	UserID       string  `json:"user_id,omitempty"`
	Mode         Mode    `json:"mode,omitempty"`
	Tag          string  `json:"tag,omitempty"`
	Outcome      Outcome `json:"outcome"`
	Reason       string  `json:"reason,omitempty"`
	Targeted     int     `json:"targeted"`
	SuccessCount int     `json:"success_count"`
	FailureCount int     `json:"failure_count"`
	MessageID    string  `json:"message_id,omitempty"`
	Error        string  `json:"error,omitempty"`
	Err          error   `json:"-"`
}

func (r DispatchResult) Skipped(reason string) DispatchResult {
	r.Outcome = OutcomeSkipped
	r.Reason = reason
	return r
}

func (r DispatchResult) Failed(err error) DispatchResult {
	r.Outcome = OutcomeFailed
	r.Err = err
	r.Error = err.Error()
	return r
}
