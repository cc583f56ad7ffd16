package checkout

// Status represents where a checkout attempt is in its lifecycle
type Status string

const (
	StatusCollectingContact Status = "COLLECTING_CONTACT"
	StatusSelectingAddress  Status = "SELECTING_ADDRESS"
	StatusReadyToSubmit     Status = "READY_TO_SUBMIT"
	StatusSubmitting        Status = "SUBMITTING"
	StatusSucceeded         Status = "SUCCEEDED"
	StatusFailed            Status = "FAILED"
)

// IsTerminal returns true for the end states of an attempt
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}
