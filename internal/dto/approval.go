package dto

// RejectEntryRequest carries the mandatory reason for a rejection.
type RejectEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// SubmitTimesheetRequest identifies the day being submitted.
type SubmitTimesheetRequest struct {
	WorkDate string `json:"workDate" binding:"required,datetime=2006-01-02"`
}

// SubmitResult reports the outcome of a submission. Warnings list outstanding
// deadline tasks for the day; they never block the submission.
type SubmitResult struct {
	Submitted      bool                  `json:"submitted"`
	EntriesUpdated int                   `json:"entriesUpdated"`
	Warnings       []PendingTaskResponse `json:"warnings,omitempty"`
}

// BlockingSettingDTO is the wire shape of the process-wide blocking flag.
type BlockingSettingDTO struct {
	BlockingEnabled bool `json:"blockingEnabled"`
}
