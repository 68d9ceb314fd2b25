package models

// FailedAttachment names an attachment that could not be unlocked or parsed,
// with a human-readable reason. Failures are reported per attachment so one
// bad document never aborts a batch.
type FailedAttachment struct {
	Filename string
	Reason   string
}

// StatementSyncResult summarizes a statement-ingestion run. The counts let a
// caller distinguish "nothing found" from "found but failed" from "found and
// succeeded".
type StatementSyncResult struct {
	MessagesFound        int
	AttachmentsFound     int
	AttachmentsProcessed int
	TransactionsFound    int
	Failed               []FailedAttachment
	Candidates           []TransactionCandidate
	Recurrences          []RecurrenceGroup
}

// SMSSyncResult summarizes an SMS-ingestion run.
type SMSSyncResult struct {
	MessagesSubmitted    int
	TransactionsFound    int
	DuplicatesSuppressed int
	Candidates           []TransactionCandidate
	Recurrences          []RecurrenceGroup
}
