package models

import "time"

// Evidence submission lifecycle. Pending submissions transition exactly
// once to approved or rejected; both are terminal.
const (
	EvidencePending  = "pending"
	EvidenceApproved = "approved"
	EvidenceRejected = "rejected"
)

// ImageArchived replaces the raw image payload once a submission is
// reviewed. Raw bytes are not retained past decision time.
const ImageArchived = "[archived]"

// VerifierVerdict is the advisory result of the automated image check.
// It never awards points on its own; a human reviewer decides.
type VerifierVerdict struct {
	Approved   bool   `json:"approved"`
	Confidence string `json:"confidence"`
	Reason     string `json:"reason"`
}

// EvidenceSubmission is a user-provided proof artifact awaiting admin
// adjudication. Challenge name, points and CO2 are snapshotted at
// submission time so later catalog edits do not rescore it.
type EvidenceSubmission struct {
	ID            string           `json:"id"`
	UserID        int              `json:"userId"`
	Username      string           `json:"username"`
	ChallengeID   int              `json:"challengeId"`
	ChallengeName string           `json:"challengeName"`
	Points        int              `json:"points"`
	CO2Saved      float64          `json:"co2Saved"`
	Image         string           `json:"image"`
	Status        string           `json:"status"`
	AutoVerdict   *VerifierVerdict `json:"autoVerdict,omitempty"`
	SubmittedAt   time.Time        `json:"submittedAt"`
	ReviewedAt    *time.Time       `json:"reviewedAt,omitempty"`
	ReviewNotes   string           `json:"reviewNotes,omitempty"`
}
