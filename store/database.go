package store

import (
	"time"

	"github.com/google/uuid"

	"greengoals/models"
)

// Database is the whole persisted document. Every mutation rewrites it
// in full; there is no partial update path.
type Database struct {
	Users           []models.User               `json:"users"`
	Challenges      []models.Challenge          `json:"challenges"`
	Teams           []models.Team               `json:"teams"`
	PendingEvidence []models.EvidenceSubmission `json:"pendingEvidence"`
}

func newDatabase() *Database {
	return &Database{
		Users:           []models.User{},
		Challenges:      []models.Challenge{},
		Teams:           []models.Team{},
		PendingEvidence: []models.EvidenceSubmission{},
	}
}

// normalize repairs nil slices after decoding an older or hand-edited file.
func (d *Database) normalize() {
	if d.Users == nil {
		d.Users = []models.User{}
	}
	if d.Challenges == nil {
		d.Challenges = []models.Challenge{}
	}
	if d.Teams == nil {
		d.Teams = []models.Team{}
	}
	if d.PendingEvidence == nil {
		d.PendingEvidence = []models.EvidenceSubmission{}
	}
	for i := range d.Users {
		if d.Users[i].ActiveChallenges == nil {
			d.Users[i].ActiveChallenges = []int{}
		}
		if d.Users[i].CompletedChallenges == nil {
			d.Users[i].CompletedChallenges = []int{}
		}
		if d.Users[i].Role == "" {
			d.Users[i].Role = models.RoleUser
		}
	}
	for i := range d.Teams {
		if d.Teams[i].Members == nil {
			d.Teams[i].Members = []int{}
		}
	}
}

// User returns the user with the given id, or nil.
func (d *Database) User(id int) *models.User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// UserByUsername returns the user with the given username, or nil.
func (d *Database) UserByUsername(username string) *models.User {
	for i := range d.Users {
		if d.Users[i].Username == username {
			return &d.Users[i]
		}
	}
	return nil
}

// UserByEmail returns the user with the given email, or nil.
func (d *Database) UserByEmail(email string) *models.User {
	for i := range d.Users {
		if d.Users[i].Email == email {
			return &d.Users[i]
		}
	}
	return nil
}

// Challenge returns the challenge with the given id, or nil.
func (d *Database) Challenge(id int) *models.Challenge {
	for i := range d.Challenges {
		if d.Challenges[i].ID == id {
			return &d.Challenges[i]
		}
	}
	return nil
}

// Team returns the team with the given id, or nil.
func (d *Database) Team(id int) *models.Team {
	for i := range d.Teams {
		if d.Teams[i].ID == id {
			return &d.Teams[i]
		}
	}
	return nil
}

// Evidence returns the submission with the given id, or nil.
func (d *Database) Evidence(id string) *models.EvidenceSubmission {
	for i := range d.PendingEvidence {
		if d.PendingEvidence[i].ID == id {
			return &d.PendingEvidence[i]
		}
	}
	return nil
}

// NextUserID is max(existing)+1, so a deletion can never hand a new
// registrant a surviving user's id (and with it their token identity).
func (d *Database) NextUserID() int {
	next := 1
	for i := range d.Users {
		if d.Users[i].ID >= next {
			next = d.Users[i].ID + 1
		}
	}
	return next
}

// NextTeamID is max(existing)+1 for the same reason: a deleted team
// must not alias a surviving one.
func (d *Database) NextTeamID() int {
	next := 1
	for i := range d.Teams {
		if d.Teams[i].ID >= next {
			next = d.Teams[i].ID + 1
		}
	}
	return next
}

// NextChallengeID is max(existing)+1, so deleting the highest-id
// challenge and creating a new one reuses that id. Inherited behavior,
// covered by a test rather than silently changed.
func (d *Database) NextChallengeID() int {
	next := 1
	for i := range d.Challenges {
		if d.Challenges[i].ID >= next {
			next = d.Challenges[i].ID + 1
		}
	}
	return next
}

// AcceptChallenge adds the challenge to the user's active set.
func (d *Database) AcceptChallenge(userID, challengeID int) (*models.Challenge, error) {
	user := d.User(userID)
	if user == nil {
		return nil, notFoundf("User not found")
	}
	challenge := d.Challenge(challengeID)
	if challenge == nil {
		return nil, notFoundf("Challenge not found")
	}
	if user.HasActive(challengeID) {
		return nil, validationf("Challenge already active")
	}
	if user.HasCompleted(challengeID) {
		return nil, validationf("Challenge already completed")
	}

	user.ActiveChallenges = append(user.ActiveChallenges, challengeID)
	return challenge, nil
}

// CompleteChallenge moves the challenge from the user's active to
// completed set exactly once, awarding the live catalog's points.
func (d *Database) CompleteChallenge(userID, challengeID int) (*models.User, *models.Challenge, error) {
	user := d.User(userID)
	if user == nil {
		return nil, nil, notFoundf("User not found")
	}
	challenge := d.Challenge(challengeID)
	if challenge == nil {
		return nil, nil, notFoundf("Challenge not found")
	}
	if !user.HasActive(challengeID) {
		return nil, nil, validationf("Challenge not active")
	}

	d.awardCompletion(user, challengeID, challenge.Points, challenge.CO2Saved)
	return user, challenge, nil
}

// awardCompletion applies the reward and propagates the point delta to
// the user's current team. Every scoring path goes through here, so
// the team ledger cannot drift.
func (d *Database) awardCompletion(user *models.User, challengeID, points int, co2 float64) {
	user.ActiveChallenges = removeID(user.ActiveChallenges, challengeID)
	user.CompletedChallenges = append(user.CompletedChallenges, challengeID)
	user.Points += points
	user.TotalCO2Saved += co2

	if user.TeamID != nil {
		if team := d.Team(*user.TeamID); team != nil {
			team.TotalPoints += points
		}
	}
}

// SubmitEvidence enqueues a pending submission, snapshotting the
// challenge reward so later catalog edits do not rescore it. A user may
// hold at most one pending submission per challenge; resolved
// submissions no longer block a fresh one.
func (d *Database) SubmitEvidence(userID, challengeID int, image string, verdict *models.VerifierVerdict) (*models.EvidenceSubmission, error) {
	user := d.User(userID)
	if user == nil {
		return nil, notFoundf("User not found")
	}
	challenge := d.Challenge(challengeID)
	if challenge == nil {
		return nil, notFoundf("Challenge not found")
	}
	if !user.HasActive(challengeID) {
		return nil, validationf("Challenge not in progress")
	}
	for i := range d.PendingEvidence {
		e := &d.PendingEvidence[i]
		if e.UserID == userID && e.ChallengeID == challengeID && e.Status == models.EvidencePending {
			return nil, validationf("Evidence already pending review for this challenge")
		}
	}

	submission := models.EvidenceSubmission{
		ID:            uuid.NewString(),
		UserID:        userID,
		Username:      user.Username,
		ChallengeID:   challengeID,
		ChallengeName: challenge.Name,
		Points:        challenge.Points,
		CO2Saved:      challenge.CO2Saved,
		Image:         image,
		Status:        models.EvidencePending,
		AutoVerdict:   verdict,
		SubmittedAt:   time.Now(),
	}
	d.PendingEvidence = append(d.PendingEvidence, submission)
	return &d.PendingEvidence[len(d.PendingEvidence)-1], nil
}

// ApproveEvidence resolves a pending submission, awarding the
// points/CO2 snapshotted at submission time rather than the live
// catalog's, then archives the image. Catalog edits or deletes after
// submission do not rescore the decision or block it.
func (d *Database) ApproveEvidence(evidenceID, notes string) (*models.EvidenceSubmission, error) {
	evidence := d.Evidence(evidenceID)
	if evidence == nil {
		return nil, notFoundf("Evidence not found")
	}
	if evidence.Status != models.EvidencePending {
		return nil, validationf("Evidence already reviewed")
	}
	user := d.User(evidence.UserID)
	if user == nil {
		return nil, notFoundf("User not found")
	}
	if !user.HasActive(evidence.ChallengeID) {
		return nil, validationf("Challenge not active")
	}

	d.awardCompletion(user, evidence.ChallengeID, evidence.Points, evidence.CO2Saved)
	resolveEvidence(evidence, models.EvidenceApproved, notes)
	return evidence, nil
}

// RejectEvidence resolves a pending submission without touching the
// user: the challenge stays active so they may resubmit.
func (d *Database) RejectEvidence(evidenceID, notes string) (*models.EvidenceSubmission, error) {
	evidence := d.Evidence(evidenceID)
	if evidence == nil {
		return nil, notFoundf("Evidence not found")
	}
	if evidence.Status != models.EvidencePending {
		return nil, validationf("Evidence already reviewed")
	}

	resolveEvidence(evidence, models.EvidenceRejected, notes)
	return evidence, nil
}

func resolveEvidence(evidence *models.EvidenceSubmission, status, notes string) {
	now := time.Now()
	evidence.Status = status
	evidence.ReviewedAt = &now
	evidence.ReviewNotes = notes
	evidence.Image = models.ImageArchived
}

// CreateTeam makes the user leader and sole member of a new team whose
// total starts at the creator's current points.
func (d *Database) CreateTeam(userID int, name, description string) (*models.Team, error) {
	user := d.User(userID)
	if user == nil {
		return nil, notFoundf("User not found")
	}
	if user.TeamID != nil {
		return nil, validationf("Already in a team")
	}

	team := models.Team{
		ID:          d.NextTeamID(),
		Name:        name,
		Description: description,
		LeaderID:    userID,
		Members:     []int{userID},
		TotalPoints: user.Points,
		CreatedAt:   time.Now(),
	}
	d.Teams = append(d.Teams, team)
	teamID := team.ID
	user.TeamID = &teamID
	return d.Team(teamID), nil
}

// JoinTeam transfers the joining user's accumulated points into the
// team total (merge-on-join), not just future earnings.
func (d *Database) JoinTeam(userID, teamID int) (*models.Team, error) {
	user := d.User(userID)
	if user == nil {
		return nil, notFoundf("User not found")
	}
	team := d.Team(teamID)
	if team == nil {
		return nil, notFoundf("Team not found")
	}
	if user.TeamID != nil {
		return nil, validationf("Already in a team")
	}

	team.Members = append(team.Members, userID)
	team.TotalPoints += user.Points
	id := teamID
	user.TeamID = &id
	return team, nil
}

// LeaveTeam subtracts the leaving user's points from the team total and
// clears their membership. Personal points are untouched.
func (d *Database) LeaveTeam(userID int) (*models.Team, error) {
	user := d.User(userID)
	if user == nil {
		return nil, notFoundf("User not found")
	}
	if user.TeamID == nil {
		return nil, validationf("Not in a team")
	}

	team := d.Team(*user.TeamID)
	d.detachFromTeam(user)
	return team, nil
}

// RemoveMember is the admin-initiated variant of leave. The leader
// cannot be removed without deleting the whole team.
func (d *Database) RemoveMember(teamID, userID int) (*models.Team, error) {
	team := d.Team(teamID)
	if team == nil {
		return nil, notFoundf("Team not found")
	}
	user := d.User(userID)
	if user == nil {
		return nil, notFoundf("User not found")
	}
	if user.TeamID == nil || *user.TeamID != teamID {
		return nil, validationf("User is not a member of this team")
	}
	if team.LeaderID == userID {
		return nil, validationf("Cannot remove the team leader; delete the team instead")
	}

	d.detachFromTeam(user)
	return team, nil
}

// AddMember is the admin-initiated variant of join.
func (d *Database) AddMember(teamID, userID int) (*models.Team, error) {
	return d.JoinTeam(userID, teamID)
}

// DeleteTeam removes the team and clears membership on every member.
// Members keep their personal points.
func (d *Database) DeleteTeam(teamID int) error {
	team := d.Team(teamID)
	if team == nil {
		return notFoundf("Team not found")
	}

	for i := range d.Users {
		if d.Users[i].TeamID != nil && *d.Users[i].TeamID == teamID {
			d.Users[i].TeamID = nil
		}
	}
	for i := range d.Teams {
		if d.Teams[i].ID == teamID {
			d.Teams = append(d.Teams[:i], d.Teams[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteUser removes a non-admin user, detaching them from their team
// first so the ledger stays consistent. A leader cannot leave their
// team behind, so deleting one deletes the team with them.
func (d *Database) DeleteUser(userID int) error {
	user := d.User(userID)
	if user == nil {
		return notFoundf("User not found")
	}
	if user.Role == models.RoleSuperAdmin {
		return validationf("Cannot delete admin user")
	}

	if user.TeamID != nil {
		if team := d.Team(*user.TeamID); team != nil && team.LeaderID == userID {
			d.DeleteTeam(team.ID)
		} else {
			d.detachFromTeam(user)
		}
	}
	for i := range d.Users {
		if d.Users[i].ID == userID {
			d.Users = append(d.Users[:i], d.Users[i+1:]...)
			break
		}
	}
	return nil
}

// detachFromTeam does the subtract-on-leave bookkeeping shared by
// leave, removal, and user deletion. The team may already be gone.
func (d *Database) detachFromTeam(user *models.User) {
	if user.TeamID == nil {
		return
	}
	if team := d.Team(*user.TeamID); team != nil {
		team.TotalPoints -= user.Points
		team.Members = removeID(team.Members, user.ID)
	}
	user.TeamID = nil
}

func removeID(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
