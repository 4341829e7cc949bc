package store

import (
	"errors"
	"path/filepath"
	"testing"

	"greengoals/models"
)

func newTestDB() *Database {
	db := newDatabase()
	db.Challenges = stockChallenges()
	return db
}

func addUser(db *Database, username string, points int) *models.User {
	user := models.User{
		ID:                  db.NextUserID(),
		Username:            username,
		Email:               username + "@example.com",
		Points:              points,
		ActiveChallenges:    []int{},
		CompletedChallenges: []int{},
		Role:                models.RoleUser,
	}
	db.Users = append(db.Users, user)
	return db.User(user.ID)
}

func assertDisjointSets(t *testing.T, user *models.User) {
	t.Helper()
	for _, id := range user.ActiveChallenges {
		if user.HasCompleted(id) {
			t.Errorf("challenge %d is both active and completed", id)
		}
	}
}

func isValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func isNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}

func TestAcceptAndCompleteChallenge(t *testing.T) {
	db := newTestDB()
	user := addUser(db, "alice", 0)

	if _, err := db.AcceptChallenge(user.ID, 1); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if !user.HasActive(1) {
		t.Fatal("challenge 1 should be active")
	}

	u, ch, err := db.CompleteChallenge(user.ID, 1)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if u.HasActive(1) || !u.HasCompleted(1) {
		t.Error("challenge 1 should have moved from active to completed")
	}
	if u.Points != ch.Points {
		t.Errorf("points = %d, want %d", u.Points, ch.Points)
	}
	if u.TotalCO2Saved != ch.CO2Saved {
		t.Errorf("totalCO2Saved = %v, want %v", u.TotalCO2Saved, ch.CO2Saved)
	}
	assertDisjointSets(t, u)

	// A second completion must be rejected and award nothing.
	if _, _, err := db.CompleteChallenge(user.ID, 1); !isValidation(err) {
		t.Errorf("second complete: got %v, want validation error", err)
	}
	if user.Points != ch.Points {
		t.Errorf("points changed on rejected completion: %d", user.Points)
	}
}

func TestAcceptChallengeRejectsDuplicates(t *testing.T) {
	db := newTestDB()
	user := addUser(db, "alice", 0)

	if _, err := db.AcceptChallenge(user.ID, 2); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, err := db.AcceptChallenge(user.ID, 2); !isValidation(err) {
		t.Errorf("accepting an active challenge: got %v, want validation error", err)
	}

	if _, _, err := db.CompleteChallenge(user.ID, 2); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if _, err := db.AcceptChallenge(user.ID, 2); !isValidation(err) {
		t.Errorf("accepting a completed challenge: got %v, want validation error", err)
	}

	if _, err := db.AcceptChallenge(user.ID, 999); !isNotFound(err) {
		t.Errorf("accepting unknown challenge: got %v, want not-found error", err)
	}
}

func TestEvidencePendingGuard(t *testing.T) {
	db := newTestDB()
	user := addUser(db, "alice", 0)
	db.AcceptChallenge(user.ID, 1)

	if _, err := db.SubmitEvidence(user.ID, 1, "img-1", nil); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if _, err := db.SubmitEvidence(user.ID, 1, "img-2", nil); !isValidation(err) {
		t.Errorf("duplicate pending submission: got %v, want validation error", err)
	}

	// A pending submission for a different challenge is fine.
	db.AcceptChallenge(user.ID, 2)
	if _, err := db.SubmitEvidence(user.ID, 2, "img-3", nil); err != nil {
		t.Errorf("submission for a different challenge failed: %v", err)
	}

	// Once the first is rejected, a fresh submission goes through.
	first := db.PendingEvidence[0]
	if _, err := db.RejectEvidence(first.ID, "blurry"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, err := db.SubmitEvidence(user.ID, 1, "img-4", nil); err != nil {
		t.Errorf("resubmission after rejection failed: %v", err)
	}
}

func TestApproveEvidenceAwardsExactlyOnce(t *testing.T) {
	db := newTestDB()
	user := addUser(db, "alice", 0)
	team, err := db.CreateTeam(user.ID, "Greens", "")
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}
	db.AcceptChallenge(user.ID, 1)
	challenge := db.Challenge(1)

	submitted, err := db.SubmitEvidence(user.ID, 1, "img", nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	approved, err := db.ApproveEvidence(submitted.ID, "looks good")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != models.EvidenceApproved {
		t.Errorf("status = %q, want approved", approved.Status)
	}
	if approved.ReviewedAt == nil {
		t.Error("reviewedAt not stamped")
	}
	if approved.Image != models.ImageArchived {
		t.Errorf("image = %q, want archived placeholder", approved.Image)
	}
	if user.Points != challenge.Points {
		t.Errorf("points = %d, want %d", user.Points, challenge.Points)
	}
	if user.TotalCO2Saved != challenge.CO2Saved {
		t.Errorf("totalCO2Saved = %v, want %v", user.TotalCO2Saved, challenge.CO2Saved)
	}
	if !user.HasCompleted(1) || user.HasActive(1) {
		t.Error("challenge should have moved to completed")
	}
	if team.TotalPoints != challenge.Points {
		t.Errorf("team totalPoints = %d, want %d", team.TotalPoints, challenge.Points)
	}

	// Approved is terminal.
	if _, err := db.ApproveEvidence(submitted.ID, "again"); !isValidation(err) {
		t.Errorf("re-approve: got %v, want validation error", err)
	}
	if _, err := db.RejectEvidence(submitted.ID, "flip"); !isValidation(err) {
		t.Errorf("reject after approve: got %v, want validation error", err)
	}
	if user.Points != challenge.Points {
		t.Errorf("points awarded more than once: %d", user.Points)
	}
}

func TestRejectEvidenceKeepsChallengeActive(t *testing.T) {
	db := newTestDB()
	user := addUser(db, "alice", 0)
	db.AcceptChallenge(user.ID, 3)

	submitted, err := db.SubmitEvidence(user.ID, 3, "img", nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	rejected, err := db.RejectEvidence(submitted.ID, "not a bike")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != models.EvidenceRejected {
		t.Errorf("status = %q, want rejected", rejected.Status)
	}
	if rejected.ReviewNotes != "not a bike" {
		t.Errorf("notes = %q", rejected.ReviewNotes)
	}
	if rejected.Image != models.ImageArchived {
		t.Errorf("image = %q, want archived placeholder", rejected.Image)
	}
	if !user.HasActive(3) {
		t.Error("challenge should remain active after rejection")
	}
	if user.Points != 0 {
		t.Errorf("rejection awarded points: %d", user.Points)
	}
}

func TestEvidenceSnapshotSurvivesCatalogEdit(t *testing.T) {
	db := newTestDB()
	user := addUser(db, "alice", 0)
	db.AcceptChallenge(user.ID, 1)

	submitted, err := db.SubmitEvidence(user.ID, 1, "img", nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submitted.Points != 50 || submitted.ChallengeName != "No plastic for 3 days" {
		t.Errorf("snapshot = %d/%q", submitted.Points, submitted.ChallengeName)
	}

	db.Challenge(1).Points = 500
	if db.Evidence(submitted.ID).Points != 50 {
		t.Error("snapshot rescored by catalog edit")
	}
}

func TestApproveEvidenceAwardsSubmissionSnapshot(t *testing.T) {
	db := newTestDB()
	user := addUser(db, "alice", 0)
	team, _ := db.CreateTeam(user.ID, "Greens", "")
	db.AcceptChallenge(user.ID, 1)

	submitted, err := db.SubmitEvidence(user.ID, 1, "img", nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// A catalog edit while the submission is pending must not rescore it.
	db.Challenge(1).Points = 500
	db.Challenge(1).CO2Saved = 99

	if _, err := db.ApproveEvidence(submitted.ID, ""); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if user.Points != 50 {
		t.Errorf("points = %d, want snapshot 50", user.Points)
	}
	if user.TotalCO2Saved != 2.5 {
		t.Errorf("totalCO2Saved = %v, want snapshot 2.5", user.TotalCO2Saved)
	}
	if team.TotalPoints != 50 {
		t.Errorf("team totalPoints = %d, want snapshot 50", team.TotalPoints)
	}
}

func TestApproveEvidenceSurvivesChallengeDelete(t *testing.T) {
	db := newTestDB()
	user := addUser(db, "alice", 0)
	db.AcceptChallenge(user.ID, 1)

	submitted, err := db.SubmitEvidence(user.ID, 1, "img", nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Deleting the challenge must not leave the submission stuck pending.
	for i := range db.Challenges {
		if db.Challenges[i].ID == 1 {
			db.Challenges = append(db.Challenges[:i], db.Challenges[i+1:]...)
			break
		}
	}

	approved, err := db.ApproveEvidence(submitted.ID, "")
	if err != nil {
		t.Fatalf("approve after catalog delete failed: %v", err)
	}
	if approved.Status != models.EvidenceApproved {
		t.Errorf("status = %q, want approved", approved.Status)
	}
	if user.Points != 50 {
		t.Errorf("points = %d, want snapshot 50", user.Points)
	}
	if !user.HasCompleted(1) || user.HasActive(1) {
		t.Error("challenge should have moved to completed")
	}
}

func TestTeamJoinLeaveRoundTrip(t *testing.T) {
	db := newTestDB()
	leader := addUser(db, "leader", 100)
	joiner := addUser(db, "joiner", 0)

	team, err := db.CreateTeam(leader.ID, "Greens", "campus team")
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}
	if team.TotalPoints != 100 {
		t.Fatalf("initial totalPoints = %d, want creator's 100", team.TotalPoints)
	}

	// Zero-point joiner leaves the total unchanged.
	if _, err := db.JoinTeam(joiner.ID, team.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if team.TotalPoints != 100 {
		t.Errorf("totalPoints after 0-point join = %d, want 100", team.TotalPoints)
	}

	// Completing a 50-point challenge while on the team propagates.
	db.AcceptChallenge(joiner.ID, 1)
	if _, _, err := db.CompleteChallenge(joiner.ID, 1); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if joiner.Points != 50 {
		t.Errorf("joiner points = %d, want 50", joiner.Points)
	}
	if team.TotalPoints != 150 {
		t.Errorf("totalPoints after completion = %d, want 150", team.TotalPoints)
	}

	// Leaving subtracts the member's current points.
	if _, err := db.LeaveTeam(joiner.ID); err != nil {
		t.Fatalf("leave failed: %v", err)
	}
	if team.TotalPoints != 100 {
		t.Errorf("totalPoints after leave = %d, want 100", team.TotalPoints)
	}
	if joiner.Points != 50 {
		t.Errorf("leave changed personal points: %d", joiner.Points)
	}
	if joiner.TeamID != nil {
		t.Error("teamId not cleared")
	}
	if team.HasMember(joiner.ID) {
		t.Error("member list not updated")
	}
}

func TestJoinTeamGuards(t *testing.T) {
	db := newTestDB()
	leader := addUser(db, "leader", 0)
	other := addUser(db, "other", 0)
	team, _ := db.CreateTeam(leader.ID, "Greens", "")

	if _, err := db.JoinTeam(leader.ID, team.ID); !isValidation(err) {
		t.Errorf("joining while on a team: got %v, want validation error", err)
	}
	if _, err := db.JoinTeam(other.ID, 999); !isNotFound(err) {
		t.Errorf("joining unknown team: got %v, want not-found error", err)
	}
	if _, err := db.LeaveTeam(other.ID); !isValidation(err) {
		t.Errorf("leaving without a team: got %v, want validation error", err)
	}
}

func TestRemoveMemberLeaderGuard(t *testing.T) {
	db := newTestDB()
	leader := addUser(db, "leader", 10)
	member := addUser(db, "member", 20)
	team, _ := db.CreateTeam(leader.ID, "Greens", "")
	db.JoinTeam(member.ID, team.ID)

	if _, err := db.RemoveMember(team.ID, leader.ID); !isValidation(err) {
		t.Errorf("removing the leader: got %v, want validation error", err)
	}

	if _, err := db.RemoveMember(team.ID, member.ID); err != nil {
		t.Fatalf("remove member failed: %v", err)
	}
	if team.TotalPoints != 10 {
		t.Errorf("totalPoints after removal = %d, want 10", team.TotalPoints)
	}
	if member.TeamID != nil {
		t.Error("removed member still has teamId")
	}
}

func TestDeleteTeamClearsMemberships(t *testing.T) {
	db := newTestDB()
	leader := addUser(db, "leader", 10)
	member := addUser(db, "member", 20)
	team, _ := db.CreateTeam(leader.ID, "Greens", "")
	db.JoinTeam(member.ID, team.ID)

	if err := db.DeleteTeam(team.ID); err != nil {
		t.Fatalf("delete team failed: %v", err)
	}
	if db.Team(team.ID) != nil {
		t.Error("team still present")
	}
	if leader.TeamID != nil || member.TeamID != nil {
		t.Error("memberships not cleared")
	}
	if leader.Points != 10 || member.Points != 20 {
		t.Error("team deletion changed personal points")
	}
}

func TestDeleteUserDetachesFromTeam(t *testing.T) {
	db := newTestDB()
	leader := addUser(db, "leader", 10)
	member := addUser(db, "member", 20)
	team, _ := db.CreateTeam(leader.ID, "Greens", "")
	db.JoinTeam(member.ID, team.ID)

	if err := db.DeleteUser(member.ID); err != nil {
		t.Fatalf("delete user failed: %v", err)
	}
	if db.User(member.ID) != nil {
		t.Error("user still present")
	}
	if team.TotalPoints != 10 {
		t.Errorf("totalPoints after user deletion = %d, want 10", team.TotalPoints)
	}
	if team.HasMember(member.ID) {
		t.Error("deleted user still on member list")
	}

	admin := addUser(db, "root", 0)
	admin.Role = models.RoleSuperAdmin
	if err := db.DeleteUser(admin.ID); !isValidation(err) {
		t.Errorf("deleting an admin: got %v, want validation error", err)
	}
}

func TestDeleteLeaderDeletesTeam(t *testing.T) {
	db := newTestDB()
	leader := addUser(db, "leader", 10)
	member := addUser(db, "member", 20)
	team, _ := db.CreateTeam(leader.ID, "Greens", "")
	db.JoinTeam(member.ID, team.ID)

	if err := db.DeleteUser(leader.ID); err != nil {
		t.Fatalf("delete leader failed: %v", err)
	}
	if db.Team(team.ID) != nil {
		t.Error("leaderless team left behind")
	}
	if member.TeamID != nil {
		t.Error("membership not cleared")
	}
	if member.Points != 20 {
		t.Errorf("team deletion changed personal points: %d", member.Points)
	}
}

// Deleting an entity must never free an id that a surviving entity
// still holds: a new registrant aliasing an old user's id would
// inherit their token identity, and a duplicated team id corrupts the
// ledger through lookups.
func TestUserIDsSurviveDeletes(t *testing.T) {
	db := newTestDB()
	addUser(db, "u1", 0)
	addUser(db, "u2", 0)
	u3 := addUser(db, "u3", 0)

	if err := db.DeleteUser(1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := db.NextUserID(); got == u3.ID {
		t.Fatalf("NextUserID = %d, collides with surviving user %q", got, u3.Username)
	}
	if got := db.NextUserID(); got != 4 {
		t.Errorf("NextUserID = %d, want 4", got)
	}
}

func TestTeamIDsSurviveDeletes(t *testing.T) {
	db := newTestDB()
	a := addUser(db, "a", 0)
	b := addUser(db, "b", 0)
	c := addUser(db, "c", 0)
	t1, _ := db.CreateTeam(a.ID, "T1", "")
	t2, _ := db.CreateTeam(b.ID, "T2", "")

	if err := db.DeleteTeam(t1.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	t3, err := db.CreateTeam(c.ID, "T3", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if t3.ID == t2.ID {
		t.Fatalf("duplicate team id %d shared by %q and %q", t3.ID, t3.Name, t2.Name)
	}
	if got := db.Team(t2.ID).Name; got != "T2" {
		t.Errorf("Team(%d) resolves to %q, want T2", t2.ID, got)
	}
}

// Deleting the highest-id challenge frees its id for the next create.
// Inherited behavior, asserted so a change to it is deliberate.
func TestChallengeIDReuseAfterDeletingMax(t *testing.T) {
	db := newTestDB()
	if got := db.NextChallengeID(); got != 7 {
		t.Fatalf("NextChallengeID = %d, want 7", got)
	}

	for i := range db.Challenges {
		if db.Challenges[i].ID == 6 {
			db.Challenges = append(db.Challenges[:i], db.Challenges[i+1:]...)
			break
		}
	}
	if got := db.NextChallengeID(); got != 6 {
		t.Errorf("NextChallengeID after deleting max = %d, want reused 6", got)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")

	st, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := st.Seed(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	err = st.Update(func(db *Database) error {
		addUser(db, "alice", 0)
		_, err := db.AcceptChallenge(1, 1)
		return err
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	err = reopened.View(func(db *Database) error {
		if len(db.Challenges) != 6 {
			t.Errorf("challenges = %d, want 6", len(db.Challenges))
		}
		user := db.UserByUsername("alice")
		if user == nil {
			t.Fatal("alice not persisted")
		}
		if !user.HasActive(1) {
			t.Error("active challenge not persisted")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
}

func TestFailedUpdateIsNotPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := st.Seed(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	err = st.Update(func(db *Database) error {
		addUser(db, "ghost", 0)
		return validationf("boom")
	})
	if !isValidation(err) {
		t.Fatalf("got %v, want validation error", err)
	}

	st.View(func(db *Database) error {
		if db.UserByUsername("ghost") != nil {
			t.Error("failed update leaked to disk")
		}
		return nil
	})
}

func TestSeedIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := st.Seed(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := st.Seed(); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	st.View(func(db *Database) error {
		if len(db.Challenges) != 6 {
			t.Errorf("challenges = %d, want 6", len(db.Challenges))
		}
		return nil
	})
}
