package models

import "time"

// Team groups users under a leader and keeps a running point total.
// TotalPoints is maintained incrementally: member points transfer in on
// join and out on leave, and challenge completions add the reward to the
// member's current team. It is never recomputed from scratch.
type Team struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	LeaderID    int       `json:"leaderId"`
	Members     []int     `json:"members"`
	TotalPoints int       `json:"totalPoints"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasMember reports whether the user belongs to the team.
func (t *Team) HasMember(userID int) bool {
	for _, id := range t.Members {
		if id == userID {
			return true
		}
	}
	return false
}
