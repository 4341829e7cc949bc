package models

import "time"

// User defines a registered participant
type User struct {
	ID                  int       `json:"id"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	Password            string    `json:"password"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	ClassYear           string    `json:"classYear"`
	ProfilePicture      string    `json:"profilePicture"`
	Bio                 string    `json:"bio"`
	Points              int       `json:"points"`
	TotalCO2Saved       float64   `json:"totalCO2Saved"`
	ActiveChallenges    []int     `json:"activeChallenges"`
	CompletedChallenges []int     `json:"completedChallenges"`
	TeamID              *int      `json:"teamId"`
	Role                string    `json:"role"`
	JoinedAt            time.Time `json:"joinedAt"`
}

// Roles a user can hold. New registrations are always RoleUser.
const (
	RoleUser       = "user"
	RoleSuperAdmin = "super_admin"
)

// PublicUser is the password-free projection returned by listing endpoints.
type PublicUser struct {
	ID                  int     `json:"id"`
	Username            string  `json:"username"`
	FirstName           string  `json:"firstName"`
	LastName            string  `json:"lastName"`
	ClassYear           string  `json:"classYear"`
	ProfilePicture      string  `json:"profilePicture"`
	Bio                 string  `json:"bio"`
	Points              int     `json:"points"`
	TotalCO2Saved       float64 `json:"totalCO2Saved"`
	CompletedChallenges int     `json:"completedChallenges"`
	TeamID              *int    `json:"teamId"`
}

// Public strips credentials and collapses challenge sets to counts.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:                  u.ID,
		Username:            u.Username,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		ClassYear:           u.ClassYear,
		ProfilePicture:      u.ProfilePicture,
		Bio:                 u.Bio,
		Points:              u.Points,
		TotalCO2Saved:       u.TotalCO2Saved,
		CompletedChallenges: len(u.CompletedChallenges),
		TeamID:              u.TeamID,
	}
}

// HasActive reports whether the challenge is in the user's active set.
func (u *User) HasActive(challengeID int) bool {
	for _, id := range u.ActiveChallenges {
		if id == challengeID {
			return true
		}
	}
	return false
}

// HasCompleted reports whether the challenge is in the user's completed set.
func (u *User) HasCompleted(challengeID int) bool {
	for _, id := range u.CompletedChallenges {
		if id == challengeID {
			return true
		}
	}
	return false
}
