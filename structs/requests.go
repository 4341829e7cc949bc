package structs

type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ClassYear string `json:"classYear"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	ProfilePicture *string `json:"profilePicture"`
	Bio            *string `json:"bio"`
	ClassYear      *string `json:"classYear"`
}

type SubmitEvidenceRequest struct {
	ImageBase64 string `json:"imageBase64"`
	ImageURL    string `json:"imageUrl"`
}

type ReviewEvidenceRequest struct {
	Notes string `json:"notes"`
}

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type TeamMemberRequest struct {
	UserID int `json:"userId" binding:"required"`
}

type CreateChallengeRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Points      int     `json:"points" binding:"required,gt=0"`
	Category    string  `json:"category"`
	Difficulty  string  `json:"difficulty"`
	Duration    string  `json:"duration"`
	CO2Saved    float64 `json:"co2Saved" binding:"gte=0"`
}

type UpdateChallengeRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Points      *int     `json:"points"`
	Category    *string  `json:"category"`
	Difficulty  *string  `json:"difficulty"`
	Duration    *string  `json:"duration"`
	CO2Saved    *float64 `json:"co2Saved"`
}
