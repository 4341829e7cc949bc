package models

// Challenge is a defined eco-action with a point and CO2 reward
type Challenge struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Points      int     `json:"points"`
	Category    string  `json:"category"`
	Difficulty  string  `json:"difficulty"`
	Duration    string  `json:"duration"`
	CO2Saved    float64 `json:"co2Saved"`
}
