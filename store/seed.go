package store

import "greengoals/models"

// stockChallenges is the starter catalog for a fresh installation.
func stockChallenges() []models.Challenge {
	return []models.Challenge{
		{ID: 1, Name: "No plastic for 3 days", Description: "Avoid single-use plastics for 3 consecutive days", Points: 50, Category: "Reduce", Difficulty: "Medium", Duration: "3 days", CO2Saved: 2.5},
		{ID: 2, Name: "Plant a tree", Description: "Plant a tree in your community or backyard", Points: 100, Category: "Nature", Difficulty: "Hard", Duration: "1 day", CO2Saved: 22},
		{ID: 3, Name: "Bike to work", Description: "Use a bicycle instead of car for commuting", Points: 35, Category: "Transport", Difficulty: "Easy", Duration: "1 day", CO2Saved: 1.8},
		{ID: 4, Name: "Meatless Monday", Description: "Go vegetarian for an entire Monday", Points: 25, Category: "Food", Difficulty: "Easy", Duration: "1 day", CO2Saved: 3.6},
		{ID: 5, Name: "Zero waste week", Description: "Produce zero landfill waste for one week", Points: 150, Category: "Reduce", Difficulty: "Hard", Duration: "7 days", CO2Saved: 8.2},
		{ID: 6, Name: "Cold shower challenge", Description: "Take cold showers for 5 days to save energy", Points: 40, Category: "Energy", Difficulty: "Medium", Duration: "5 days", CO2Saved: 2.1},
	}
}
