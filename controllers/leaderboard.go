package controllers

import (
	"math"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"greengoals/models"
	"greengoals/store"
)

const leaderboardSize = 10

// GetLeaderboard returns the top users by points, descending. The sort
// is stable so tied users keep their registration order. All accounts
// rank; only the stats user count excludes admins.
func GetLeaderboard(c *gin.Context) {
	entries := []models.PublicUser{}
	err := appStore.View(func(db *store.Database) error {
		for i := range db.Users {
			entries = append(entries, db.Users[i].Public())
		}
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}
	c.JSON(http.StatusOK, entries)
}

// GetTeamLeaderboard returns the top teams by total points, descending.
func GetTeamLeaderboard(c *gin.Context) {
	teams := []teamView{}
	err := appStore.View(func(db *store.Database) error {
		for _, t := range db.Teams {
			teams = append(teams, teamView{Team: t, MemberCount: len(t.Members)})
		}
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].TotalPoints > teams[j].TotalPoints
	})
	if len(teams) > leaderboardSize {
		teams = teams[:leaderboardSize]
	}
	c.JSON(http.StatusOK, teams)
}

// GetStats returns platform-wide counters, recomputed per request.
func GetStats(c *gin.Context) {
	var (
		totalUsers     int
		totalCO2       float64
		totalCompleted int
		totalTeams     int
	)
	err := appStore.View(func(db *store.Database) error {
		for i := range db.Users {
			if db.Users[i].Role == models.RoleSuperAdmin {
				continue
			}
			totalUsers++
			totalCO2 += db.Users[i].TotalCO2Saved
			totalCompleted += len(db.Users[i].CompletedChallenges)
		}
		totalTeams = len(db.Teams)
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":               totalUsers,
		"totalCO2Saved":            math.Round(totalCO2*10) / 10,
		"totalChallengesCompleted": totalCompleted,
		"totalTeams":               totalTeams,
	})
}
