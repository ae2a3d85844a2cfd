package handler

import (
	"net/http"
	"strconv"
	"time"

	"uniarena/backend/internal/bracket"
	"uniarena/backend/internal/database"
	"uniarena/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

type TournamentResponse struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	StartDate   time.Time    `json:"start_date"`
	EndDate     time.Time    `json:"end_date"`
	Status      string       `json:"status"`
	Game        GameResponse `json:"game"`
}

type TournamentJoinInput struct {
	Nickname string `json:"nickname" binding:"required"`
	Rank     string `json:"rank"`
}

type TournamentParticipantResponse struct {
	User            PublicUserResponse `json:"user"`
	ParticipantType string             `json:"participant_type"`
	JoinedAt        time.Time          `json:"joined_at"`
}

type MatchResponse struct {
	ID           uint              `json:"id"`
	Round        int               `json:"round"`
	MatchNumber  int               `json:"match_number"`
	Team1ID      *uint             `json:"team1_id,omitempty"`
	Team2ID      *uint             `json:"team2_id,omitempty"`
	User1ID      *uint             `json:"user1_id,omitempty"`
	User2ID      *uint             `json:"user2_id,omitempty"`
	Score        string            `json:"score,omitempty"`
	WinnerTeamID *uint             `json:"winner_team_id,omitempty"`
	Status       string            `json:"status"`
	Sets         []MatchSetResponse `json:"sets,omitempty"`
}

type MatchSetResponse struct {
	SetNumber    int    `json:"set_number"`
	Team1Score   int    `json:"team1_score"`
	Team2Score   int    `json:"team2_score"`
	WinnerTeamID *uint  `json:"winner_team_id,omitempty"`
	MapName      string `json:"map_name,omitempty"`
}

type MatchScoreInput struct {
	Score        string          `json:"score" binding:"required"`
	WinnerTeamID *uint           `json:"winner_team_id"`
	Sets         []MatchSetInput `json:"sets"`
}

type MatchSetInput struct {
	SetNumber    int    `json:"set_number" binding:"required"`
	Team1Score   int    `json:"team1_score"`
	Team2Score   int    `json:"team2_score"`
	WinnerTeamID *uint  `json:"winner_team_id"`
	MapName      string `json:"map_name"`
}

func newTournamentResponse(tournament models.Tournament) TournamentResponse {
	return TournamentResponse{
		ID:          tournament.ID,
		Name:        tournament.Name,
		Description: tournament.Description,
		StartDate:   tournament.StartDate,
		EndDate:     tournament.EndDate,
		Status:      tournament.Status,
		Game:        newGameResponse(tournament.Game),
	}
}

func newMatchResponse(match models.TournamentMatch) MatchResponse {
	sets := make([]MatchSetResponse, 0, len(match.Sets))
	for _, set := range match.Sets {
		sets = append(sets, MatchSetResponse{
			SetNumber:    set.SetNumber,
			Team1Score:   set.Team1Score,
			Team2Score:   set.Team2Score,
			WinnerTeamID: set.WinnerTeamID,
			MapName:      set.MapName,
		})
	}
	return MatchResponse{
		ID:           match.ID,
		Round:        match.Round,
		MatchNumber:  match.MatchNumber,
		Team1ID:      match.Team1ID,
		Team2ID:      match.Team2ID,
		User1ID:      match.User1ID,
		User2ID:      match.User2ID,
		Score:        match.Score,
		WinnerTeamID: match.WinnerTeamID,
		Status:       string(match.Status),
		Sets:         sets,
	}
}

// endregion

// GetTournaments godoc
// @Summary      List tournaments
// @Description  Gets tournaments that have not ended yet, ordered by start date, optionally filtered by game.
// @Tags         tournaments
// @Produce      json
// @Security     BearerAuth
// @Param        game_id query int false "Filter by Game ID"
// @Success      200 {array} TournamentResponse
// @Router       /tournaments [get]
func GetTournaments(c *gin.Context) {
	query := database.DB.Preload("Game").
		Where("end_date >= ?", time.Now()).
		Order("start_date")

	if gameID := c.Query("game_id"); gameID != "" {
		query = query.Where("game_id = ?", gameID)
	}

	var tournaments []models.Tournament
	if err := query.Find(&tournaments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tournaments"})
		return
	}

	response := make([]TournamentResponse, 0, len(tournaments))
	for _, tournament := range tournaments {
		response = append(response, newTournamentResponse(tournament))
	}

	c.JSON(http.StatusOK, response)
}

// GetTournamentByID godoc
// @Summary      Get a tournament by ID
// @Tags         tournaments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tournament ID"
// @Success      200 {object} TournamentResponse
// @Failure      404 {object} ErrorResponse "Tournament not found"
// @Router       /tournaments/{id} [get]
func GetTournamentByID(c *gin.Context) {
	tournamentID, _ := strconv.Atoi(c.Param("id"))

	var tournament models.Tournament
	if err := database.DB.Preload("Game").First(&tournament, tournamentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
		return
	}

	c.JSON(http.StatusOK, newTournamentResponse(tournament))
}

// GetTournamentParticipants godoc
// @Summary      List tournament participants
// @Tags         tournaments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tournament ID"
// @Success      200 {array} TournamentParticipantResponse
// @Router       /tournaments/{id}/participants [get]
func GetTournamentParticipants(c *gin.Context) {
	tournamentID, _ := strconv.Atoi(c.Param("id"))

	var participants []models.TournamentParticipant
	if err := database.DB.Preload("User").
		Where("tournament_id = ?", tournamentID).
		Order("joined_at ASC").
		Find(&participants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch participants"})
		return
	}

	response := make([]TournamentParticipantResponse, 0, len(participants))
	for _, participant := range participants {
		response = append(response, TournamentParticipantResponse{
			User:            buildPublicUserResponse(participant.User),
			ParticipantType: participant.ParticipantType,
			JoinedAt:        participant.JoinedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}

// JoinTournament godoc
// @Summary      Join a tournament
// @Description  Creates or updates the caller's game profile for the tournament's game, then registers them.
// @Tags         tournaments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int                 true "Tournament ID"
// @Param        input body TournamentJoinInput true "Game profile for the tournament's game"
// @Success      201 {object} map[string]string "{"message": "Joined tournament"}"
// @Failure      409 {object} ErrorResponse "Already registered"
// @Router       /tournaments/{id}/join [post]
func JoinTournament(c *gin.Context) {
	userID, _ := c.Get("userID")
	tournamentID, _ := strconv.Atoi(c.Param("id"))

	var tournament models.Tournament
	if err := database.DB.First(&tournament, tournamentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
		return
	}

	var input TournamentJoinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.TournamentParticipant
	if err := database.DB.Where("tournament_id = ? AND user_id = ?", tournamentID, userID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already registered for this tournament"})
		return
	}

	// Profile first, registration second. The two writes are sequential,
	// like every other multi-step mutation here.
	var profile models.GameProfile
	err := database.DB.Where("user_id = ? AND game_id = ?", userID, tournament.GameID).First(&profile).Error
	if err == nil {
		profile.Nickname = input.Nickname
		profile.Rank = input.Rank
		err = database.DB.Save(&profile).Error
	} else {
		profile = models.GameProfile{
			UserID:   userID.(uint),
			GameID:   tournament.GameID,
			Nickname: input.Nickname,
			Rank:     input.Rank,
		}
		err = database.DB.Create(&profile).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save game profile"})
		return
	}

	participant := models.TournamentParticipant{
		TournamentID:    uint(tournamentID),
		UserID:          userID.(uint),
		ParticipantType: "individual",
		JoinedAt:        time.Now(),
	}
	if err := database.DB.Create(&participant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join tournament"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Joined tournament"})
}

// LeaveTournament godoc
// @Summary      Leave a tournament
// @Tags         tournaments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tournament ID"
// @Success      200 {object} map[string]string "{"message": "Left tournament"}"
// @Failure      404 {object} ErrorResponse "Not registered"
// @Router       /tournaments/{id}/leave [post]
func LeaveTournament(c *gin.Context) {
	userID, _ := c.Get("userID")
	tournamentID, _ := strconv.Atoi(c.Param("id"))

	result := database.DB.Where("tournament_id = ? AND user_id = ?", tournamentID, userID).
		Delete(&models.TournamentParticipant{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave tournament"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not registered for this tournament"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left tournament"})
}

// GetTournamentLobbies godoc
// @Summary      List a tournament's open lobbies
// @Tags         tournaments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tournament ID"
// @Success      200 {array} LobbyResponse
// @Router       /tournaments/{id}/lobbies [get]
func GetTournamentLobbies(c *gin.Context) {
	tournamentID, _ := strconv.Atoi(c.Param("id"))

	lobbies, err := Membership.ListByTournament(uint(tournamentID))
	if err != nil {
		membershipError(c, err)
		return
	}

	response := make([]LobbyResponse, 0, len(lobbies))
	for _, lobby := range lobbies {
		response = append(response, newLobbyResponse(lobby))
	}

	c.JSON(http.StatusOK, response)
}

// GetTournamentBracket godoc
// @Summary      Get a tournament's bracket
// @Description  Gets all bracket matches ordered by round and match number, with the series format.
// @Tags         tournaments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tournament ID"
// @Success      200 {object} map[string]interface{}
// @Router       /tournaments/{id}/bracket [get]
func GetTournamentBracket(c *gin.Context) {
	tournamentID, _ := strconv.Atoi(c.Param("id"))

	var matches []models.TournamentMatch
	if err := database.DB.
		Preload("Sets", func(db *gorm.DB) *gorm.DB { return db.Order("set_number ASC") }).
		Where("tournament_id = ?", tournamentID).
		Order("round ASC").
		Order("match_number ASC").
		Find(&matches).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bracket"})
		return
	}

	var count int64
	database.DB.Model(&models.TournamentParticipant{}).
		Where("tournament_id = ?", tournamentID).Count(&count)

	response := make([]MatchResponse, 0, len(matches))
	for _, match := range matches {
		response = append(response, newMatchResponse(match))
	}

	c.JSON(http.StatusOK, gin.H{
		"format":  bracket.FormatFor(int(count)),
		"matches": response,
	})
}

// CreateTournamentBracket godoc
// @Summary      Generate a tournament's first round (Admin only)
// @Description  Seeds registered participants into first-round matches, padding the field with byes.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tournament ID"
// @Success      201 {object} map[string]interface{}
// @Failure      409 {object} ErrorResponse "Bracket already exists"
// @Router       /admin/tournaments/{id}/bracket [post]
func CreateTournamentBracket(c *gin.Context) {
	tournamentID, _ := strconv.Atoi(c.Param("id"))

	var existing int64
	database.DB.Model(&models.TournamentMatch{}).
		Where("tournament_id = ?", tournamentID).Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Bracket already exists"})
		return
	}

	var participants []models.TournamentParticipant
	if err := database.DB.Where("tournament_id = ?", tournamentID).
		Order("joined_at ASC").
		Find(&participants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch participants"})
		return
	}
	if len(participants) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least two participants are required"})
		return
	}

	positions := bracket.Positions(participants)
	matches := make([]models.TournamentMatch, 0, len(positions)/2)
	for i := 0; i < len(positions); i += 2 {
		match := models.TournamentMatch{
			TournamentID: uint(tournamentID),
			Round:        1,
			MatchNumber:  i/2 + 1,
			Status:       models.MatchScheduled,
		}
		if p := positions[i].Participant; p != nil {
			match.Team1ID = p.TeamID
			userID := p.UserID
			match.User1ID = &userID
		}
		if p := positions[i+1].Participant; p != nil {
			match.Team2ID = p.TeamID
			userID := p.UserID
			match.User2ID = &userID
		}
		matches = append(matches, match)
	}

	if err := database.DB.Create(&matches).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bracket"})
		return
	}

	response := make([]MatchResponse, 0, len(matches))
	for _, match := range matches {
		response = append(response, newMatchResponse(match))
	}

	c.JSON(http.StatusCreated, gin.H{
		"format":  bracket.FormatFor(len(participants)),
		"matches": response,
	})
}

// UpdateMatchScore godoc
// @Summary      Record a match result (Admin only)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        matchID path int             true "Match ID"
// @Param        input   body MatchScoreInput true "Result"
// @Success      200 {object} MatchResponse
// @Failure      404 {object} ErrorResponse "Match not found"
// @Router       /admin/matches/{matchID} [put]
func UpdateMatchScore(c *gin.Context) {
	matchID, _ := strconv.Atoi(c.Param("matchID"))

	var match models.TournamentMatch
	if err := database.DB.First(&match, matchID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
		return
	}

	var input MatchScoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match.Score = input.Score
	match.WinnerTeamID = input.WinnerTeamID
	match.Status = models.MatchCompleted

	if err := database.DB.Save(&match).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update match"})
		return
	}

	if len(input.Sets) > 0 {
		// Resubmitting a result replaces the recorded sets.
		database.DB.Where("match_id = ?", match.ID).Delete(&models.MatchSet{})
		sets := make([]models.MatchSet, 0, len(input.Sets))
		for _, set := range input.Sets {
			sets = append(sets, models.MatchSet{
				MatchID:      match.ID,
				SetNumber:    set.SetNumber,
				Team1Score:   set.Team1Score,
				Team2Score:   set.Team2Score,
				WinnerTeamID: set.WinnerTeamID,
				MapName:      set.MapName,
			})
		}
		if err := database.DB.Create(&sets).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sets"})
			return
		}
		match.Sets = sets
	}

	c.JSON(http.StatusOK, newMatchResponse(match))
}
