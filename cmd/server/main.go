package main

import (
	"fmt"
	"log"
	"net/http"

	"uniarena/backend/internal/auth"
	"uniarena/backend/internal/config"
	"uniarena/backend/internal/database"
	"uniarena/backend/internal/handler"
	"uniarena/backend/internal/hub"
	"uniarena/backend/internal/membership"
	"uniarena/backend/internal/worker"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "uniarena/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           UniArena API
// @version         1.0
// @description     This is the API for the UniArena service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// Wire the lobby membership workflow
	store := membership.NewGormStore(database.DB)
	notifier := membership.NewHubNotifier(store, hub.GlobalHub)
	handler.Membership = membership.NewService(store, notifier)

	// Background reconciler for interrupted multi-step mutations
	if _, err := worker.NewReconciler(database.DB).Start(); err != nil {
		log.Fatalf("Failed to start reconciler: %v", err)
	}

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", handler.SearchUsers) // Must be before /:id
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.GET("/me/game-profiles", handler.GetMyGameProfiles)
			userRoutes.PUT("/me/game-profiles", handler.UpsertGameProfile)
			userRoutes.DELETE("/me/game-profiles/:gameID", handler.DeleteGameProfile)
			userRoutes.GET("/me/invitations", handler.GetMyInvitations)
			userRoutes.GET("/me/team", handler.GetMyTeam)
			userRoutes.GET("/:id", handler.GetUserByID)
			userRoutes.GET("/:id/team", handler.GetUserTeam)
		}

		// Game routes (public catalog, token picked up if present)
		gameRoutes := apiV1.Group("/games")
		gameRoutes.Use(auth.OptionalAuthMiddleware())
		{
			gameRoutes.GET("", handler.GetGames)
			gameRoutes.GET("/:id", handler.GetGameByID)
		}

		// Tournament routes (protected)
		tournamentRoutes := apiV1.Group("/tournaments")
		tournamentRoutes.Use(auth.AuthMiddleware())
		{
			tournamentRoutes.GET("", handler.GetTournaments)
			tournamentRoutes.GET("/:id", handler.GetTournamentByID)
			tournamentRoutes.GET("/:id/participants", handler.GetTournamentParticipants)
			tournamentRoutes.POST("/:id/join", handler.JoinTournament)
			tournamentRoutes.POST("/:id/leave", handler.LeaveTournament)
			tournamentRoutes.GET("/:id/lobbies", handler.GetTournamentLobbies)
			tournamentRoutes.GET("/:id/bracket", handler.GetTournamentBracket)
		}

		// Lobby routes (protected)
		lobbyRoutes := apiV1.Group("/lobbies")
		lobbyRoutes.Use(auth.AuthMiddleware())
		{
			lobbyRoutes.POST("", handler.CreateLobby)
			lobbyRoutes.GET("", handler.ListLobbies)
			lobbyRoutes.GET("/:id", handler.GetLobbyByID)
			lobbyRoutes.DELETE("/:id", handler.DeleteLobby)
			lobbyRoutes.POST("/:id/requests", handler.SubmitJoinRequest)
			lobbyRoutes.GET("/:id/requests", handler.ListJoinRequests)
			lobbyRoutes.DELETE("/:id/requests", handler.CancelJoinRequest)
			lobbyRoutes.POST("/requests/:requestID", handler.RespondJoinRequest)
			lobbyRoutes.DELETE("/:id/participants/:userID", handler.RemoveLobbyParticipant)
			lobbyRoutes.POST("/:id/invitations/:userID", handler.InviteToLobby)
		}

		// Invitation routes (protected)
		invitationRoutes := apiV1.Group("/invitations")
		invitationRoutes.Use(auth.AuthMiddleware())
		{
			invitationRoutes.POST("/:id/accept", handler.AcceptInvitation)
			invitationRoutes.POST("/:id/decline", handler.DeclineInvitation)
		}

		// Notification routes (protected)
		notificationRoutes := apiV1.Group("/notifications")
		notificationRoutes.Use(auth.AuthMiddleware())
		{
			notificationRoutes.GET("", handler.GetNotifications)
			notificationRoutes.POST("/:id/read", handler.MarkNotificationRead)
			notificationRoutes.GET("/stream", handler.StreamNotifications)
		}

		// Announcement routes (protected)
		announcementRoutes := apiV1.Group("/announcements")
		announcementRoutes.Use(auth.AuthMiddleware())
		{
			announcementRoutes.GET("", handler.GetAnnouncements)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			// Games CRUD
			adminGameRoutes := adminRoutes.Group("/games")
			{
				adminGameRoutes.POST("", handler.CreateGame)
				adminGameRoutes.PUT("/:id", handler.UpdateGame)
				adminGameRoutes.DELETE("/:id", handler.DeleteGame)
			}

			// Announcements
			adminAnnouncementRoutes := adminRoutes.Group("/announcements")
			{
				adminAnnouncementRoutes.POST("", handler.CreateAnnouncement)
				adminAnnouncementRoutes.PUT("/:id", handler.UpdateAnnouncement)
				adminAnnouncementRoutes.DELETE("/:id", handler.DeleteAnnouncement)
			}

			// Brackets
			adminRoutes.POST("/tournaments/:id/bracket", handler.CreateTournamentBracket)
			adminRoutes.PUT("/matches/:matchID", handler.UpdateMatchScore)
		}
	}

	fmt.Printf("Server is running on %s\n", config.AppConfig.ServerAddress)
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(config.AppConfig.ServerAddress))
}
