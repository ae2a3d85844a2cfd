package handler

import (
	"net/http"
	"strconv"

	"uniarena/backend/internal/database"
	"uniarena/backend/internal/models"
	"uniarena/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Username string `json:"username" binding:"required" example:"testuser"`
	FullName string `json:"full_name" example:"Test User"`
	Email    string `json:"email" binding:"required,email" example:"test@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Login    string `json:"login" binding:"required" example:"testuser"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// PublicUserResponse defines the structure for a user's public profile.
type PublicUserResponse struct {
	ID                uint   `json:"id" example:"1"`
	Username          string `json:"username" example:"testuser"`
	FullName          string `json:"full_name" example:"Test User"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
}

// PrivateUserResponse defines the structure for the authenticated user's own profile.
type PrivateUserResponse struct {
	ID                uint   `json:"id" example:"1"`
	Username          string `json:"username" example:"testuser"`
	FullName          string `json:"full_name" example:"Test User"`
	Email             string `json:"email" example:"test@example.com"`
	Role              string `json:"role" example:"user"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
}

// UserDetailResponse is a public profile together with game profiles.
type UserDetailResponse struct {
	PublicUserResponse
	GameProfiles []GameProfileResponse `json:"game_profiles"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

func buildPublicUserResponse(user models.User) PublicUserResponse {
	return PublicUserResponse{
		ID:                user.ID,
		Username:          user.Username,
		FullName:          user.FullName,
		ProfilePictureURL: user.ProfilePictureURL,
	}
}

// endregion

// region --- Auth Handlers ---

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a new user and returns an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingUser models.User
	if err := database.DB.Where("username = ? OR email = ?", input.Username, input.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Username:     input.Username,
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates a user with username/email and password, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /auth/login [post]
func LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("username = ? OR email = ?", input.Login, input.Login).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// endregion

// GetMe godoc
// @Summary      Get own profile
// @Description  Returns the authenticated user's private profile.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateUserResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	userID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, PrivateUserResponse{
		ID:                user.ID,
		Username:          user.Username,
		FullName:          user.FullName,
		Email:             user.Email,
		Role:              user.Role,
		ProfilePictureURL: user.ProfilePictureURL,
	})
}

// SearchUsers godoc
// @Summary      Search users
// @Description  Gets a paginated list of users matching the query on username or full name.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q     query string false "Search query"
// @Param        page  query int    false "Page number" default(1)
// @Param        limit query int    false "Items per page" default(20)
// @Success      200 {object} PaginatedResponse[PublicUserResponse]
// @Router       /users [get]
func SearchUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	query := c.Query("q")

	db := database.DB.Model(&models.User{}).Order("username")
	if query != "" {
		pattern := "%" + query + "%"
		db = db.Where("username ILIKE ? OR full_name ILIKE ?", pattern, pattern)
	}

	result, err := Paginate[models.User](db, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users"})
		return
	}

	users := make([]PublicUserResponse, 0, len(result.Data))
	for _, user := range result.Data {
		users = append(users, buildPublicUserResponse(user))
	}

	c.JSON(http.StatusOK, PaginatedResponse[PublicUserResponse]{Data: users, Meta: result.Meta})
}

// GetUserByID godoc
// @Summary      Get a user by ID
// @Description  Gets a user's public profile with their game profiles.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200 {object} UserDetailResponse
// @Failure      404 {object} ErrorResponse "User not found"
// @Router       /users/{id} [get]
func GetUserByID(c *gin.Context) {
	userID, _ := strconv.Atoi(c.Param("id"))

	var user models.User
	if err := database.DB.Preload("GameProfiles.Game").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	profiles := make([]GameProfileResponse, 0, len(user.GameProfiles))
	for _, profile := range user.GameProfiles {
		profiles = append(profiles, newGameProfileResponse(profile))
	}

	c.JSON(http.StatusOK, UserDetailResponse{
		PublicUserResponse: buildPublicUserResponse(user),
		GameProfiles:       profiles,
	})
}
