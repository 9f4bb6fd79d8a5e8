package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title git-scope API
// @version 1.0
// @description GitHub profile viewer backend: snapshots, derived metrics, narrations, and notes
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// SetupRouter configures the API routes
func SetupRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 group
	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users/:username")
		{
			// @Summary Get a user profile
			// @Description Fetch the public GitHub profile for a username
			// @Tags users
			// @Produce json
			// @Param username path string true "GitHub login"
			// @Success 200 {object} models.User
			// @Failure 404 {object} ErrorResponse
			// @Failure 429 {object} RateLimitedResponse
			// @Failure 500 {object} ErrorResponse
			// @Router /users/{username} [get]
			users.GET("", h.GetUserProfile)

			// @Summary Get a full user snapshot
			// @Description Fetch profile, repositories, and recent events concurrently, with computed metrics
			// @Tags users
			// @Produce json
			// @Param username path string true "GitHub login"
			// @Success 200 {object} SnapshotResponse
			// @Failure 404 {object} ErrorResponse
			// @Failure 429 {object} RateLimitedResponse
			// @Failure 500 {object} ErrorResponse
			// @Router /users/{username}/snapshot [get]
			users.GET("/snapshot", h.GetUserSnapshot)
		}

		// @Summary Summarize a user snapshot
		// @Description Produce a natural-language summary of a profile snapshot
		// @Tags narration
		// @Accept json
		// @Produce json
		// @Param request body SummarizeRequest true "Snapshot to summarize"
		// @Success 200 {object} NarrationResponse
		// @Failure 400 {object} ErrorResponse
		// @Failure 429 {object} RateLimitedResponse
		// @Failure 500 {object} ErrorResponse
		// @Router /summarize [post]
		v1.POST("/summarize", h.Summarize)

		// @Summary Compare two user snapshots
		// @Description Produce a natural-language comparison of two profile snapshots
		// @Tags narration
		// @Accept json
		// @Produce json
		// @Param request body CompareRequest true "Snapshots to compare"
		// @Success 200 {object} NarrationResponse
		// @Failure 400 {object} ErrorResponse
		// @Failure 429 {object} RateLimitedResponse
		// @Failure 500 {object} ErrorResponse
		// @Router /compare [post]
		v1.POST("/compare", h.Compare)

		notes := v1.Group("/notes")
		{
			// @Summary List notes
			// @Description List all notes, or the notes for one target when target_type and target_key are given
			// @Tags notes
			// @Produce json
			// @Param target_type query string false "Target type" Enums(user, repo)
			// @Param target_key query string false "Target key, e.g. user:torvalds"
			// @Success 200 {array} models.Note
			// @Failure 400 {object} ErrorResponse
			// @Router /notes [get]
			notes.GET("", h.ListNotes)

			// @Summary Create a note
			// @Description Attach a free-text note to a profile or repository
			// @Tags notes
			// @Accept json
			// @Produce json
			// @Param request body CreateNoteRequest true "Note to create"
			// @Success 201 {object} models.Note
			// @Failure 400 {object} ErrorResponse
			// @Failure 500 {object} ErrorResponse
			// @Router /notes [post]
			notes.POST("", h.CreateNote)

			// @Summary Update a note
			// @Description Replace a note's content, bumping its updated timestamp
			// @Tags notes
			// @Accept json
			// @Produce json
			// @Param id path string true "Note ID"
			// @Param request body UpdateNoteRequest true "New content"
			// @Success 200 {object} models.Note
			// @Failure 400 {object} ErrorResponse
			// @Failure 404 {object} ErrorResponse
			// @Failure 500 {object} ErrorResponse
			// @Router /notes/{id} [put]
			notes.PUT("/:id", h.UpdateNote)

			// @Summary Delete a note
			// @Description Remove a note
			// @Tags notes
			// @Produce json
			// @Param id path string true "Note ID"
			// @Success 204 "No Content"
			// @Failure 404 {object} ErrorResponse
			// @Failure 500 {object} ErrorResponse
			// @Router /notes/{id} [delete]
			notes.DELETE("/:id", h.DeleteNote)
		}
	}

	return r
}
