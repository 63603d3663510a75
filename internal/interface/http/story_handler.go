package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/travelbuddy/journal-api/internal/application"
	"github.com/travelbuddy/journal-api/pkg/response"
	"github.com/travelbuddy/journal-api/pkg/validation"
)

type StoryHandler struct {
	Svc    *application.StoryService
	Logger *logrus.Logger
}

func NewStoryHandler(svc *application.StoryService, logger *logrus.Logger) *StoryHandler {
	return &StoryHandler{Svc: svc, Logger: logger}
}

// VisitedDate binds through a pointer so an explicit epoch-zero value passes
// the required check; only an absent or non-numeric value fails.
type addStoryRequest struct {
	Title           string `json:"title" binding:"required"`
	Story           string `json:"story" binding:"required"`
	VisitedLocation string `json:"visitedLocation" binding:"required"`
	ImageURL        string `json:"imageUrl" binding:"required"`
	VisitedDate     *int64 `json:"visitedDate" binding:"required"`
}

// editStoryRequest differs from add only in the image reference being
// optional; an omitted one is substituted with the placeholder asset.
type editStoryRequest struct {
	Title           string `json:"title" binding:"required"`
	Story           string `json:"story" binding:"required"`
	VisitedLocation string `json:"visitedLocation" binding:"required"`
	ImageURL        string `json:"imageUrl"`
	VisitedDate     *int64 `json:"visitedDate" binding:"required"`
}

type favouriteRequest struct {
	IsFavourite *bool `json:"isFavourite" binding:"required"`
}

// AddStory POST /add-travel-story
func (h *StoryHandler) AddStory(c *gin.Context) {
	var req addStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "All fields are required", validation.ToDetails(err))
		return
	}

	uid := c.GetString("userID")
	st, err := h.Svc.Create(c.Request.Context(), uid, application.StoryInput{
		Title:           req.Title,
		Story:           req.Story,
		VisitedLocation: req.VisitedLocation,
		ImageURL:        req.ImageURL,
		VisitedDate:     *req.VisitedDate,
	})
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("add story failed")
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusCreated, "Added Successfully", gin.H{"story": st})
}

// GetAllStories GET /get-all-stories
func (h *StoryHandler) GetAllStories(c *gin.Context) {
	uid := c.GetString("userID")
	stories, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("list stories failed")
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"stories": stories})
}

// EditStory PUT /edit-story/:id
func (h *StoryHandler) EditStory(c *gin.Context) {
	var req editStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "All fields are required", validation.ToDetails(err))
		return
	}

	uid := c.GetString("userID")
	st, err := h.Svc.Edit(c.Request.Context(), uid, c.Param("id"), application.StoryInput{
		Title:           req.Title,
		Story:           req.Story,
		VisitedLocation: req.VisitedLocation,
		ImageURL:        req.ImageURL,
		VisitedDate:     *req.VisitedDate,
	})
	if err != nil {
		if errors.Is(err, application.ErrStoryNotFound) {
			response.Error(c, http.StatusNotFound, "Travel story not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("user_id", uid).Error("edit story failed")
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Update Successful", gin.H{"story": st})
}

// DeleteStory DELETE /delete-story/:id
func (h *StoryHandler) DeleteStory(c *gin.Context) {
	uid := c.GetString("userID")
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		if errors.Is(err, application.ErrStoryNotFound) {
			response.Error(c, http.StatusNotFound, "Travel story not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("user_id", uid).Error("delete story failed")
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, "Travel story deleted successfully", nil)
}

// UpdateIsFavourite PUT /update-is-favourite/:id
func (h *StoryHandler) UpdateIsFavourite(c *gin.Context) {
	var req favouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "isFavourite is required", validation.ToDetails(err))
		return
	}

	uid := c.GetString("userID")
	st, err := h.Svc.SetFavourite(c.Request.Context(), uid, c.Param("id"), *req.IsFavourite)
	if err != nil {
		if errors.Is(err, application.ErrStoryNotFound) {
			response.Error(c, http.StatusNotFound, "Travel story not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("user_id", uid).Error("update favourite failed")
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Update Successful", gin.H{"story": st})
}

// SearchStories GET /search?query=...
func (h *StoryHandler) SearchStories(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		response.Error(c, http.StatusBadRequest, "query is required", nil)
		return
	}

	uid := c.GetString("userID")
	stories, err := h.Svc.Search(c.Request.Context(), uid, query)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("search stories failed")
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"stories": stories})
}

// FilterStories GET /travel-stories/filter?startDate=...&endDate=...
func (h *StoryHandler) FilterStories(c *gin.Context) {
	startMs, err := strconv.ParseInt(c.Query("startDate"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "startDate must be epoch milliseconds", nil)
		return
	}
	endMs, err := strconv.ParseInt(c.Query("endDate"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "endDate must be epoch milliseconds", nil)
		return
	}

	uid := c.GetString("userID")
	stories, err := h.Svc.FilterByDateRange(c.Request.Context(), uid, startMs, endMs)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("filter stories failed")
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"stories": stories})
}
