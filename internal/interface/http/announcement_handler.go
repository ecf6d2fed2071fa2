package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classtalk/classtalk-api/internal/application"
	"github.com/classtalk/classtalk-api/pkg/response"
	"github.com/classtalk/classtalk-api/pkg/validation"
)

type AnnouncementHandler struct {
	Svc *application.AnnouncementService
}

func NewAnnouncementHandler(svc *application.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{Svc: svc}
}

type postAnnouncementRequest struct {
	ClassroomID string `json:"classroom_id" binding:"required,uuid"`
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Content     string `json:"content" binding:"required,min=1,max=10000"`
}

// Post POST /api/announcements
func (h *AnnouncementHandler) Post(c *gin.Context) {
	var req postAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Post(c.Request.Context(), currentUserID(c), req.ClassroomID, req.Title, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "announcement posted", nil)
}

// List GET /api/announcements/classroom/:classroomId
func (h *AnnouncementHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), currentUserID(c), c.Param("classroomId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "announcements", map[string]any{"count": len(items)})
}

// Delete DELETE /api/announcements/:announcementId
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), currentUserID(c), c.Param("announcementId")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "announcement deleted", nil)
}
