package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classtalk/classtalk-api/internal/application"
	"github.com/classtalk/classtalk-api/internal/domain/entity"
	"github.com/classtalk/classtalk-api/pkg/response"
	"github.com/classtalk/classtalk-api/pkg/validation"
)

type ClassroomHandler struct {
	Svc *application.ClassroomService
}

func NewClassroomHandler(svc *application.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{Svc: svc}
}

type createClassroomRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=120"`
	Description string `json:"description" binding:"max=2000"`
}

type joinClassroomRequest struct {
	InviteCode string `json:"invite_code" binding:"required,len=8,hexadecimal"`
}

// Create POST /api/classrooms. The creator becomes the classroom's teacher
// regardless of their platform role.
func (h *ClassroomHandler) Create(c *gin.Context) {
	var req createClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	room, err := h.Svc.Create(c.Request.Context(), currentUserID(c), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, room, "classroom created", nil)
}

// Join POST /api/classrooms/join
func (h *ClassroomHandler) Join(c *gin.Context) {
	var req joinClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	room, err := h.Svc.Join(c.Request.Context(), currentUserID(c), req.InviteCode)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":   room.ID,
		"name": room.Name,
	}, "joined classroom", nil)
}

// Mine GET /api/classrooms/mine
func (h *ClassroomHandler) Mine(c *gin.Context) {
	summaries, err := h.Svc.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, gin.H{
			"id":          s.Classroom.ID,
			"name":        s.Classroom.Name,
			"description": s.Classroom.Description,
			"is_teacher":  s.IsTeacher,
			"created_at":  s.Classroom.CreatedAt,
		})
	}
	response.Success(c, http.StatusOK, out, "classrooms", map[string]any{"count": len(out)})
}

// Details GET /api/classrooms/:classroomId. The invite code is only shown to
// the teacher.
func (h *ClassroomHandler) Details(c *gin.Context) {
	detail, err := h.Svc.Details(c.Request.Context(), c.Param("classroomId"), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	members := make([]gin.H, 0, len(detail.Members))
	for _, m := range detail.Members {
		members = append(members, gin.H{
			"user_id":         m.UserID,
			"name":            m.Name,
			"email":           m.Email,
			"role":            m.Role,
			"is_current_user": m.IsCurrentUser,
		})
	}
	body := gin.H{
		"id":          detail.Classroom.ID,
		"name":        detail.Classroom.Name,
		"description": detail.Classroom.Description,
		"role":        detail.Role,
		"members":     members,
		"created_at":  detail.Classroom.CreatedAt,
	}
	if detail.Role == entity.RoleTeacher {
		body["invite_code"] = detail.Classroom.InviteCode
	}
	response.Success(c, http.StatusOK, body, "classroom", nil)
}

// Delete DELETE /api/classrooms/:classroomId
func (h *ClassroomHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("classroomId"), currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "classroom deleted", nil)
}
