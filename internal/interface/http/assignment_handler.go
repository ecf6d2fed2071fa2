package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/classtalk/classtalk-api/internal/application"
	"github.com/classtalk/classtalk-api/pkg/response"
)

// maxAttachmentSize caps each uploaded file at 16 MiB.
const maxAttachmentSize = 16 << 20

type AssignmentHandler struct {
	Svc *application.AssignmentService
}

func NewAssignmentHandler(svc *application.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{Svc: svc}
}

// Create POST /api/assignments (multipart/form-data). Fields: classroom_id,
// title, description, due_date (RFC3339, optional), attachments (repeated).
func (h *AssignmentHandler) Create(c *gin.Context) {
	classroomID := c.PostForm("classroom_id")
	title := c.PostForm("title")
	if classroomID == "" || title == "" {
		response.Error[any](c, http.StatusBadRequest, "classroom_id and title are required", nil)
		return
	}
	description := c.PostForm("description")

	var dueDate *time.Time
	if raw := c.PostForm("due_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "due_date must be RFC3339", nil)
			return
		}
		dueDate = &t
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}

	var uploads []application.AttachmentUpload
	var closers []func()
	defer func() {
		for _, close := range closers {
			close()
		}
	}()
	for _, fh := range form.File["attachments"] {
		if fh.Size > maxAttachmentSize {
			response.Error[any](c, http.StatusBadRequest, "attachment too large", nil)
			return
		}
		f, err := fh.Open()
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "unreadable attachment", nil)
			return
		}
		closers = append(closers, func() { f.Close() })
		uploads = append(uploads, application.AttachmentUpload{
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
		})
	}

	a, err := h.Svc.Create(c.Request.Context(), currentUserID(c), classroomID, title, description, dueDate, uploads)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "assignment created", nil)
}

// List GET /api/assignments/classroom/:classroomId
func (h *AssignmentHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), currentUserID(c), c.Param("classroomId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "assignments", map[string]any{"count": len(items)})
}
