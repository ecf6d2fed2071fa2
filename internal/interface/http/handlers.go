package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classtalk/classtalk-api/internal/application"
	"github.com/classtalk/classtalk-api/internal/interface/middleware"
	"github.com/classtalk/classtalk-api/pkg/response"
)

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}

// fail maps application sentinel errors to stable reason messages. Unknown
// errors are infrastructure failures and never leak internal detail.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, application.ErrEmailTaken),
		errors.Is(err, application.ErrSelfJoin),
		errors.Is(err, application.ErrAlreadyMember):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, application.ErrInvalidEmail),
		errors.Is(err, application.ErrInvalidPassword):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, application.ErrAlreadyVerified),
		errors.Is(err, application.ErrInvalidCode),
		errors.Is(err, application.ErrCodeExpired),
		errors.Is(err, application.ErrInviteNotFound):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrClassroomAccess),
		errors.Is(err, application.ErrAnnouncementAccess):
		status = http.StatusNotFound
		message = err.Error()
	}

	response.Error[any](c, status, message, nil)
}
