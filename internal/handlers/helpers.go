package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nevenjbx/kompagni-api/internal/httperr"
	"github.com/Nevenjbx/kompagni-api/internal/middleware"
)

func currentUserID(c *gin.Context) string {
	return c.MustGet(middleware.ContextUserID).(string)
}

// writeError maps business errors onto the HTTP taxonomy; anything else is
// a 500 with a generic body.
func writeError(c *gin.Context, err error) {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Something went wrong")
		return
	}

	switch be.Kind {
	case httperr.KindNotFound:
		httperr.NotFound(c, be.Code, be.Message)
	case httperr.KindForbidden:
		httperr.Forbidden(c, be.Code, be.Message)
	default:
		// validation and conflict both surface as 400, the conflict
		// keeping its distinct retryable code
		httperr.BadRequest(c, be.Code, be.Message)
	}
}

func queryInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
