package v1

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	ierr "github.com/tallerhq/facturas/internal/errors"
)

// parseInt64Param parses a numeric path parameter
func parseInt64Param(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ierr.NewError(fmt.Sprintf("invalid %s", name)).
			WithHintf("%s must be a positive integer", name).
			Mark(ierr.ErrValidation)
	}
	return id, nil
}

// parseInt64Query parses a required numeric query parameter
func parseInt64Query(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ierr.NewError(fmt.Sprintf("invalid %s", name)).
			WithHintf("%s must be a positive integer", name).
			Mark(ierr.ErrValidation)
	}
	return id, nil
}
