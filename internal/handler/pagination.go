package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// parsePageParams coerces raw page/limit query values, falling back to the
// defaults on anything missing, unparseable or non-positive.
func parsePageParams(pageStr, limitStr string) (page, limit int) {
	page = defaultPage
	limit = defaultLimit

	if v, err := strconv.Atoi(pageStr); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}

func pageParams(c *gin.Context) (page, limit int) {
	return parsePageParams(c.Query("page"), c.Query("limit"))
}
