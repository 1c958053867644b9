package handler

import (
	"strconv"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/gin-gonic/gin"
)

const defaultPageSize = 10

type pageQuery struct {
	Number int `form:"pageNumber,default=1"`
	Size   int `form:"pageSize,default=10"`
}

func bindPage(c *gin.Context) (domain.PageRequest, error) {
	q := pageQuery{Number: 1, Size: defaultPageSize}
	if err := c.ShouldBindQuery(&q); err != nil {
		return domain.PageRequest{}, err
	}
	return domain.PageRequest{Number: q.Number, Size: q.Size}, nil
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// currentUserID reads the id the auth middleware stored on the context.
func currentUserID(c *gin.Context) uint {
	return c.GetUint("userID")
}
