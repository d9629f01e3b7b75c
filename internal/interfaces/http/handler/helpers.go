package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/revenda/backend/internal/interfaces/http/dto"
)

// listRequestFromQuery binds the common pagination parameters, falling back
// to defaults for anything missing or out of range
func listRequestFromQuery(c *gin.Context) dto.ListRequest {
	req := dto.DefaultListRequest()
	_ = c.ShouldBindQuery(&req)

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}
	return req
}
