package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleet-tracker/backend/pkg/response"
)

// MustGetID 解析路径参数 :id 为正整数
// 解析失败时写入 400 响应并返回 false，调用方应直接 return。
func MustGetID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "ID 必须为正整数")
		return 0, false
	}
	return id, true
}

// handleBindError 参数绑定失败：请求体超过 BodyLimit 时返回 413，其余为 400
func handleBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
		return
	}
	response.BadRequest(c, 10001, "参数校验失败")
}
