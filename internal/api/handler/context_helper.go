package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zjy1055/zuohuiying/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		response.Unauthorized(c, 10002, "未认证")
		return 0, false
	}
	return id, true
}

// QueryID 从查询参数中解析正整数 ID（如 ?id=3）。
// 解析失败时写入 400 响应并返回 false。
func QueryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, name+" 参数无效")
		return 0, false
	}
	return uint(id), true
}

// ParamID 从路径参数中解析正整数 ID（如 /schools/:id）。
func ParamID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, name+" 参数无效")
		return 0, false
	}
	return uint(id), true
}
