package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zjy1055/zuohuiying/internal/dto"
	"github.com/zjy1055/zuohuiying/internal/service"
	"github.com/zjy1055/zuohuiying/pkg/response"
)

// SchoolHandler 学校库管理 HTTP 处理器（教师端）
type SchoolHandler struct {
	schoolSvc service.SchoolService
}

// NewSchoolHandler 创建 SchoolHandler
func NewSchoolHandler(schoolSvc service.SchoolService) *SchoolHandler {
	return &SchoolHandler{schoolSvc: schoolSvc}
}

// List 学校列表
// GET /api/v1/teacher/school/list
func (h *SchoolHandler) List(c *gin.Context) {
	result, err := h.schoolSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Add 添加学校
// POST /api/v1/teacher/school/add
func (h *SchoolHandler) Add(c *gin.Context) {
	var req dto.AddSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.schoolSvc.Add(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrSchoolExists) {
			response.Error(c, http.StatusConflict, 13002, "学校已存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// Update 更新学校
// PUT /api/v1/teacher/school/edit?id=
func (h *SchoolHandler) Update(c *gin.Context) {
	id, ok := QueryID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.schoolSvc.Update(c.Request.Context(), id, &req); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, 13001, "学校不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Delete 删除学校（专业级联删除）
// DELETE /api/v1/teacher/school/delete?id=
func (h *SchoolHandler) Delete(c *gin.Context) {
	id, ok := QueryID(c, "id")
	if !ok {
		return
	}

	if err := h.schoolSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, 13001, "学校不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
