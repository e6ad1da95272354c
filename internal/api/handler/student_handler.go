package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zjy1055/zuohuiying/internal/dto"
	"github.com/zjy1055/zuohuiying/internal/service"
	"github.com/zjy1055/zuohuiying/pkg/response"
)

// StudentHandler 学生端 HTTP 处理器：档案、选校推荐、学校查询、成功案例
type StudentHandler struct {
	studentSvc service.StudentService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// GetProfile 学生档案
// GET /api/v1/student/profile
func (h *StudentHandler) GetProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.studentSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, 12001, "档案不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateProfile 档案部分更新
// PUT /api/v1/student/profile
func (h *StudentHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateStudentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.studentSvc.UpdateProfile(c.Request.Context(), userID, &req); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, 12001, "档案不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// Recommend 选校推荐
// GET /api/v1/student/recommendation
func (h *StudentHandler) Recommend(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.studentSvc.Recommend(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIncompleteProfile):
			response.BadRequest(c, 12002, "请先完善托福、GRE 和 GPA 成绩")
		case errors.Is(err, service.ErrNotFound):
			response.NotFound(c, 12001, "档案不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// ListSchools 学校列表
// GET /api/v1/student/schools
func (h *StudentHandler) ListSchools(c *gin.Context) {
	result, err := h.studentSvc.ListSchools(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// SearchSchools 学校检索
// GET /api/v1/student/schools/search?name=&major=&region=
func (h *StudentHandler) SearchSchools(c *gin.Context) {
	var req dto.SchoolSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.studentSvc.SearchSchools(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetSchool 学校详情
// GET /api/v1/student/schools/:id
func (h *StudentHandler) GetSchool(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	result, err := h.studentSvc.GetSchool(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, 13001, "学校不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ListSuccessCases 成功案例列表
// GET /api/v1/student/success-cases
func (h *StudentHandler) ListSuccessCases(c *gin.Context) {
	result, err := h.studentSvc.ListSuccessCases(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
