package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zjy1055/zuohuiying/internal/dto"
	"github.com/zjy1055/zuohuiying/internal/service"
	"github.com/zjy1055/zuohuiying/pkg/response"
)

// DocumentHandler 文书润色预约 HTTP 处理器
type DocumentHandler struct {
	documentSvc service.DocumentService
}

// NewDocumentHandler 创建 DocumentHandler
func NewDocumentHandler(documentSvc service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentSvc: documentSvc}
}

// ────────────────────── 学生端 ──────────────────────

// Reserve 创建文书预约
// POST /api/v1/student/document/reserve
func (h *DocumentHandler) Reserve(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReserveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.documentSvc.Reserve(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			response.NotFound(c, 15001, "教师不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// ListForStudent 本人文书预约列表
// GET /api/v1/student/document/list
func (h *DocumentHandler) ListForStudent(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.documentSvc.ListForStudent(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// DetailForStudent 本人文书预约详情
// GET /api/v1/student/document/detail?id=
func (h *DocumentHandler) DetailForStudent(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := QueryID(c, "id")
	if !ok {
		return
	}

	result, err := h.documentSvc.DetailForStudent(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, 15002, "预约不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ────────────────────── 教师端 ──────────────────────

// ListForTeacher 教师名下文书预约列表（支持过滤）
// GET /api/v1/teacher/document/list?status=&document_type=&student_name=
func (h *DocumentHandler) ListForTeacher(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReservationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.documentSvc.ListForTeacher(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// DetailForTeacher 教师名下文书预约详情
// GET /api/v1/teacher/document/detail?id=
func (h *DocumentHandler) DetailForTeacher(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := QueryID(c, "id")
	if !ok {
		return
	}

	result, err := h.documentSvc.DetailForTeacher(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, 15002, "预约不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// UpdateStatus 受理预约（接受/拒绝）
// PUT /api/v1/teacher/document/status
func (h *DocumentHandler) UpdateStatus(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.documentSvc.UpdateStatus(c.Request.Context(), userID, &req); err != nil {
		h.handleLifecycleError(c, err)
		return
	}
	response.OK(c, nil)
}

// UpdateProgress 更新文书进度
// PUT /api/v1/teacher/document/progress
func (h *DocumentHandler) UpdateProgress(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateDocumentProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.documentSvc.UpdateProgress(c.Request.Context(), userID, &req); err != nil {
		h.handleLifecycleError(c, err)
		return
	}
	response.OK(c, nil)
}

// UpdateContent 更新润色内容
// PUT /api/v1/teacher/document/content
func (h *DocumentHandler) UpdateContent(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateDocumentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.documentSvc.UpdateContent(c.Request.Context(), userID, &req); err != nil {
		h.handleLifecycleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *DocumentHandler) handleLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, 15002, "预约不存在")
	case errors.Is(err, service.ErrAlreadyProcessed):
		response.BadRequest(c, 15003, "该预约已处理")
	case errors.Is(err, service.ErrMustAcceptFirst):
		response.BadRequest(c, 15004, "请先接受预约")
	case errors.Is(err, service.ErrInvalidProgress):
		response.BadRequest(c, 15005, "进度必须在 0-100 之间")
	default:
		response.InternalError(c)
	}
}
