package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zjy1055/zuohuiying/internal/dto"
	"github.com/zjy1055/zuohuiying/internal/service"
	"github.com/zjy1055/zuohuiying/pkg/response"
)

// TrainingHandler 语言培训预约 HTTP 处理器
// 学生端与教师端路由复用同一处理器，身份从上下文取
type TrainingHandler struct {
	trainingSvc service.TrainingService
}

// NewTrainingHandler 创建 TrainingHandler
func NewTrainingHandler(trainingSvc service.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingSvc: trainingSvc}
}

// ────────────────────── 学生端 ──────────────────────

// Reserve 创建培训预约
// POST /api/v1/student/training/reserve
func (h *TrainingHandler) Reserve(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReserveTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.trainingSvc.Reserve(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// ListForStudent 本人培训预约列表
// GET /api/v1/student/training/list
func (h *TrainingHandler) ListForStudent(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.trainingSvc.ListForStudent(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// DetailForStudent 本人培训预约详情
// GET /api/v1/student/training/detail?id=
func (h *TrainingHandler) DetailForStudent(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := QueryID(c, "id")
	if !ok {
		return
	}

	result, err := h.trainingSvc.DetailForStudent(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, 14001, "预约不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ────────────────────── 教师端 ──────────────────────

// ListForTeacher 教师名下培训预约列表（支持过滤）
// GET /api/v1/teacher/training/list?status=&training_type=&student_name=
func (h *TrainingHandler) ListForTeacher(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReservationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.trainingSvc.ListForTeacher(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// DetailForTeacher 教师名下培训预约详情
// GET /api/v1/teacher/training/detail?id=
func (h *TrainingHandler) DetailForTeacher(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := QueryID(c, "id")
	if !ok {
		return
	}

	result, err := h.trainingSvc.DetailForTeacher(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, 14001, "预约不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// UpdateStatus 受理预约（接受/拒绝）
// PUT /api/v1/teacher/training/status
func (h *TrainingHandler) UpdateStatus(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.trainingSvc.UpdateStatus(c.Request.Context(), userID, &req); err != nil {
		h.handleLifecycleError(c, err)
		return
	}
	response.OK(c, nil)
}

// UpdateProgress 更新课时进度
// PUT /api/v1/teacher/training/progress
func (h *TrainingHandler) UpdateProgress(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTrainingProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.trainingSvc.UpdateProgress(c.Request.Context(), userID, &req); err != nil {
		h.handleLifecycleError(c, err)
		return
	}
	response.OK(c, nil)
}

// UpdateFeedback 添加培训反馈
// PUT /api/v1/teacher/training/feedback
func (h *TrainingHandler) UpdateFeedback(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.trainingSvc.UpdateFeedback(c.Request.Context(), userID, &req); err != nil {
		h.handleLifecycleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *TrainingHandler) handleLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, 14001, "预约不存在")
	case errors.Is(err, service.ErrAlreadyProcessed):
		response.BadRequest(c, 14002, "该预约已处理")
	case errors.Is(err, service.ErrMustAcceptFirst):
		response.BadRequest(c, 14003, "请先接受预约")
	case errors.Is(err, service.ErrInvalidHours):
		response.BadRequest(c, 14004, "已上课时不能超过总课时")
	default:
		response.InternalError(c)
	}
}
