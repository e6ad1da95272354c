package handler

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zjy1055/zuohuiying/internal/dto"
	"github.com/zjy1055/zuohuiying/internal/service"
	"github.com/zjy1055/zuohuiying/pkg/response"
)

// 成功案例附件大小上限
const maxCaseFileSize = 10 << 20 // 10 MiB

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TeacherHandler 教师端 HTTP 处理器：档案、学生统计、成功率预测、案例管理
type TeacherHandler struct {
	teacherSvc service.TeacherService
}

// NewTeacherHandler 创建 TeacherHandler
func NewTeacherHandler(teacherSvc service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherSvc: teacherSvc}
}

// GetProfile 教师档案
// GET /api/v1/teacher/profile
func (h *TeacherHandler) GetProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.teacherSvc.GetProfile(c.Request.Context(), userID)
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
// PUT /api/v1/teacher/profile
func (h *TeacherHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTeacherProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.teacherSvc.UpdateProfile(c.Request.Context(), userID, &req); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, 12001, "档案不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// StudentStatistics 学生统计
// GET /api/v1/teacher/statistics/student
func (h *TeacherHandler) StudentStatistics(c *gin.Context) {
	result, err := h.teacherSvc.StudentStatistics(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Predict 留学成功率预测
// GET /api/v1/teacher/statistics/predict?toefl_min=&gre_min=&gpa_min=
func (h *TeacherHandler) Predict(c *gin.Context) {
	var req dto.PredictRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.teacherSvc.Predict(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ExportStudents 学生统计 Excel 导出
// GET /api/v1/teacher/students/export
func (h *TeacherHandler) ExportStudents(c *gin.Context) {
	data, err := h.teacherSvc.ExportStudentStatistics(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	filename := "学生统计_" + time.Now().Format("20060102") + ".xlsx"
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// AddSuccessCase 添加成功案例（multipart，附件可选）
// POST /api/v1/teacher/success-case/add
func (h *TeacherHandler) AddSuccessCase(c *gin.Context) {
	var req dto.AddSuccessCaseRequest
	req.Title = c.PostForm("title")
	req.Content = c.PostForm("content")
	if req.Title == "" || req.Content == "" {
		response.BadRequest(c, 10001, "title 和 content 不能为空")
		return
	}

	var (
		filename    string
		fileData    []byte
		contentType string
	)
	if fh, err := c.FormFile("file"); err == nil {
		if fh.Size > maxCaseFileSize {
			response.BadRequest(c, 16001, "附件不能超过 10MB")
			return
		}
		f, err := fh.Open()
		if err != nil {
			response.InternalError(c)
			return
		}
		defer f.Close()

		fileData, err = io.ReadAll(f)
		if err != nil {
			response.InternalError(c)
			return
		}
		filename = fh.Filename
		contentType = fh.Header.Get("Content-Type")
	}

	id, err := h.teacherSvc.AddSuccessCase(c.Request.Context(), &req, filename, fileData, contentType)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, gin.H{"case_id": id})
}

// DeleteSuccessCase 删除成功案例
// DELETE /api/v1/teacher/success-case/delete?id=
func (h *TeacherHandler) DeleteSuccessCase(c *gin.Context) {
	id, ok := QueryID(c, "id")
	if !ok {
		return
	}

	if err := h.teacherSvc.DeleteSuccessCase(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, 16002, "案例不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
