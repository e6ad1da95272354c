package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zjy1055/zuohuiying/internal/dto"
	"github.com/zjy1055/zuohuiying/internal/model"
	"github.com/zjy1055/zuohuiying/internal/repository"
)

// ErrTeacherNotFound 指定的教师不存在（或该用户不是教师）
var ErrTeacherNotFound = errors.New("教师不存在")

// DocumentService 文书润色预约业务接口
//
// 与培训预约同一状态机；进度与润色内容更新统一要求已接受
type DocumentService interface {
	Reserve(ctx context.Context, studentID uint, req *dto.ReserveDocumentRequest) (*dto.ReserveResponse, error)
	ListForStudent(ctx context.Context, studentID uint) ([]dto.DocumentResponse, error)
	DetailForStudent(ctx context.Context, id, studentID uint) (*dto.DocumentResponse, error)
	ListForTeacher(ctx context.Context, teacherID uint, req *dto.ReservationListRequest) ([]dto.DocumentResponse, error)
	DetailForTeacher(ctx context.Context, id, teacherID uint) (*dto.DocumentResponse, error)
	UpdateStatus(ctx context.Context, teacherID uint, req *dto.UpdateStatusRequest) error
	UpdateProgress(ctx context.Context, teacherID uint, req *dto.UpdateDocumentProgressRequest) error
	UpdateContent(ctx context.Context, teacherID uint, req *dto.UpdateDocumentContentRequest) error
}

type documentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDocumentService 创建 DocumentService 实例
func NewDocumentService(repo *repository.Repository, logger *zap.Logger) DocumentService {
	return &documentService{repo: repo, logger: logger}
}

// ────────────────────── 学生端 ──────────────────────

// Reserve 创建文书预约：教师必填且须真实存在，初始 pending、进度 0
func (s *documentService) Reserve(ctx context.Context, studentID uint, req *dto.ReserveDocumentRequest) (*dto.ReserveResponse, error) {
	// 校验教师存在（角色不符同样视为不存在）
	if _, err := s.repo.User.GetByIDAndRole(ctx, req.TeacherID, model.RoleTeacher); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.Uint("teacher_id", req.TeacherID), zap.Error(err))
		return nil, err
	}

	reservation := &model.DocumentReservation{
		StudentID:       studentID,
		TeacherID:       req.TeacherID,
		DocumentCount:   req.DocumentCount,
		DocumentType:    req.DocumentType,
		TargetSchool:    req.TargetSchool,
		Notes:           req.Notes,
		OriginalContent: req.OriginalContent,
		Status:          model.StatusPending,
	}

	if err := s.repo.Document.Create(ctx, reservation); err != nil {
		s.logger.Error("创建文书预约失败", zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}

	return &dto.ReserveResponse{ReservationID: reservation.ID}, nil
}

func (s *documentService) ListForStudent(ctx context.Context, studentID uint) ([]dto.DocumentResponse, error) {
	reservations, err := s.repo.Document.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询文书预约列表失败", zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}

	teacherIDs := make([]uint, 0, len(reservations))
	for i := range reservations {
		teacherIDs = append(teacherIDs, reservations[i].TeacherID)
	}
	teacherNames, err := s.repo.TeacherProfile.NamesByUserID(ctx, teacherIDs)
	if err != nil {
		return nil, err
	}

	result := make([]dto.DocumentResponse, 0, len(reservations))
	for i := range reservations {
		r := &reservations[i]
		result = append(result, dto.DocumentResponse{
			ID:             r.ID,
			TeacherID:      r.TeacherID,
			TeacherName:    teacherNames[r.TeacherID],
			DocumentType:   r.DocumentType,
			DocumentCount:  r.DocumentCount,
			TargetSchool:   r.TargetSchool,
			Status:         r.Status,
			Progress:       r.Progress,
			RevisedContent: r.RevisedContent,
			CreatedAt:      r.CreatedAt.Format(timeLayout),
		})
	}
	return result, nil
}

func (s *documentService) DetailForStudent(ctx context.Context, id, studentID uint) (*dto.DocumentResponse, error) {
	r, err := s.repo.Document.GetByIDForStudent(ctx, id, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("查询文书预约失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	teacherNames, err := s.repo.TeacherProfile.NamesByUserID(ctx, []uint{r.TeacherID})
	if err != nil {
		return nil, err
	}

	return &dto.DocumentResponse{
		ID:             r.ID,
		TeacherID:      r.TeacherID,
		TeacherName:    teacherNames[r.TeacherID],
		DocumentType:   r.DocumentType,
		DocumentCount:  r.DocumentCount,
		TargetSchool:   r.TargetSchool,
		Status:         r.Status,
		Progress:       r.Progress,
		Notes:          r.Notes,
		Comments:       r.Comments,
		RevisedContent: r.RevisedContent,
		CreatedAt:      r.CreatedAt.Format(timeLayout),
		UpdatedAt:      r.UpdatedAt.Format(timeLayout),
	}, nil
}

// ────────────────────── 教师端 ──────────────────────

func (s *documentService) ListForTeacher(ctx context.Context, teacherID uint, req *dto.ReservationListRequest) ([]dto.DocumentResponse, error) {
	filters := &repository.ReservationFilters{
		Status:      req.Status,
		Kind:        req.DocumentType,
		StudentName: req.StudentName,
	}

	reservations, err := s.repo.Document.ListByTeacher(ctx, teacherID, filters)
	if err != nil {
		s.logger.Error("查询文书预约列表失败", zap.Uint("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}

	studentIDs := make([]uint, 0, len(reservations))
	for i := range reservations {
		studentIDs = append(studentIDs, reservations[i].StudentID)
	}
	profiles, err := s.repo.StudentProfile.ProfilesByUserID(ctx, studentIDs)
	if err != nil {
		return nil, err
	}

	result := make([]dto.DocumentResponse, 0, len(reservations))
	for i := range reservations {
		r := &reservations[i]
		item := dto.DocumentResponse{
			ID:            r.ID,
			DocumentType:  r.DocumentType,
			DocumentCount: r.DocumentCount,
			TargetSchool:  r.TargetSchool,
			Notes:         r.Notes,
			Status:        r.Status,
			Progress:      r.Progress,
			CreatedAt:     r.CreatedAt.Format(timeLayout),
			UpdatedAt:     r.UpdatedAt.Format(timeLayout),
		}
		if p, ok := profiles[r.StudentID]; ok {
			item.StudentName = p.Name
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *documentService) DetailForTeacher(ctx context.Context, id, teacherID uint) (*dto.DocumentResponse, error) {
	r, err := s.repo.Document.GetByIDForTeacher(ctx, id, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("查询文书预约失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	item := &dto.DocumentResponse{
		ID:              r.ID,
		DocumentType:    r.DocumentType,
		DocumentCount:   r.DocumentCount,
		TargetSchool:    r.TargetSchool,
		Notes:           r.Notes,
		Comments:        r.Comments,
		Status:          r.Status,
		Progress:        r.Progress,
		OriginalContent: r.OriginalContent,
		RevisedContent:  r.RevisedContent,
		CreatedAt:       r.CreatedAt.Format(timeLayout),
		UpdatedAt:       r.UpdatedAt.Format(timeLayout),
	}

	profiles, err := s.repo.StudentProfile.ProfilesByUserID(ctx, []uint{r.StudentID})
	if err != nil {
		return nil, err
	}
	if p, ok := profiles[r.StudentID]; ok {
		item.StudentName = p.Name
	}
	return item, nil
}

// UpdateStatus 受理预约：仅 pending 可处理，目标状态 accepted/rejected
func (s *documentService) UpdateStatus(ctx context.Context, teacherID uint, req *dto.UpdateStatusRequest) error {
	r, err := s.repo.Document.GetByIDForTeacher(ctx, req.ReservationID, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		s.logger.Error("查询文书预约失败", zap.Uint("id", req.ReservationID), zap.Error(err))
		return err
	}

	if r.Status != model.StatusPending {
		return ErrAlreadyProcessed
	}

	r.Status = req.Status
	if err := s.repo.Document.Update(ctx, r); err != nil {
		s.logger.Error("更新文书预约状态失败", zap.Uint("id", r.ID), zap.Error(err))
		return err
	}
	return nil
}

// UpdateProgress 更新文书进度：与培训进度同一守卫，要求已接受
// 进度 100 时同一操作内自动完成
func (s *documentService) UpdateProgress(ctx context.Context, teacherID uint, req *dto.UpdateDocumentProgressRequest) error {
	r, err := s.repo.Document.GetByIDForTeacher(ctx, req.ReservationID, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		s.logger.Error("查询文书预约失败", zap.Uint("id", req.ReservationID), zap.Error(err))
		return err
	}

	if r.Status != model.StatusAccepted {
		return ErrMustAcceptFirst
	}
	if req.Progress < 0 || req.Progress > 100 {
		return ErrInvalidProgress
	}

	r.Progress = req.Progress
	if req.Progress == 100 {
		r.Status = model.StatusCompleted
	}

	if err := s.repo.Document.Update(ctx, r); err != nil {
		s.logger.Error("更新文书进度失败", zap.Uint("id", r.ID), zap.Error(err))
		return err
	}
	return nil
}

// UpdateContent 更新润色内容：要求已接受
func (s *documentService) UpdateContent(ctx context.Context, teacherID uint, req *dto.UpdateDocumentContentRequest) error {
	r, err := s.repo.Document.GetByIDForTeacher(ctx, req.ReservationID, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		s.logger.Error("查询文书预约失败", zap.Uint("id", req.ReservationID), zap.Error(err))
		return err
	}

	if r.Status != model.StatusAccepted {
		return ErrMustAcceptFirst
	}

	r.RevisedContent = req.RevisedContent
	if err := s.repo.Document.Update(ctx, r); err != nil {
		s.logger.Error("更新润色内容失败", zap.Uint("id", r.ID), zap.Error(err))
		return err
	}
	return nil
}
