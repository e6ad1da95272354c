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

// ── 预约生命周期业务错误（培训与文书共用）──

var (
	ErrAlreadyProcessed = errors.New("该预约已处理")
	ErrMustAcceptFirst  = errors.New("请先接受预约")
	ErrInvalidHours     = errors.New("已上课时不能超过总课时")
	ErrInvalidProgress  = errors.New("进度必须在 0-100 之间")
)

const timeLayout = "2006-01-02 15:04:05"

// TrainingService 语言培训预约业务接口
//
// 状态机：pending → accepted | rejected；accepted → completed
// completed 仅由课时进度达到总课时自动触发，rejected/completed 为终态
type TrainingService interface {
	Reserve(ctx context.Context, studentID uint, req *dto.ReserveTrainingRequest) (*dto.ReserveResponse, error)
	ListForStudent(ctx context.Context, studentID uint) ([]dto.TrainingResponse, error)
	DetailForStudent(ctx context.Context, id, studentID uint) (*dto.TrainingResponse, error)
	ListForTeacher(ctx context.Context, teacherID uint, req *dto.ReservationListRequest) ([]dto.TrainingResponse, error)
	DetailForTeacher(ctx context.Context, id, teacherID uint) (*dto.TrainingResponse, error)
	UpdateStatus(ctx context.Context, teacherID uint, req *dto.UpdateStatusRequest) error
	UpdateProgress(ctx context.Context, teacherID uint, req *dto.UpdateTrainingProgressRequest) error
	UpdateFeedback(ctx context.Context, teacherID uint, req *dto.UpdateFeedbackRequest) error
}

type trainingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTrainingService 创建 TrainingService 实例
func NewTrainingService(repo *repository.Repository, logger *zap.Logger) TrainingService {
	return &trainingService{repo: repo, logger: logger}
}

// ────────────────────── 学生端 ──────────────────────

// Reserve 创建培训预约：初始 pending、已上课时 0
// teacher_id 可缺省，后续由系统分配
func (s *trainingService) Reserve(ctx context.Context, studentID uint, req *dto.ReserveTrainingRequest) (*dto.ReserveResponse, error) {
	reservation := &model.TrainingReservation{
		StudentID:    studentID,
		TeacherID:    req.TeacherID,
		TotalHours:   req.TotalHours,
		TrainingType: req.TrainingType,
		Notes:        req.Notes,
		Status:       model.StatusPending,
	}

	if err := s.repo.Training.Create(ctx, reservation); err != nil {
		s.logger.Error("创建培训预约失败", zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}

	return &dto.ReserveResponse{ReservationID: reservation.ID}, nil
}

func (s *trainingService) ListForStudent(ctx context.Context, studentID uint) ([]dto.TrainingResponse, error) {
	reservations, err := s.repo.Training.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询培训预约列表失败", zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}

	teacherNames, err := s.teacherNames(ctx, reservations)
	if err != nil {
		return nil, err
	}

	result := make([]dto.TrainingResponse, 0, len(reservations))
	for i := range reservations {
		r := &reservations[i]
		item := dto.TrainingResponse{
			ID:            r.ID,
			TrainingType:  r.TrainingType,
			TeacherID:     r.TeacherID,
			TotalHours:    r.TotalHours,
			AttendedHours: r.AttendedHours,
			Status:        r.Status,
			Feedback:      r.Feedback,
			CreatedAt:     r.CreatedAt.Format(timeLayout),
		}
		if r.TeacherID != nil {
			item.TeacherName = teacherNames[*r.TeacherID]
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *trainingService) DetailForStudent(ctx context.Context, id, studentID uint) (*dto.TrainingResponse, error) {
	r, err := s.repo.Training.GetByIDForStudent(ctx, id, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("查询培训预约失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	teacherName := ""
	if r.TeacherID != nil {
		names, err := s.repo.TeacherProfile.NamesByUserID(ctx, []uint{*r.TeacherID})
		if err != nil {
			return nil, err
		}
		teacherName = names[*r.TeacherID]
	}

	return &dto.TrainingResponse{
		ID:            r.ID,
		TrainingType:  r.TrainingType,
		TeacherID:     r.TeacherID,
		TeacherName:   teacherName,
		TotalHours:    r.TotalHours,
		AttendedHours: r.AttendedHours,
		Status:        r.Status,
		Notes:         r.Notes,
		Feedback:      r.Feedback,
		Homework:      r.Homework,
		CreatedAt:     r.CreatedAt.Format(timeLayout),
		UpdatedAt:     r.UpdatedAt.Format(timeLayout),
	}, nil
}

// ────────────────────── 教师端 ──────────────────────

func (s *trainingService) ListForTeacher(ctx context.Context, teacherID uint, req *dto.ReservationListRequest) ([]dto.TrainingResponse, error) {
	filters := &repository.ReservationFilters{
		Status:      req.Status,
		Kind:        req.TrainingType,
		StudentName: req.StudentName,
	}

	reservations, err := s.repo.Training.ListByTeacher(ctx, teacherID, filters)
	if err != nil {
		s.logger.Error("查询培训预约列表失败", zap.Uint("teacher_id", teacherID), zap.Error(err))
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

	result := make([]dto.TrainingResponse, 0, len(reservations))
	for i := range reservations {
		r := &reservations[i]
		item := dto.TrainingResponse{
			ID:            r.ID,
			TrainingType:  r.TrainingType,
			TotalHours:    r.TotalHours,
			AttendedHours: r.AttendedHours,
			Status:        r.Status,
			Notes:         r.Notes,
			Feedback:      r.Feedback,
			CreatedAt:     r.CreatedAt.Format(timeLayout),
		}
		if p, ok := profiles[r.StudentID]; ok {
			item.StudentName = p.Name
			item.StudentScores = studentScores(&p)
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *trainingService) DetailForTeacher(ctx context.Context, id, teacherID uint) (*dto.TrainingResponse, error) {
	r, err := s.repo.Training.GetByIDForTeacher(ctx, id, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("查询培训预约失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	item := &dto.TrainingResponse{
		ID:            r.ID,
		TrainingType:  r.TrainingType,
		TotalHours:    r.TotalHours,
		AttendedHours: r.AttendedHours,
		Status:        r.Status,
		Notes:         r.Notes,
		Feedback:      r.Feedback,
		Homework:      r.Homework,
		CreatedAt:     r.CreatedAt.Format(timeLayout),
		UpdatedAt:     r.UpdatedAt.Format(timeLayout),
	}

	profiles, err := s.repo.StudentProfile.ProfilesByUserID(ctx, []uint{r.StudentID})
	if err != nil {
		return nil, err
	}
	if p, ok := profiles[r.StudentID]; ok {
		item.StudentName = p.Name
		item.StudentScores = studentScores(&p)
	}
	return item, nil
}

// UpdateStatus 受理预约：仅 pending 可处理，目标状态 accepted/rejected
func (s *trainingService) UpdateStatus(ctx context.Context, teacherID uint, req *dto.UpdateStatusRequest) error {
	r, err := s.repo.Training.GetByIDForTeacher(ctx, req.ReservationID, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		s.logger.Error("查询培训预约失败", zap.Uint("id", req.ReservationID), zap.Error(err))
		return err
	}

	if r.Status != model.StatusPending {
		return ErrAlreadyProcessed
	}

	r.Status = req.Status
	if err := s.repo.Training.Update(ctx, r); err != nil {
		s.logger.Error("更新培训预约状态失败", zap.Uint("id", r.ID), zap.Error(err))
		return err
	}
	return nil
}

// UpdateProgress 更新课时进度：要求已接受；课时达到上限时同一操作内自动完成
func (s *trainingService) UpdateProgress(ctx context.Context, teacherID uint, req *dto.UpdateTrainingProgressRequest) error {
	r, err := s.repo.Training.GetByIDForTeacher(ctx, req.ReservationID, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		s.logger.Error("查询培训预约失败", zap.Uint("id", req.ReservationID), zap.Error(err))
		return err
	}

	if r.Status != model.StatusAccepted {
		return ErrMustAcceptFirst
	}
	if req.AttendedHours < 0 || req.AttendedHours > r.TotalHours {
		return ErrInvalidHours
	}

	r.AttendedHours = req.AttendedHours
	if req.AttendedHours == r.TotalHours {
		r.Status = model.StatusCompleted
	}

	if err := s.repo.Training.Update(ctx, r); err != nil {
		s.logger.Error("更新培训进度失败", zap.Uint("id", r.ID), zap.Error(err))
		return err
	}
	return nil
}

// UpdateFeedback 添加培训反馈：无状态前置
func (s *trainingService) UpdateFeedback(ctx context.Context, teacherID uint, req *dto.UpdateFeedbackRequest) error {
	r, err := s.repo.Training.GetByIDForTeacher(ctx, req.ReservationID, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		s.logger.Error("查询培训预约失败", zap.Uint("id", req.ReservationID), zap.Error(err))
		return err
	}

	r.Feedback = req.Feedback
	if err := s.repo.Training.Update(ctx, r); err != nil {
		s.logger.Error("更新培训反馈失败", zap.Uint("id", r.ID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 辅助 ──────────────────────

// teacherNames 批量解析预约列表中的教师姓名
func (s *trainingService) teacherNames(ctx context.Context, reservations []model.TrainingReservation) (map[uint]string, error) {
	ids := make([]uint, 0, len(reservations))
	for i := range reservations {
		if reservations[i].TeacherID != nil {
			ids = append(ids, *reservations[i].TeacherID)
		}
	}
	return s.repo.TeacherProfile.NamesByUserID(ctx, ids)
}

// studentScores 拼装成绩信息：三科均未填时返回 nil
func studentScores(p *model.StudentProfile) *dto.StudentScores {
	if p.Toefl == nil && p.Gre == nil && p.Gpa == nil {
		return nil
	}
	return &dto.StudentScores{Toefl: p.Toefl, Gre: p.Gre, Gpa: p.Gpa}
}
