package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zjy1055/zuohuiying/internal/dto"
	"github.com/zjy1055/zuohuiying/internal/model"
	"github.com/zjy1055/zuohuiying/internal/repository"
)

// 模拟成功率参数：基准 0.5，各项达标加成，上限 0.95
const (
	predictBaseRate  = 0.5
	predictToeflBar  = 100.0
	predictGreBar    = 320.0
	predictGpaBar    = 3.5
	predictToeflGain = 0.2
	predictGreGain   = 0.2
	predictGpaGain   = 0.1
	predictRateCap   = 0.95
)

// 成功案例附件在对象存储中的键前缀
const successCasePrefix = "success-cases"

// TeacherService 教师端业务接口：档案、学生统计、成功率预测、案例管理
type TeacherService interface {
	GetProfile(ctx context.Context, userID uint) (*dto.TeacherProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateTeacherProfileRequest) error
	StudentStatistics(ctx context.Context) (*dto.StudentStatisticsResponse, error)
	Predict(ctx context.Context, req *dto.PredictRequest) (*dto.PredictResponse, error)
	ExportStudentStatistics(ctx context.Context) ([]byte, error)
	AddSuccessCase(ctx context.Context, req *dto.AddSuccessCaseRequest, filename string, fileData []byte, contentType string) (uint, error)
	DeleteSuccessCase(ctx context.Context, id uint) error
}

type teacherService struct {
	repo   *repository.Repository
	store  FileStore
	logger *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(repo *repository.Repository, store FileStore, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, store: store, logger: logger}
}

// ────────────────────── 档案 ──────────────────────

func (s *teacherService) GetProfile(ctx context.Context, userID uint) (*dto.TeacherProfileResponse, error) {
	profile, err := s.repo.TeacherProfile.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("查询教师档案失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	return &dto.TeacherProfileResponse{
		ID:      profile.ID,
		Name:    profile.Name,
		Email:   profile.Email,
		Phone:   profile.Phone,
		Subject: profile.Subject,
	}, nil
}

func (s *teacherService) UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateTeacherProfileRequest) error {
	profile, err := s.repo.TeacherProfile.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		s.logger.Error("查询教师档案失败", zap.Uint("user_id", userID), zap.Error(err))
		return err
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Email != nil {
		profile.Email = *req.Email
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Subject != nil {
		profile.Subject = *req.Subject
	}

	if err := s.repo.TeacherProfile.Update(ctx, profile); err != nil {
		s.logger.Error("更新教师档案失败", zap.Uint("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 学生统计 ──────────────────────

// StudentStatistics 全体学生统计：性别计数 + 三科均分
// 均分仅对已填写该项成绩的学生求值
func (s *teacherService) StudentStatistics(ctx context.Context) (*dto.StudentStatisticsResponse, error) {
	profiles, err := s.repo.StudentProfile.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询学生档案失败", zap.Error(err))
		return nil, err
	}
	return buildStatistics(profiles), nil
}

func buildStatistics(profiles []model.StudentProfile) *dto.StudentStatisticsResponse {
	stats := &dto.StudentStatisticsResponse{TotalCount: len(profiles)}

	var toeflSum, greSum, gpaSum float64
	var toeflN, greN, gpaN int
	for i := range profiles {
		p := &profiles[i]
		switch p.Gender {
		case "男":
			stats.MaleCount++
		case "女":
			stats.FemaleCount++
		}
		if p.Toefl != nil {
			toeflSum += *p.Toefl
			toeflN++
		}
		if p.Gre != nil {
			greSum += *p.Gre
			greN++
		}
		if p.Gpa != nil {
			gpaSum += *p.Gpa
			gpaN++
		}
	}

	if toeflN > 0 {
		stats.AverageToefl = round2(toeflSum / float64(toeflN))
	}
	if greN > 0 {
		stats.AverageGre = round2(greSum / float64(greN))
	}
	if gpaN > 0 {
		stats.AverageGpa = round2(gpaSum / float64(gpaN))
	}
	return stats
}

// Predict 模拟成功率：按最低分过滤学生计数，各项门槛达标加成
func (s *teacherService) Predict(ctx context.Context, req *dto.PredictRequest) (*dto.PredictResponse, error) {
	total, err := s.repo.StudentProfile.Count(ctx)
	if err != nil {
		s.logger.Error("统计学生总数失败", zap.Error(err))
		return nil, err
	}

	qualified, err := s.repo.StudentProfile.CountWithMinScores(ctx, req.ToeflMin, req.GreMin, req.GpaMin)
	if err != nil {
		s.logger.Error("统计达标学生数失败", zap.Error(err))
		return nil, err
	}

	rate := predictBaseRate
	if req.ToeflMin != nil && *req.ToeflMin >= predictToeflBar {
		rate += predictToeflGain
	}
	if req.GreMin != nil && *req.GreMin >= predictGreBar {
		rate += predictGreGain
	}
	if req.GpaMin != nil && *req.GpaMin >= predictGpaBar {
		rate += predictGpaGain
	}
	if rate > predictRateCap {
		rate = predictRateCap
	}

	return &dto.PredictResponse{
		QualifiedStudents: qualified,
		TotalStudents:     total,
		SuccessRate:       round2(rate * 100),
	}, nil
}

// ExportStudentStatistics 学生统计 Excel 导出
// 明细 Sheet 按档案逐行，未填成绩留空；末尾追加汇总行
func (s *teacherService) ExportStudentStatistics(ctx context.Context) ([]byte, error) {
	profiles, err := s.repo.StudentProfile.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询学生档案失败", zap.Error(err))
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "学生统计"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []interface{}{"姓名", "性别", "年龄", "托福", "GRE", "GPA", "目标地区", "邮箱", "电话"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}

	for i := range profiles {
		p := &profiles[i]
		row := []interface{}{p.Name, p.Gender, intOrBlank(p.Age), floatOrBlank(p.Toefl), floatOrBlank(p.Gre), floatOrBlank(p.Gpa), p.TargetRegion, p.Email, p.Phone}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	stats := buildStatistics(profiles)
	summary := []interface{}{
		fmt.Sprintf("合计 %d 人（男 %d / 女 %d）", stats.TotalCount, stats.MaleCount, stats.FemaleCount),
		"", "",
		stats.AverageToefl, stats.AverageGre, stats.AverageGpa,
	}
	cell := fmt.Sprintf("A%d", len(profiles)+3)
	if err := f.SetSheetRow(sheet, cell, &summary); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, err
	}
	return buf.Bytes(), nil
}

// ────────────────────── 成功案例 ──────────────────────

// AddSuccessCase 添加成功案例：有附件时先传对象存储，记录对象键
func (s *teacherService) AddSuccessCase(ctx context.Context, req *dto.AddSuccessCaseRequest, filename string, fileData []byte, contentType string) (uint, error) {
	successCase := &model.SuccessCase{
		Title:   req.Title,
		Content: req.Content,
	}

	if len(fileData) > 0 {
		if s.store == nil {
			return 0, errors.New("对象存储不可用")
		}
		objectName, err := s.store.Upload(ctx, successCasePrefix, filepath.Base(filename), fileData, contentType)
		if err != nil {
			s.logger.Error("上传案例附件失败", zap.String("filename", filename), zap.Error(err))
			return 0, err
		}
		successCase.FilePath = objectName
	}

	if err := s.repo.SuccessCase.Create(ctx, successCase); err != nil {
		s.logger.Error("创建成功案例失败", zap.Error(err))
		return 0, err
	}
	return successCase.ID, nil
}

// DeleteSuccessCase 删除成功案例并清理附件
func (s *teacherService) DeleteSuccessCase(ctx context.Context, id uint) error {
	successCase, err := s.repo.SuccessCase.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		s.logger.Error("查询成功案例失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.SuccessCase.Delete(ctx, id); err != nil {
		s.logger.Error("删除成功案例失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	// 附件清理失败只记日志，不影响删除结果
	if successCase.FilePath != "" && s.store != nil {
		if err := s.store.Remove(ctx, successCase.FilePath); err != nil {
			s.logger.Warn("删除案例附件失败", zap.String("object", successCase.FilePath), zap.Error(err))
		}
	}
	return nil
}

// ────────────────────── 辅助 ──────────────────────

func intOrBlank(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func floatOrBlank(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
