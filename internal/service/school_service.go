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

// ErrSchoolExists 中文名或英文名与现有学校冲突
var ErrSchoolExists = errors.New("学校已存在")

// SchoolService 学校库管理业务接口（教师端）
type SchoolService interface {
	List(ctx context.Context) ([]dto.SchoolBriefResponse, error)
	Add(ctx context.Context, req *dto.AddSchoolRequest) (*dto.AddSchoolResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateSchoolRequest) error
	Delete(ctx context.Context, id uint) error
}

type schoolService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSchoolService 创建 SchoolService 实例
func NewSchoolService(repo *repository.Repository, logger *zap.Logger) SchoolService {
	return &schoolService{repo: repo, logger: logger}
}

func (s *schoolService) List(ctx context.Context) ([]dto.SchoolBriefResponse, error) {
	schools, err := s.repo.School.List(ctx, nil)
	if err != nil {
		s.logger.Error("查询学校列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SchoolBriefResponse, 0, len(schools))
	for i := range schools {
		sc := &schools[i]
		result = append(result, dto.SchoolBriefResponse{
			ID:          sc.ID,
			ChineseName: sc.ChineseName,
			EnglishName: sc.EnglishName,
			Location:    sc.Location,
			Rank:        sc.Rank,
		})
	}
	return result, nil
}

// Add 添加学校：中英文名任一重复即拒绝，专业列表随学校同事务写入
func (s *schoolService) Add(ctx context.Context, req *dto.AddSchoolRequest) (*dto.AddSchoolResponse, error) {
	exists, err := s.repo.School.ExistsByName(ctx, req.ChineseName, req.EnglishName)
	if err != nil {
		s.logger.Error("检查学校重名失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrSchoolExists
	}

	school := &model.School{
		ChineseName:  req.ChineseName,
		EnglishName:  req.EnglishName,
		Location:     req.Location,
		Rank:         req.Rank,
		BasicInfo:    req.BasicInfo,
		DetailedInfo: req.DetailedInfo,
	}
	majors := make([]model.SchoolMajor, 0, len(req.Majors))
	for _, m := range req.Majors {
		majors = append(majors, model.SchoolMajor{
			MajorName: m.Name,
			MajorRank: m.Rank,
		})
	}

	if err := s.repo.School.CreateWithMajors(ctx, school, majors); err != nil {
		s.logger.Error("创建学校失败", zap.String("chinese_name", req.ChineseName), zap.Error(err))
		return nil, err
	}

	return &dto.AddSchoolResponse{SchoolID: school.ID}, nil
}

// Update 部分更新学校信息，不触碰专业列表
func (s *schoolService) Update(ctx context.Context, id uint, req *dto.UpdateSchoolRequest) error {
	school, err := s.repo.School.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		s.logger.Error("查询学校失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	if req.ChineseName != nil {
		school.ChineseName = *req.ChineseName
	}
	if req.EnglishName != nil {
		school.EnglishName = *req.EnglishName
	}
	if req.Location != nil {
		school.Location = *req.Location
	}
	if req.Rank != nil {
		school.Rank = *req.Rank
	}
	if req.BasicInfo != nil {
		school.BasicInfo = *req.BasicInfo
	}
	if req.DetailedInfo != nil {
		school.DetailedInfo = *req.DetailedInfo
	}

	if err := s.repo.School.Update(ctx, school); err != nil {
		s.logger.Error("更新学校失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// Delete 删除学校，专业记录级联删除
func (s *schoolService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.School.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		s.logger.Error("查询学校失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.School.Delete(ctx, id); err != nil {
		s.logger.Error("删除学校失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}
