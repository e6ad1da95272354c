package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zjy1055/zuohuiying/internal/dto"
	"github.com/zjy1055/zuohuiying/internal/model"
	"github.com/zjy1055/zuohuiying/internal/repository"
)

// ErrIncompleteProfile 托福/GRE/GPA 未填齐，无法计算推荐分
var ErrIncompleteProfile = errors.New("请先完善托福、GRE 和 GPA 成绩")

// StudentService 学生端业务接口：档案、选校推荐、学校查询、成功案例浏览
type StudentService interface {
	GetProfile(ctx context.Context, userID uint) (*dto.StudentProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateStudentProfileRequest) error
	Recommend(ctx context.Context, userID uint) ([]dto.SchoolResponse, error)
	ListSchools(ctx context.Context) ([]dto.SchoolResponse, error)
	SearchSchools(ctx context.Context, req *dto.SchoolSearchRequest) ([]dto.SchoolResponse, error)
	GetSchool(ctx context.Context, id uint) (*dto.SchoolResponse, error)
	ListSuccessCases(ctx context.Context) ([]dto.SuccessCaseResponse, error)
}

type studentService struct {
	repo   *repository.Repository
	store  FileStore
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, store FileStore, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, store: store, logger: logger}
}

// ────────────────────── 档案 ──────────────────────

func (s *studentService) GetProfile(ctx context.Context, userID uint) (*dto.StudentProfileResponse, error) {
	profile, err := s.repo.StudentProfile.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("查询学生档案失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	return &dto.StudentProfileResponse{
		ID:           profile.ID,
		Name:         profile.Name,
		Gender:       profile.Gender,
		Age:          profile.Age,
		Toefl:        profile.Toefl,
		Gre:          profile.Gre,
		Gpa:          profile.Gpa,
		TargetRegion: profile.TargetRegion,
		Email:        profile.Email,
		Phone:        profile.Phone,
	}, nil
}

// UpdateProfile 部分更新：仅覆盖请求中出现的字段
func (s *studentService) UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateStudentProfileRequest) error {
	profile, err := s.repo.StudentProfile.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		s.logger.Error("查询学生档案失败", zap.Uint("user_id", userID), zap.Error(err))
		return err
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.Age != nil {
		profile.Age = req.Age
	}
	if req.Toefl != nil {
		profile.Toefl = req.Toefl
	}
	if req.Gre != nil {
		profile.Gre = req.Gre
	}
	if req.Gpa != nil {
		profile.Gpa = req.Gpa
	}
	if req.TargetRegion != nil {
		profile.TargetRegion = *req.TargetRegion
	}
	if req.Email != nil {
		profile.Email = *req.Email
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}

	if err := s.repo.StudentProfile.Update(ctx, profile); err != nil {
		s.logger.Error("更新学生档案失败", zap.Uint("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 选校推荐 ──────────────────────

// Recommend 选校推荐：目标地区先过滤，逐校算推荐分，保留 ≥60 分并降序返回
func (s *studentService) Recommend(ctx context.Context, userID uint) ([]dto.SchoolResponse, error) {
	profile, err := s.repo.StudentProfile.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("查询学生档案失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	if !profile.HasAllScores() {
		return nil, ErrIncompleteProfile
	}

	filters := &repository.SchoolSearchFilters{Region: profile.TargetRegion}
	schools, err := s.repo.School.List(ctx, filters)
	if err != nil {
		s.logger.Error("查询学校列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SchoolResponse, 0, len(schools))
	for i := range schools {
		sc := &schools[i]
		// 推荐线用原始分判断，四舍五入只作用于展示值
		raw := recommendationScore(*profile.Toefl, *profile.Gre, *profile.Gpa, sc.Rank)
		if raw < RecommendThreshold {
			continue
		}
		score := round2(raw)
		item := toSchoolResponse(sc)
		item.RecommendationScore = &score
		result = append(result, item)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return *result[i].RecommendationScore > *result[j].RecommendationScore
	})
	return result, nil
}

// ────────────────────── 学校查询 ──────────────────────

func (s *studentService) ListSchools(ctx context.Context) ([]dto.SchoolResponse, error) {
	schools, err := s.repo.School.List(ctx, nil)
	if err != nil {
		s.logger.Error("查询学校列表失败", zap.Error(err))
		return nil, err
	}
	return toSchoolResponses(schools), nil
}

// SearchSchools 学校检索：名称/地区下推数据库，专业子串在专业列表上匹配
func (s *studentService) SearchSchools(ctx context.Context, req *dto.SchoolSearchRequest) ([]dto.SchoolResponse, error) {
	filters := &repository.SchoolSearchFilters{
		Name:   req.Name,
		Region: req.Region,
	}
	schools, err := s.repo.School.List(ctx, filters)
	if err != nil {
		s.logger.Error("检索学校失败", zap.Error(err))
		return nil, err
	}

	if req.Major != "" {
		matched := schools[:0]
		for i := range schools {
			if hasMajor(&schools[i], req.Major) {
				matched = append(matched, schools[i])
			}
		}
		schools = matched
	}
	return toSchoolResponses(schools), nil
}

func (s *studentService) GetSchool(ctx context.Context, id uint) (*dto.SchoolResponse, error) {
	school, err := s.repo.School.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("查询学校失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	item := toSchoolResponse(school)
	return &item, nil
}

// ────────────────────── 成功案例 ──────────────────────

// ListSuccessCases 成功案例列表，有附件时附限时下载链接
func (s *studentService) ListSuccessCases(ctx context.Context) ([]dto.SuccessCaseResponse, error) {
	cases, err := s.repo.SuccessCase.List(ctx)
	if err != nil {
		s.logger.Error("查询成功案例失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SuccessCaseResponse, 0, len(cases))
	for i := range cases {
		c := &cases[i]
		item := dto.SuccessCaseResponse{
			ID:      c.ID,
			Title:   c.Title,
			Content: c.Content,
			HasFile: c.FilePath != "",
		}
		if c.FilePath != "" && s.store != nil {
			url, err := s.store.PresignedURL(ctx, c.FilePath, fileURLExpiry)
			if err != nil {
				// 链接生成失败不致命，列表照常返回
				s.logger.Warn("生成下载链接失败", zap.Uint("case_id", c.ID), zap.Error(err))
			} else {
				item.FileURL = url
			}
		}
		result = append(result, item)
	}
	return result, nil
}

// ────────────────────── 辅助 ──────────────────────

func hasMajor(school *model.School, keyword string) bool {
	for i := range school.Majors {
		if strings.Contains(school.Majors[i].MajorName, keyword) {
			return true
		}
	}
	return false
}

func toSchoolResponse(school *model.School) dto.SchoolResponse {
	majors := make([]dto.MajorResponse, 0, len(school.Majors))
	for i := range school.Majors {
		m := &school.Majors[i]
		majors = append(majors, dto.MajorResponse{
			MajorName: m.MajorName,
			MajorRank: m.MajorRank,
		})
	}
	return dto.SchoolResponse{
		ID:           school.ID,
		ChineseName:  school.ChineseName,
		EnglishName:  school.EnglishName,
		Location:     school.Location,
		Rank:         school.Rank,
		BasicInfo:    school.BasicInfo,
		DetailedInfo: school.DetailedInfo,
		Majors:       majors,
	}
}

func toSchoolResponses(schools []model.School) []dto.SchoolResponse {
	result := make([]dto.SchoolResponse, 0, len(schools))
	for i := range schools {
		result = append(result, toSchoolResponse(&schools[i]))
	}
	return result
}
