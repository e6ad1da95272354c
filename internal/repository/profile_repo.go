package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zjy1055/zuohuiying/internal/model"
)

// StudentProfileRepository 学生档案数据访问接口
type StudentProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*model.StudentProfile, error)
	Update(ctx context.Context, profile *model.StudentProfile) error
	ListAll(ctx context.Context) ([]model.StudentProfile, error)
	Count(ctx context.Context) (int64, error)
	CountWithMinScores(ctx context.Context, toeflMin, greMin, gpaMin *float64) (int64, error)
	ProfilesByUserID(ctx context.Context, userIDs []uint) (map[uint]model.StudentProfile, error)
}

// studentProfileRepo StudentProfileRepository 的 GORM 实现
type studentProfileRepo struct {
	db *gorm.DB
}

// NewStudentProfileRepo 创建 StudentProfileRepository 实例
func NewStudentProfileRepo(db *gorm.DB) StudentProfileRepository {
	return &studentProfileRepo{db: db}
}

func (r *studentProfileRepo) GetByUserID(ctx context.Context, userID uint) (*model.StudentProfile, error) {
	var profile model.StudentProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *studentProfileRepo) Update(ctx context.Context, profile *model.StudentProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *studentProfileRepo) ListAll(ctx context.Context) ([]model.StudentProfile, error) {
	var profiles []model.StudentProfile
	if err := r.db.WithContext(ctx).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *studentProfileRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.StudentProfile{}).Count(&total).Error
	return total, err
}

// CountWithMinScores 统计达到各项最低分的学生数（为空的条件不参与过滤）
func (r *studentProfileRepo) CountWithMinScores(ctx context.Context, toeflMin, greMin, gpaMin *float64) (int64, error) {
	db := r.db.WithContext(ctx).Model(&model.StudentProfile{})
	if toeflMin != nil {
		db = db.Where("toefl >= ?", *toeflMin)
	}
	if greMin != nil {
		db = db.Where("gre >= ?", *greMin)
	}
	if gpaMin != nil {
		db = db.Where("gpa >= ?", *gpaMin)
	}
	var total int64
	err := db.Count(&total).Error
	return total, err
}

// ProfilesByUserID 批量查询学生档案（教师端列表附学生姓名与成绩）
func (r *studentProfileRepo) ProfilesByUserID(ctx context.Context, userIDs []uint) (map[uint]model.StudentProfile, error) {
	if len(userIDs) == 0 {
		return map[uint]model.StudentProfile{}, nil
	}
	var profiles []model.StudentProfile
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	result := make(map[uint]model.StudentProfile, len(profiles))
	for _, p := range profiles {
		result[p.UserID] = p
	}
	return result, nil
}

// TeacherProfileRepository 教师档案数据访问接口
type TeacherProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*model.TeacherProfile, error)
	Update(ctx context.Context, profile *model.TeacherProfile) error
	NamesByUserID(ctx context.Context, userIDs []uint) (map[uint]string, error)
}

// teacherProfileRepo TeacherProfileRepository 的 GORM 实现
type teacherProfileRepo struct {
	db *gorm.DB
}

// NewTeacherProfileRepo 创建 TeacherProfileRepository 实例
func NewTeacherProfileRepo(db *gorm.DB) TeacherProfileRepository {
	return &teacherProfileRepo{db: db}
}

func (r *teacherProfileRepo) GetByUserID(ctx context.Context, userID uint) (*model.TeacherProfile, error) {
	var profile model.TeacherProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *teacherProfileRepo) Update(ctx context.Context, profile *model.TeacherProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// NamesByUserID 批量查询教师姓名（列表展示用）
func (r *teacherProfileRepo) NamesByUserID(ctx context.Context, userIDs []uint) (map[uint]string, error) {
	if len(userIDs) == 0 {
		return map[uint]string{}, nil
	}
	var profiles []model.TeacherProfile
	err := r.db.WithContext(ctx).
		Select("user_id", "name").
		Where("user_id IN ?", userIDs).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(profiles))
	for _, p := range profiles {
		names[p.UserID] = p.Name
	}
	return names, nil
}
