package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zjy1055/zuohuiying/internal/model"
)

// SchoolSearchFilters 学校检索条件（子串匹配，空值不过滤）
type SchoolSearchFilters struct {
	Name   string // 中文名或英文名
	Region string // 所在地
}

// SchoolRepository 学校数据访问接口
type SchoolRepository interface {
	CreateWithMajors(ctx context.Context, school *model.School, majors []model.SchoolMajor) error
	GetByID(ctx context.Context, id uint) (*model.School, error)
	ExistsByName(ctx context.Context, chineseName, englishName string) (bool, error)
	Update(ctx context.Context, school *model.School) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters *SchoolSearchFilters) ([]model.School, error)
}

// schoolRepo SchoolRepository 的 GORM 实现
type schoolRepo struct {
	db *gorm.DB
}

// NewSchoolRepo 创建 SchoolRepository 实例
func NewSchoolRepo(db *gorm.DB) SchoolRepository {
	return &schoolRepo{db: db}
}

// CreateWithMajors 同事务创建学校与专业列表
func (r *schoolRepo) CreateWithMajors(ctx context.Context, school *model.School, majors []model.SchoolMajor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(school).Error; err != nil {
			return err
		}
		for i := range majors {
			majors[i].SchoolID = school.ID
		}
		if len(majors) > 0 {
			if err := tx.Create(&majors).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *schoolRepo) GetByID(ctx context.Context, id uint) (*model.School, error) {
	var school model.School
	err := r.db.WithContext(ctx).
		Preload("Majors").
		Where("id = ?", id).
		First(&school).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

// ExistsByName 中文名或英文名任一命中即视为重复
func (r *schoolRepo) ExistsByName(ctx context.Context, chineseName, englishName string) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.School{}).
		Where("chinese_name = ? OR english_name = ?", chineseName, englishName).
		Count(&total).Error
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *schoolRepo) Update(ctx context.Context, school *model.School) error {
	return r.db.WithContext(ctx).Omit("Majors").Save(school).Error
}

// Delete 删除学校，专业由外键级联删除
func (r *schoolRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.School{}, id).Error
}

func (r *schoolRepo) List(ctx context.Context, filters *SchoolSearchFilters) ([]model.School, error) {
	db := r.db.WithContext(ctx).Preload("Majors")

	if filters != nil {
		if filters.Name != "" {
			pattern := "%" + filters.Name + "%"
			db = db.Where("chinese_name LIKE ? OR english_name LIKE ?", pattern, pattern)
		}
		if filters.Region != "" {
			db = db.Where("location LIKE ?", "%"+filters.Region+"%")
		}
	}

	var schools []model.School
	if err := db.Order("rank ASC").Find(&schools).Error; err != nil {
		return nil, err
	}
	return schools, nil
}
