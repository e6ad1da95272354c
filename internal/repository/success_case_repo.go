package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zjy1055/zuohuiying/internal/model"
)

// SuccessCaseRepository 成功案例数据访问接口
type SuccessCaseRepository interface {
	Create(ctx context.Context, successCase *model.SuccessCase) error
	GetByID(ctx context.Context, id uint) (*model.SuccessCase, error)
	List(ctx context.Context) ([]model.SuccessCase, error)
	Delete(ctx context.Context, id uint) error
}

// successCaseRepo SuccessCaseRepository 的 GORM 实现
type successCaseRepo struct {
	db *gorm.DB
}

// NewSuccessCaseRepo 创建 SuccessCaseRepository 实例
func NewSuccessCaseRepo(db *gorm.DB) SuccessCaseRepository {
	return &successCaseRepo{db: db}
}

func (r *successCaseRepo) Create(ctx context.Context, successCase *model.SuccessCase) error {
	return r.db.WithContext(ctx).Create(successCase).Error
}

func (r *successCaseRepo) GetByID(ctx context.Context, id uint) (*model.SuccessCase, error) {
	var successCase model.SuccessCase
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&successCase).Error
	if err != nil {
		return nil, err
	}
	return &successCase, nil
}

func (r *successCaseRepo) List(ctx context.Context) ([]model.SuccessCase, error) {
	var cases []model.SuccessCase
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *successCaseRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.SuccessCase{}, id).Error
}
