package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zjy1055/zuohuiying/internal/model"
)

// DocumentRepository 文书预约数据访问接口
// 与 TrainingRepository 同策略：所有权谓词随主键同查
type DocumentRepository interface {
	Create(ctx context.Context, reservation *model.DocumentReservation) error
	ListByStudent(ctx context.Context, studentID uint) ([]model.DocumentReservation, error)
	GetByIDForStudent(ctx context.Context, id, studentID uint) (*model.DocumentReservation, error)
	ListByTeacher(ctx context.Context, teacherID uint, filters *ReservationFilters) ([]model.DocumentReservation, error)
	GetByIDForTeacher(ctx context.Context, id, teacherID uint) (*model.DocumentReservation, error)
	Update(ctx context.Context, reservation *model.DocumentReservation) error
}

// documentRepo DocumentRepository 的 GORM 实现
type documentRepo struct {
	db *gorm.DB
}

// NewDocumentRepo 创建 DocumentRepository 实例
func NewDocumentRepo(db *gorm.DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, reservation *model.DocumentReservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *documentRepo) ListByStudent(ctx context.Context, studentID uint) ([]model.DocumentReservation, error) {
	var reservations []model.DocumentReservation
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *documentRepo) GetByIDForStudent(ctx context.Context, id, studentID uint) (*model.DocumentReservation, error) {
	var reservation model.DocumentReservation
	err := r.db.WithContext(ctx).
		Where("id = ? AND student_id = ?", id, studentID).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *documentRepo) ListByTeacher(ctx context.Context, teacherID uint, filters *ReservationFilters) ([]model.DocumentReservation, error) {
	db := r.db.WithContext(ctx).Where("teacher_id = ?", teacherID)

	if filters != nil {
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.Kind != "" {
			db = db.Where("document_type = ?", filters.Kind)
		}
		if filters.StudentName != "" {
			sub := r.db.Table("student_profiles").
				Select("user_id").
				Where("name LIKE ?", "%"+filters.StudentName+"%")
			db = db.Where("student_id IN (?)", sub)
		}
	}

	var reservations []model.DocumentReservation
	if err := db.Order("created_at DESC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *documentRepo) GetByIDForTeacher(ctx context.Context, id, teacherID uint) (*model.DocumentReservation, error) {
	var reservation model.DocumentReservation
	err := r.db.WithContext(ctx).
		Where("id = ? AND teacher_id = ?", id, teacherID).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *documentRepo) Update(ctx context.Context, reservation *model.DocumentReservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}
