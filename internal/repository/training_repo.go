package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zjy1055/zuohuiying/internal/model"
)

// ReservationFilters 教师端预约列表过滤条件（空值不过滤）
type ReservationFilters struct {
	Status      string
	Kind        string // training_type 或 document_type
	StudentName string // 学生姓名模糊匹配
}

// TrainingRepository 培训预约数据访问接口
// 所有权谓词写入查询本身：非本人行与不存在的行同样返回 gorm.ErrRecordNotFound
type TrainingRepository interface {
	Create(ctx context.Context, reservation *model.TrainingReservation) error
	ListByStudent(ctx context.Context, studentID uint) ([]model.TrainingReservation, error)
	GetByIDForStudent(ctx context.Context, id, studentID uint) (*model.TrainingReservation, error)
	ListByTeacher(ctx context.Context, teacherID uint, filters *ReservationFilters) ([]model.TrainingReservation, error)
	GetByIDForTeacher(ctx context.Context, id, teacherID uint) (*model.TrainingReservation, error)
	Update(ctx context.Context, reservation *model.TrainingReservation) error
}

// trainingRepo TrainingRepository 的 GORM 实现
type trainingRepo struct {
	db *gorm.DB
}

// NewTrainingRepo 创建 TrainingRepository 实例
func NewTrainingRepo(db *gorm.DB) TrainingRepository {
	return &trainingRepo{db: db}
}

func (r *trainingRepo) Create(ctx context.Context, reservation *model.TrainingReservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *trainingRepo) ListByStudent(ctx context.Context, studentID uint) ([]model.TrainingReservation, error) {
	var reservations []model.TrainingReservation
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *trainingRepo) GetByIDForStudent(ctx context.Context, id, studentID uint) (*model.TrainingReservation, error) {
	var reservation model.TrainingReservation
	err := r.db.WithContext(ctx).
		Where("id = ? AND student_id = ?", id, studentID).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *trainingRepo) ListByTeacher(ctx context.Context, teacherID uint, filters *ReservationFilters) ([]model.TrainingReservation, error) {
	db := r.db.WithContext(ctx).Where("teacher_id = ?", teacherID)

	if filters != nil {
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.Kind != "" {
			db = db.Where("training_type = ?", filters.Kind)
		}
		if filters.StudentName != "" {
			sub := r.db.Table("student_profiles").
				Select("user_id").
				Where("name LIKE ?", "%"+filters.StudentName+"%")
			db = db.Where("student_id IN (?)", sub)
		}
	}

	var reservations []model.TrainingReservation
	if err := db.Order("created_at DESC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *trainingRepo) GetByIDForTeacher(ctx context.Context, id, teacherID uint) (*model.TrainingReservation, error) {
	var reservation model.TrainingReservation
	err := r.db.WithContext(ctx).
		Where("id = ? AND teacher_id = ?", id, teacherID).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *trainingRepo) Update(ctx context.Context, reservation *model.TrainingReservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}
