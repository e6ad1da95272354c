package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User           UserRepository
	StudentProfile StudentProfileRepository
	TeacherProfile TeacherProfileRepository
	School         SchoolRepository
	Training       TrainingRepository
	Document       DocumentRepository
	SuccessCase    SuccessCaseRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:           NewUserRepo(db),
		StudentProfile: NewStudentProfileRepo(db),
		TeacherProfile: NewTeacherProfileRepo(db),
		School:         NewSchoolRepo(db),
		Training:       NewTrainingRepo(db),
		Document:       NewDocumentRepo(db),
		SuccessCase:    NewSuccessCaseRepo(db),
	}
}
