package handler

import "github.com/zjy1055/zuohuiying/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	Student  *StudentHandler
	Teacher  *TeacherHandler
	Training *TrainingHandler
	Document *DocumentHandler
	School   *SchoolHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		Student:  NewStudentHandler(svc.Student),
		Teacher:  NewTeacherHandler(svc.Teacher),
		Training: NewTrainingHandler(svc.Training),
		Document: NewDocumentHandler(svc.Document),
		School:   NewSchoolHandler(svc.School),
	}
}
