package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/zjy1055/zuohuiying/config"
	"github.com/zjy1055/zuohuiying/internal/repository"
	"github.com/zjy1055/zuohuiying/pkg/jwt"
	"github.com/zjy1055/zuohuiying/pkg/redis"
)

// ErrNotFound 记录不存在，或存在但不属于调用者
// 两种情况刻意不区分：越权探测与不存在对外表现一致
var ErrNotFound = errors.New("记录不存在")

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	Student  StudentService
	Teacher  TeacherService
	Training TrainingService
	Document DocumentService
	School   SchoolService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	store FileStore,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Student:  NewStudentService(repo, store, logger),
		Teacher:  NewTeacherService(repo, store, logger),
		Training: NewTrainingService(repo, logger),
		Document: NewDocumentService(repo, logger),
		School:   NewSchoolService(repo, logger),
	}
}
