package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zjy1055/zuohuiying/config"
	"github.com/zjy1055/zuohuiying/internal/api/handler"
	"github.com/zjy1055/zuohuiying/internal/api/middleware"
	"github.com/zjy1055/zuohuiying/internal/model"
	"github.com/zjy1055/zuohuiying/pkg/jwt"
	"github.com/zjy1055/zuohuiying/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 学生端
			student := authorized.Group("/student", middleware.RoleAuth(model.RoleStudent))
			{
				student.GET("/profile", h.Student.GetProfile)
				student.PUT("/profile", h.Student.UpdateProfile)
				student.GET("/recommendation", h.Student.Recommend)
				student.GET("/schools", h.Student.ListSchools)
				student.GET("/schools/search", h.Student.SearchSchools)
				student.GET("/schools/:id", h.Student.GetSchool)
				student.GET("/success-cases", h.Student.ListSuccessCases)

				student.POST("/training/reserve", h.Training.Reserve)
				student.GET("/training/list", h.Training.ListForStudent)
				student.GET("/training/detail", h.Training.DetailForStudent)

				student.POST("/document/reserve", h.Document.Reserve)
				student.GET("/document/list", h.Document.ListForStudent)
				student.GET("/document/detail", h.Document.DetailForStudent)
			}

			// 教师端
			teacher := authorized.Group("/teacher", middleware.RoleAuth(model.RoleTeacher))
			{
				teacher.GET("/profile", h.Teacher.GetProfile)
				teacher.PUT("/profile", h.Teacher.UpdateProfile)
				teacher.GET("/statistics/student", h.Teacher.StudentStatistics)
				teacher.GET("/statistics/predict", h.Teacher.Predict)
				teacher.GET("/students/export", h.Teacher.ExportStudents)

				teacher.GET("/training/list", h.Training.ListForTeacher)
				teacher.GET("/training/detail", h.Training.DetailForTeacher)
				teacher.PUT("/training/status", h.Training.UpdateStatus)
				teacher.PUT("/training/progress", h.Training.UpdateProgress)
				teacher.PUT("/training/feedback", h.Training.UpdateFeedback)

				teacher.GET("/document/list", h.Document.ListForTeacher)
				teacher.GET("/document/detail", h.Document.DetailForTeacher)
				teacher.PUT("/document/status", h.Document.UpdateStatus)
				teacher.PUT("/document/progress", h.Document.UpdateProgress)
				teacher.PUT("/document/content", h.Document.UpdateContent)

				teacher.GET("/school/list", h.School.List)
				teacher.POST("/school/add", h.School.Add)
				teacher.PUT("/school/edit", h.School.Update)
				teacher.DELETE("/school/delete", h.School.Delete)

				teacher.POST("/success-case/add", h.Teacher.AddSuccessCase)
				teacher.DELETE("/success-case/delete", h.Teacher.DeleteSuccessCase)
			}
		}
	}

	return r
}
