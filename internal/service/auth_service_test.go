package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/zjy1055/zuohuiying/config"
	"github.com/zjy1055/zuohuiying/internal/dto"
	"github.com/zjy1055/zuohuiying/internal/model"
	"github.com/zjy1055/zuohuiying/internal/repository"
	"github.com/zjy1055/zuohuiying/pkg/jwt"
)

func newAuthTestService(repo *repository.Repository) AuthService {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "unit-test-secret-0123456789",
			AccessTokenTTL: 30 * time.Minute,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	return NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
}

func TestRegisterStudentAndLogin(t *testing.T) {
	repo := newTestRepository()
	svc := newAuthTestService(repo)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "zhangsan",
		Password: "secret123",
		Role:     model.RoleStudent,
		Name:     "张三",
		Gender:   "男",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if resp.UserID == 0 {
		t.Fatal("user_id 未分配")
	}

	// 口令须散列存储
	user, err := repo.User.GetByUsername(ctx, "zhangsan")
	if err != nil {
		t.Fatal(err)
	}
	if user.Password == "secret123" {
		t.Error("口令以明文存储")
	}

	token, err := svc.Login(ctx, &dto.LoginRequest{
		Username: "zhangsan",
		Password: "secret123",
		Role:     model.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token.AccessToken == "" || token.TokenType != "bearer" {
		t.Errorf("token = %+v", token)
	}
	if token.UserID != resp.UserID || token.Role != model.RoleStudent {
		t.Errorf("token 身份 = (%d, %s)", token.UserID, token.Role)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newTestRepository()
	svc := newAuthTestService(repo)
	ctx := context.Background()

	req := &dto.RegisterRequest{
		Username: "zhangsan", Password: "secret123",
		Role: model.RoleStudent, Name: "张三",
	}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(ctx, req); !errors.Is(err, ErrUsernameExists) {
		t.Errorf("重复用户名: error = %v, want ErrUsernameExists", err)
	}
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	repo := newTestRepository()
	svc := newAuthTestService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "zhangsan", Password: "secret123",
		Role: model.RoleStudent, Name: "张三",
	}); err != nil {
		t.Fatal(err)
	}

	// 用户名/口令/角色三种失败对外同一错误
	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"用户名不存在", dto.LoginRequest{Username: "nobody", Password: "secret123", Role: model.RoleStudent}},
		{"口令错误", dto.LoginRequest{Username: "zhangsan", Password: "wrong", Role: model.RoleStudent}},
		{"角色不符", dto.LoginRequest{Username: "zhangsan", Password: "secret123", Role: model.RoleTeacher}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(ctx, &tt.req); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLogoutWithoutRedis(t *testing.T) {
	repo := newTestRepository()
	svc := newAuthTestService(repo)

	// Redis 不可用时登出降级为 no-op
	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("Logout() error = %v", err)
	}
}
