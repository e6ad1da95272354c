package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求
// 学生与教师共用：角色特有字段按角色取用，其余忽略
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=50"`
	Role     string `json:"role"     binding:"required,oneof=student teacher"`

	// 基础信息
	Name  string `json:"name"  binding:"required,max=50"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone" binding:"omitempty,max=20"`

	// 留学生特有信息
	Gender       string   `json:"gender"        binding:"omitempty,max=10"`
	Age          *int     `json:"age"           binding:"omitempty,min=18,max=100"`
	Toefl        *float64 `json:"toefl"         binding:"omitempty,min=0,max=120"`
	Gre          *float64 `json:"gre"           binding:"omitempty,min=260,max=340"`
	Gpa          *float64 `json:"gpa"           binding:"omitempty,min=0,max=4"`
	TargetRegion string   `json:"target_region" binding:"omitempty,max=100"`

	// 教师特有信息
	Subject string `json:"subject" binding:"omitempty,max=100"`
}

// LoginRequest 登录请求
// 与原前端约定一致：登录需同时匹配用户名、密码与角色
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"     binding:"required,oneof=student teacher"`
}

// RegisterResponse 注册成功响应
type RegisterResponse struct {
	UserID uint `json:"user_id"`
}

// TokenResponse 登录成功响应
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // Access Token 有效期（秒）
	UserID      uint   `json:"user_id"`
	Role        string `json:"role"`
}
