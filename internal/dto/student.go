package dto

// ── 学生模块 DTO ──

// StudentProfileResponse 学生档案响应
type StudentProfileResponse struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Gender       string   `json:"gender"`
	Age          *int     `json:"age"`
	Toefl        *float64 `json:"toefl"`
	Gre          *float64 `json:"gre"`
	Gpa          *float64 `json:"gpa"`
	TargetRegion string   `json:"target_region"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
}

// UpdateStudentProfileRequest 学生档案部分更新请求（仅更新非空字段）
type UpdateStudentProfileRequest struct {
	Name         *string  `json:"name"          binding:"omitempty,max=50"`
	Gender       *string  `json:"gender"        binding:"omitempty,max=10"`
	Age          *int     `json:"age"           binding:"omitempty,min=18,max=100"`
	Toefl        *float64 `json:"toefl"         binding:"omitempty,min=0,max=120"`
	Gre          *float64 `json:"gre"           binding:"omitempty,min=260,max=340"`
	Gpa          *float64 `json:"gpa"           binding:"omitempty,min=0,max=4"`
	TargetRegion *string  `json:"target_region" binding:"omitempty,max=100"`
	Email        *string  `json:"email"         binding:"omitempty,email"`
	Phone        *string  `json:"phone"         binding:"omitempty,max=20"`
}

// SchoolSearchRequest 学校检索参数（名称/专业/地区子串匹配）
type SchoolSearchRequest struct {
	Name   string `form:"name"   binding:"omitempty,max=100"`
	Major  string `form:"major"  binding:"omitempty,max=100"`
	Region string `form:"region" binding:"omitempty,max=100"`
}

// SuccessCaseResponse 成功案例响应
type SuccessCaseResponse struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	HasFile bool   `json:"has_file"`
	FileURL string `json:"file_url,omitempty"` // 限时下载链接，无附件时省略
}
