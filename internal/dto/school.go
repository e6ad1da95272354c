package dto

// ── 学校模块 DTO ──

// MajorResponse 学校专业信息
type MajorResponse struct {
	MajorName string `json:"major_name"`
	MajorRank int    `json:"major_rank"`
}

// SchoolResponse 学校信息响应
// RecommendationScore 仅推荐接口填充（2 位小数）
type SchoolResponse struct {
	ID                  uint            `json:"id"`
	ChineseName         string          `json:"chinese_name"`
	EnglishName         string          `json:"english_name"`
	Location            string          `json:"location"`
	Rank                int             `json:"rank"`
	BasicInfo           string          `json:"basic_info"`
	DetailedInfo        string          `json:"detailed_info"`
	Majors              []MajorResponse `json:"majors"`
	RecommendationScore *float64        `json:"recommendation_score,omitempty"`
}

// SchoolBriefResponse 学校列表简要信息（教师端学校管理列表）
type SchoolBriefResponse struct {
	ID          uint   `json:"id"`
	ChineseName string `json:"chinese_name"`
	EnglishName string `json:"english_name"`
	Location    string `json:"location"`
	Rank        int    `json:"rank"`
}

// MajorRequest 新增学校时的专业项
type MajorRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Rank int    `json:"rank" binding:"omitempty,min=0"`
}

// AddSchoolRequest 添加学校请求
type AddSchoolRequest struct {
	ChineseName  string         `json:"chinese_name"  binding:"required,max=100"`
	EnglishName  string         `json:"english_name"  binding:"required,max=200"`
	Location     string         `json:"location"      binding:"required,max=100"`
	Rank         int            `json:"rank"          binding:"required,min=1"`
	BasicInfo    string         `json:"basic_info"    binding:"omitempty"`
	DetailedInfo string         `json:"detailed_info" binding:"omitempty"`
	Majors       []MajorRequest `json:"majors"        binding:"omitempty,dive"`
}

// UpdateSchoolRequest 更新学校请求（仅更新非空字段）
type UpdateSchoolRequest struct {
	ChineseName  *string `json:"chinese_name"  binding:"omitempty,max=100"`
	EnglishName  *string `json:"english_name"  binding:"omitempty,max=200"`
	Location     *string `json:"location"      binding:"omitempty,max=100"`
	Rank         *int    `json:"rank"          binding:"omitempty,min=1"`
	BasicInfo    *string `json:"basic_info"`
	DetailedInfo *string `json:"detailed_info"`
}

// AddSchoolResponse 添加学校响应
type AddSchoolResponse struct {
	SchoolID uint `json:"school_id"`
}
