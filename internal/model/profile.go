package model

// StudentProfile 留学生档案表 — 对应 student_profiles
// 三科成绩可空：注册时允许缺省，推荐评分要求三项齐全
type StudentProfile struct {
	ID           uint     `gorm:"primaryKey"                  json:"id"`
	UserID       uint     `gorm:"not null;uniqueIndex"        json:"user_id"`
	Name         string   `gorm:"type:varchar(50);not null"   json:"name"`
	Gender       string   `gorm:"type:varchar(10)"            json:"gender"`
	Age          *int     `json:"age"`
	Toefl        *float64 `json:"toefl"`
	Gre          *float64 `json:"gre"`
	Gpa          *float64 `json:"gpa"`
	TargetRegion string   `gorm:"type:varchar(100)"           json:"target_region"`
	Email        string   `gorm:"type:varchar(100)"           json:"email"`
	Phone        string   `gorm:"type:varchar(20)"            json:"phone"`
}

// TableName 指定表名
func (StudentProfile) TableName() string { return "student_profiles" }

// HasAllScores 托福/GRE/GPA 三项是否齐全（推荐评分前置条件）
func (p *StudentProfile) HasAllScores() bool {
	return p.Toefl != nil && p.Gre != nil && p.Gpa != nil
}

// TeacherProfile 教师档案表 — 对应 teacher_profiles
type TeacherProfile struct {
	ID      uint   `gorm:"primaryKey"                json:"id"`
	UserID  uint   `gorm:"not null;uniqueIndex"      json:"user_id"`
	Name    string `gorm:"type:varchar(50);not null" json:"name"`
	Email   string `gorm:"type:varchar(100)"         json:"email"`
	Phone   string `gorm:"type:varchar(20)"          json:"phone"`
	Subject string `gorm:"type:varchar(100)"         json:"subject"`
}

// TableName 指定表名
func (TeacherProfile) TableName() string { return "teacher_profiles" }
