package model

import "time"

// 用户角色
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// User 用户表 — 对应 users
// 每个用户按角色拥有且仅拥有一份学生或教师档案，随用户删除级联
type User struct {
	ID        uint      `gorm:"primaryKey"                          json:"id"`
	Username  string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"type:varchar(255);not null"          json:"-"`
	Role      string    `gorm:"type:varchar(20);not null"           json:"role"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"  json:"created_at"`

	// 关联
	StudentProfile *StudentProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"student_profile,omitempty"`
	TeacherProfile *TeacherProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"teacher_profile,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
