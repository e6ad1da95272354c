package model

import "time"

// SuccessCase 成功案例表 — 对应 success_cases
// 纯展示数据，无生命周期逻辑；file_path 为对象存储键
type SuccessCase struct {
	ID        uint      `gorm:"primaryKey"                         json:"id"`
	Title     string    `gorm:"type:varchar(200);not null"         json:"title"`
	Content   string    `gorm:"type:text;not null"                 json:"content"`
	FilePath  string    `gorm:"type:varchar(255)"                  json:"file_path"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (SuccessCase) TableName() string { return "success_cases" }
