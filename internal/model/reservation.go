package model

import "time"

// 预约状态机：pending → accepted | rejected；accepted → completed
// completed 仅由进度达到上限自动触发；rejected 与 completed 为终态
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

// TrainingReservation 语言培训预约表 — 对应 training_reservations
// teacher_id 可空：学生下单时可不指定教师
// student_id/teacher_id 创建后不可变
type TrainingReservation struct {
	ID            uint      `gorm:"primaryKey"                             json:"id"`
	StudentID     uint      `gorm:"not null;index"                         json:"student_id"`
	TeacherID     *uint     `gorm:"index"                                  json:"teacher_id"`
	TotalHours    int       `gorm:"not null"                               json:"total_hours"`
	TrainingType  string    `gorm:"type:varchar(50)"                       json:"training_type"`
	Notes         string    `gorm:"type:text"                              json:"notes"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	AttendedHours int       `gorm:"not null;default:0"                     json:"attended_hours"`
	Feedback      string    `gorm:"type:text"                              json:"feedback"`
	Homework      string    `gorm:"type:text"                              json:"homework"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"     json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"     json:"updated_at"`
}

// TableName 指定表名
func (TrainingReservation) TableName() string { return "training_reservations" }

// DocumentReservation 文书润色预约表 — 对应 document_reservations
// teacher_id 必填且创建时校验教师存在
type DocumentReservation struct {
	ID              uint      `gorm:"primaryKey"                             json:"id"`
	StudentID       uint      `gorm:"not null;index"                         json:"student_id"`
	TeacherID       uint      `gorm:"not null;index"                         json:"teacher_id"`
	DocumentCount   int       `gorm:"not null"                               json:"document_count"`
	DocumentType    string    `gorm:"type:varchar(50)"                       json:"document_type"`
	TargetSchool    string    `gorm:"type:varchar(200)"                      json:"target_school"`
	Notes           string    `gorm:"type:text"                              json:"notes"`
	Comments        string    `gorm:"type:text"                              json:"comments"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Progress        int       `gorm:"not null;default:0"                     json:"progress"`
	OriginalContent string    `gorm:"type:text"                              json:"original_content"`
	RevisedContent  string    `gorm:"type:text"                              json:"revised_content"`
	FilePath        string    `gorm:"type:varchar(255)"                      json:"file_path"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"     json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"     json:"updated_at"`
}

// TableName 指定表名
func (DocumentReservation) TableName() string { return "document_reservations" }
