package dto

// ── 预约模块 DTO ──

// ReserveTrainingRequest 语言培训预约请求（学生端）
// teacher_id 可缺省，表示由系统后续分配
type ReserveTrainingRequest struct {
	TeacherID    *uint  `json:"teacher_id"`
	TotalHours   int    `json:"total_hours"   binding:"required,min=1"`
	TrainingType string `json:"training_type" binding:"omitempty,max=50"`
	Notes        string `json:"notes"`
}

// ReserveDocumentRequest 文书润色预约请求（学生端）
// teacher_id 必填，创建前校验教师存在
type ReserveDocumentRequest struct {
	TeacherID       uint   `json:"teacher_id"     binding:"required"`
	DocumentCount   int    `json:"document_count" binding:"required,min=1"`
	DocumentType    string `json:"document_type"  binding:"omitempty,max=50"`
	TargetSchool    string `json:"target_school"  binding:"omitempty,max=200"`
	Notes           string `json:"notes"`
	OriginalContent string `json:"original_content"`
}

// ReserveResponse 预约创建响应
type ReserveResponse struct {
	ReservationID uint `json:"reservation_id"`
}

// StudentScores 列表/详情附带的学生成绩（仅教师端，未填项省略）
type StudentScores struct {
	Toefl *float64 `json:"toefl,omitempty"`
	Gre   *float64 `json:"gre,omitempty"`
	Gpa   *float64 `json:"gpa,omitempty"`
}

// TrainingResponse 培训预约响应（学生端与教师端共用，按角色填充）
type TrainingResponse struct {
	ID            uint           `json:"id"`
	TrainingType  string         `json:"training_type"`
	TeacherID     *uint          `json:"teacher_id,omitempty"`
	TeacherName   string         `json:"teacher_name,omitempty"`
	StudentName   string         `json:"student_name,omitempty"`
	TotalHours    int            `json:"total_hours"`
	AttendedHours int            `json:"attended_hours"`
	Status        string         `json:"status"`
	Notes         string         `json:"notes,omitempty"`
	Feedback      string         `json:"feedback,omitempty"`
	Homework      string         `json:"homework,omitempty"`
	StudentScores *StudentScores `json:"student_scores,omitempty"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at,omitempty"`
}

// DocumentResponse 文书预约响应
type DocumentResponse struct {
	ID              uint   `json:"id"`
	TeacherID       uint   `json:"teacher_id,omitempty"`
	TeacherName     string `json:"teacher_name,omitempty"`
	StudentName     string `json:"student_name,omitempty"`
	DocumentType    string `json:"document_type"`
	DocumentCount   int    `json:"document_count"`
	TargetSchool    string `json:"target_school"`
	Status          string `json:"status"`
	Progress        int    `json:"progress"`
	Notes           string `json:"notes,omitempty"`
	Comments        string `json:"comments,omitempty"`
	OriginalContent string `json:"original_content,omitempty"`
	RevisedContent  string `json:"revised_content,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// ReservationListRequest 教师端预约列表过滤参数
type ReservationListRequest struct {
	Status       string `form:"status"        binding:"omitempty,oneof=pending accepted rejected completed"`
	StudentName  string `form:"student_name"  binding:"omitempty,max=50"`
	TrainingType string `form:"training_type" binding:"omitempty,max=50"`
	DocumentType string `form:"document_type" binding:"omitempty,max=50"`
}

// UpdateStatusRequest 预约受理请求（教师端）
// 仅允许 accepted/rejected 两个目标状态，pending 之外的预约不可再受理
type UpdateStatusRequest struct {
	ReservationID uint   `json:"reservation_id" binding:"required"`
	Status        string `json:"status"         binding:"required,oneof=accepted rejected"`
}

// UpdateTrainingProgressRequest 培训进度更新请求
type UpdateTrainingProgressRequest struct {
	ReservationID uint `json:"reservation_id" binding:"required"`
	AttendedHours int  `json:"attended_hours" binding:"min=0"`
}

// UpdateFeedbackRequest 培训反馈更新请求
type UpdateFeedbackRequest struct {
	ReservationID uint   `json:"reservation_id" binding:"required"`
	Feedback      string `json:"feedback"       binding:"required"`
}

// UpdateDocumentProgressRequest 文书进度更新请求
type UpdateDocumentProgressRequest struct {
	ReservationID uint `json:"reservation_id" binding:"required"`
	Progress      int  `json:"progress"       binding:"min=0,max=100"`
}

// UpdateDocumentContentRequest 文书润色内容更新请求
type UpdateDocumentContentRequest struct {
	ReservationID  uint   `json:"reservation_id"  binding:"required"`
	RevisedContent string `json:"revised_content" binding:"required"`
}
