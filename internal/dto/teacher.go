package dto

// ── 教师模块 DTO ──

// TeacherProfileResponse 教师档案响应
type TeacherProfileResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
}

// UpdateTeacherProfileRequest 教师档案部分更新请求
type UpdateTeacherProfileRequest struct {
	Name    *string `json:"name"    binding:"omitempty,max=50"`
	Email   *string `json:"email"   binding:"omitempty,email"`
	Phone   *string `json:"phone"   binding:"omitempty,max=20"`
	Subject *string `json:"subject" binding:"omitempty,max=100"`
}

// StudentStatisticsResponse 学生统计响应
// 均分仅对已填写该项成绩的学生求值，保留 2 位小数
type StudentStatisticsResponse struct {
	TotalCount   int     `json:"total_count"`
	MaleCount    int     `json:"male_count"`
	FemaleCount  int     `json:"female_count"`
	AverageToefl float64 `json:"average_toefl"`
	AverageGre   float64 `json:"average_gre"`
	AverageGpa   float64 `json:"average_gpa"`
}

// PredictRequest 留学成功率预测查询参数
type PredictRequest struct {
	ToeflMin *float64 `form:"toefl_min" binding:"omitempty,min=0,max=120"`
	GreMin   *float64 `form:"gre_min"   binding:"omitempty,min=260,max=340"`
	GpaMin   *float64 `form:"gpa_min"   binding:"omitempty,min=0,max=4"`
}

// PredictResponse 留学成功率预测响应
type PredictResponse struct {
	QualifiedStudents int64   `json:"qualified_students"`
	TotalStudents     int64   `json:"total_students"`
	SuccessRate       float64 `json:"success_rate"` // 百分比，2 位小数
}

// AddSuccessCaseRequest 添加成功案例请求
type AddSuccessCaseRequest struct {
	Title   string `json:"title"   binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}
