package model

// School 学校表 — 对应 schools
// 中英文名各自全局唯一；rank 为正整数，数值越小选拔越严格
type School struct {
	ID           uint   `gorm:"primaryKey"                             json:"id"`
	ChineseName  string `gorm:"type:varchar(100);not null;uniqueIndex" json:"chinese_name"`
	EnglishName  string `gorm:"type:varchar(200);not null;uniqueIndex" json:"english_name"`
	Location     string `gorm:"type:varchar(100)"                      json:"location"`
	Rank         int    `json:"rank"`
	BasicInfo    string `gorm:"type:text"                              json:"basic_info"`
	DetailedInfo string `gorm:"type:text"                              json:"detailed_info"`

	// 关联：专业随学校删除级联
	Majors []SchoolMajor `gorm:"foreignKey:SchoolID;constraint:OnDelete:CASCADE" json:"majors,omitempty"`
}

// TableName 指定表名
func (School) TableName() string { return "schools" }

// SchoolMajor 学校专业排名表 — 对应 school_majors
type SchoolMajor struct {
	ID        uint   `gorm:"primaryKey"                 json:"id"`
	SchoolID  uint   `gorm:"not null;index"             json:"school_id"`
	MajorName string `gorm:"type:varchar(100);not null" json:"major_name"`
	MajorRank int    `json:"major_rank"`
}

// TableName 指定表名
func (SchoolMajor) TableName() string { return "school_majors" }
