package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/zjy1055/zuohuiying/internal/model"
	"github.com/zjy1055/zuohuiying/internal/repository"
)

// 基于 map 的内存 Repository 实现，供服务层单测使用
// 查不到一律返回 gorm.ErrRecordNotFound，与 GORM 实现保持一致

// ── 用户 ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[uint]*model.User{}, nextID: 1}
}

func (m *mockUserRepo) CreateWithStudentProfile(_ context.Context, user *model.User, profile *model.StudentProfile) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	profile.UserID = user.ID
	return nil
}

func (m *mockUserRepo) CreateWithTeacherProfile(_ context.Context, user *model.User, profile *model.TeacherProfile) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	profile.UserID = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByIDAndRole(_ context.Context, id uint, role string) (*model.User, error) {
	if u, ok := m.users[id]; ok && u.Role == role {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── 学生档案 ──

type mockStudentProfileRepo struct {
	profiles map[uint]*model.StudentProfile // key: user_id
}

func newMockStudentProfileRepo() *mockStudentProfileRepo {
	return &mockStudentProfileRepo{profiles: map[uint]*model.StudentProfile{}}
}

func (m *mockStudentProfileRepo) GetByUserID(_ context.Context, userID uint) (*model.StudentProfile, error) {
	if p, ok := m.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentProfileRepo) Update(_ context.Context, profile *model.StudentProfile) error {
	cp := *profile
	m.profiles[profile.UserID] = &cp
	return nil
}

func (m *mockStudentProfileRepo) ListAll(_ context.Context) ([]model.StudentProfile, error) {
	result := make([]model.StudentProfile, 0, len(m.profiles))
	for _, p := range m.profiles {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockStudentProfileRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.profiles)), nil
}

func (m *mockStudentProfileRepo) CountWithMinScores(_ context.Context, toeflMin, greMin, gpaMin *float64) (int64, error) {
	var total int64
	for _, p := range m.profiles {
		if toeflMin != nil && (p.Toefl == nil || *p.Toefl < *toeflMin) {
			continue
		}
		if greMin != nil && (p.Gre == nil || *p.Gre < *greMin) {
			continue
		}
		if gpaMin != nil && (p.Gpa == nil || *p.Gpa < *gpaMin) {
			continue
		}
		total++
	}
	return total, nil
}

func (m *mockStudentProfileRepo) ProfilesByUserID(_ context.Context, userIDs []uint) (map[uint]model.StudentProfile, error) {
	result := map[uint]model.StudentProfile{}
	for _, id := range userIDs {
		if p, ok := m.profiles[id]; ok {
			result[id] = *p
		}
	}
	return result, nil
}

// ── 教师档案 ──

type mockTeacherProfileRepo struct {
	profiles map[uint]*model.TeacherProfile // key: user_id
}

func newMockTeacherProfileRepo() *mockTeacherProfileRepo {
	return &mockTeacherProfileRepo{profiles: map[uint]*model.TeacherProfile{}}
}

func (m *mockTeacherProfileRepo) GetByUserID(_ context.Context, userID uint) (*model.TeacherProfile, error) {
	if p, ok := m.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherProfileRepo) Update(_ context.Context, profile *model.TeacherProfile) error {
	cp := *profile
	m.profiles[profile.UserID] = &cp
	return nil
}

func (m *mockTeacherProfileRepo) NamesByUserID(_ context.Context, userIDs []uint) (map[uint]string, error) {
	names := map[uint]string{}
	for _, id := range userIDs {
		if p, ok := m.profiles[id]; ok {
			names[id] = p.Name
		}
	}
	return names, nil
}

// ── 学校 ──

type mockSchoolRepo struct {
	schools map[uint]*model.School
	nextID  uint
}

func newMockSchoolRepo() *mockSchoolRepo {
	return &mockSchoolRepo{schools: map[uint]*model.School{}, nextID: 1}
}

func (m *mockSchoolRepo) CreateWithMajors(_ context.Context, school *model.School, majors []model.SchoolMajor) error {
	school.ID = m.nextID
	m.nextID++
	for i := range majors {
		majors[i].SchoolID = school.ID
	}
	school.Majors = majors
	cp := *school
	m.schools[school.ID] = &cp
	return nil
}

func (m *mockSchoolRepo) GetByID(_ context.Context, id uint) (*model.School, error) {
	if s, ok := m.schools[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolRepo) ExistsByName(_ context.Context, chineseName, englishName string) (bool, error) {
	for _, s := range m.schools {
		if s.ChineseName == chineseName || s.EnglishName == englishName {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSchoolRepo) Update(_ context.Context, school *model.School) error {
	existing, ok := m.schools[school.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *school
	cp.Majors = existing.Majors
	m.schools[school.ID] = &cp
	return nil
}

func (m *mockSchoolRepo) Delete(_ context.Context, id uint) error {
	delete(m.schools, id)
	return nil
}

func (m *mockSchoolRepo) List(_ context.Context, filters *repository.SchoolSearchFilters) ([]model.School, error) {
	result := make([]model.School, 0, len(m.schools))
	for _, s := range m.schools {
		if filters != nil {
			if filters.Name != "" &&
				!strings.Contains(s.ChineseName, filters.Name) &&
				!strings.Contains(s.EnglishName, filters.Name) {
				continue
			}
			if filters.Region != "" && !strings.Contains(s.Location, filters.Region) {
				continue
			}
		}
		result = append(result, *s)
	}
	// rank 升序，与 GORM 实现一致
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].Rank < result[i].Rank {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

// ── 培训预约 ──

type mockTrainingRepo struct {
	reservations map[uint]*model.TrainingReservation
	profiles     *mockStudentProfileRepo // 学生姓名模糊筛选需关联学生档案
	nextID       uint
}

func newMockTrainingRepo(profiles *mockStudentProfileRepo) *mockTrainingRepo {
	return &mockTrainingRepo{
		reservations: map[uint]*model.TrainingReservation{},
		profiles:     profiles,
		nextID:       1,
	}
}

// matchStudentName 学生姓名模糊匹配，与 GORM 实现的 LIKE %name% 一致
func (m *mockTrainingRepo) matchStudentName(studentID uint, name string) bool {
	p, ok := m.profiles.profiles[studentID]
	return ok && strings.Contains(p.Name, name)
}

func (m *mockTrainingRepo) Create(_ context.Context, r *model.TrainingReservation) error {
	r.ID = m.nextID
	m.nextID++
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	m.reservations[r.ID] = &cp
	return nil
}

func (m *mockTrainingRepo) ListByStudent(_ context.Context, studentID uint) ([]model.TrainingReservation, error) {
	var result []model.TrainingReservation
	for _, r := range m.reservations {
		if r.StudentID == studentID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockTrainingRepo) GetByIDForStudent(_ context.Context, id, studentID uint) (*model.TrainingReservation, error) {
	if r, ok := m.reservations[id]; ok && r.StudentID == studentID {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTrainingRepo) ListByTeacher(_ context.Context, teacherID uint, filters *repository.ReservationFilters) ([]model.TrainingReservation, error) {
	var result []model.TrainingReservation
	for _, r := range m.reservations {
		if r.TeacherID == nil || *r.TeacherID != teacherID {
			continue
		}
		if filters != nil {
			if filters.Status != "" && r.Status != filters.Status {
				continue
			}
			if filters.Kind != "" && r.TrainingType != filters.Kind {
				continue
			}
			if filters.StudentName != "" && !m.matchStudentName(r.StudentID, filters.StudentName) {
				continue
			}
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockTrainingRepo) GetByIDForTeacher(_ context.Context, id, teacherID uint) (*model.TrainingReservation, error) {
	if r, ok := m.reservations[id]; ok && r.TeacherID != nil && *r.TeacherID == teacherID {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTrainingRepo) Update(_ context.Context, r *model.TrainingReservation) error {
	if _, ok := m.reservations[r.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.UpdatedAt = time.Now()
	cp := *r
	m.reservations[r.ID] = &cp
	return nil
}

// ── 文书预约 ──

type mockDocumentRepo struct {
	reservations map[uint]*model.DocumentReservation
	profiles     *mockStudentProfileRepo
	nextID       uint
}

func newMockDocumentRepo(profiles *mockStudentProfileRepo) *mockDocumentRepo {
	return &mockDocumentRepo{
		reservations: map[uint]*model.DocumentReservation{},
		profiles:     profiles,
		nextID:       1,
	}
}

func (m *mockDocumentRepo) matchStudentName(studentID uint, name string) bool {
	p, ok := m.profiles.profiles[studentID]
	return ok && strings.Contains(p.Name, name)
}

func (m *mockDocumentRepo) Create(_ context.Context, r *model.DocumentReservation) error {
	r.ID = m.nextID
	m.nextID++
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	m.reservations[r.ID] = &cp
	return nil
}

func (m *mockDocumentRepo) ListByStudent(_ context.Context, studentID uint) ([]model.DocumentReservation, error) {
	var result []model.DocumentReservation
	for _, r := range m.reservations {
		if r.StudentID == studentID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockDocumentRepo) GetByIDForStudent(_ context.Context, id, studentID uint) (*model.DocumentReservation, error) {
	if r, ok := m.reservations[id]; ok && r.StudentID == studentID {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDocumentRepo) ListByTeacher(_ context.Context, teacherID uint, filters *repository.ReservationFilters) ([]model.DocumentReservation, error) {
	var result []model.DocumentReservation
	for _, r := range m.reservations {
		if r.TeacherID != teacherID {
			continue
		}
		if filters != nil {
			if filters.Status != "" && r.Status != filters.Status {
				continue
			}
			if filters.Kind != "" && r.DocumentType != filters.Kind {
				continue
			}
			if filters.StudentName != "" && !m.matchStudentName(r.StudentID, filters.StudentName) {
				continue
			}
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockDocumentRepo) GetByIDForTeacher(_ context.Context, id, teacherID uint) (*model.DocumentReservation, error) {
	if r, ok := m.reservations[id]; ok && r.TeacherID == teacherID {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDocumentRepo) Update(_ context.Context, r *model.DocumentReservation) error {
	if _, ok := m.reservations[r.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.UpdatedAt = time.Now()
	cp := *r
	m.reservations[r.ID] = &cp
	return nil
}

// ── 成功案例 ──

type mockSuccessCaseRepo struct {
	cases  map[uint]*model.SuccessCase
	nextID uint
}

func newMockSuccessCaseRepo() *mockSuccessCaseRepo {
	return &mockSuccessCaseRepo{cases: map[uint]*model.SuccessCase{}, nextID: 1}
}

func (m *mockSuccessCaseRepo) Create(_ context.Context, c *model.SuccessCase) error {
	c.ID = m.nextID
	m.nextID++
	c.CreatedAt = time.Now()
	cp := *c
	m.cases[c.ID] = &cp
	return nil
}

func (m *mockSuccessCaseRepo) GetByID(_ context.Context, id uint) (*model.SuccessCase, error) {
	if c, ok := m.cases[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSuccessCaseRepo) List(_ context.Context) ([]model.SuccessCase, error) {
	result := make([]model.SuccessCase, 0, len(m.cases))
	for _, c := range m.cases {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockSuccessCaseRepo) Delete(_ context.Context, id uint) error {
	delete(m.cases, id)
	return nil
}

// ── 对象存储 ──

type mockFileStore struct {
	objects map[string][]byte
	removed []string
}

func newMockFileStore() *mockFileStore {
	return &mockFileStore{objects: map[string][]byte{}}
}

func (m *mockFileStore) Upload(_ context.Context, prefix, filename string, data []byte, _ string) (string, error) {
	objectName := prefix + "/" + filename
	m.objects[objectName] = data
	return objectName, nil
}

func (m *mockFileStore) PresignedURL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	if _, ok := m.objects[objectName]; !ok {
		return "", fmt.Errorf("object %s not found", objectName)
	}
	return "https://storage.example.com/" + objectName, nil
}

func (m *mockFileStore) Remove(_ context.Context, objectName string) error {
	delete(m.objects, objectName)
	m.removed = append(m.removed, objectName)
	return nil
}

// newTestRepository 组装全 mock 的 Repository 聚合
// 预约 mock 与学生档案 mock 共享同一实例，姓名筛选才能关联到档案
func newTestRepository() *repository.Repository {
	profiles := newMockStudentProfileRepo()
	return &repository.Repository{
		User:           newMockUserRepo(),
		StudentProfile: profiles,
		TeacherProfile: newMockTeacherProfileRepo(),
		School:         newMockSchoolRepo(),
		Training:       newMockTrainingRepo(profiles),
		Document:       newMockDocumentRepo(profiles),
		SuccessCase:    newMockSuccessCaseRepo(),
	}
}
