package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zjy1055/zuohuiying/internal/dto"
	"github.com/zjy1055/zuohuiying/internal/service"
	"github.com/zjy1055/zuohuiying/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	registerResult *dto.RegisterResponse
	registerErr    error
	loginResult    *dto.TokenResponse
	loginErr       error
	logoutErr      error
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}

// ── Mock TrainingService ──

type mockTrainingService struct {
	reserveResult     *dto.ReserveResponse
	reserveErr        error
	listResult        []dto.TrainingResponse
	listErr           error
	detailResult      *dto.TrainingResponse
	detailErr         error
	updateStatusErr   error
	updateProgressErr error
	updateFeedbackErr error
}

func (m *mockTrainingService) Reserve(_ context.Context, _ uint, _ *dto.ReserveTrainingRequest) (*dto.ReserveResponse, error) {
	return m.reserveResult, m.reserveErr
}
func (m *mockTrainingService) ListForStudent(_ context.Context, _ uint) ([]dto.TrainingResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockTrainingService) DetailForStudent(_ context.Context, _, _ uint) (*dto.TrainingResponse, error) {
	return m.detailResult, m.detailErr
}
func (m *mockTrainingService) ListForTeacher(_ context.Context, _ uint, _ *dto.ReservationListRequest) ([]dto.TrainingResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockTrainingService) DetailForTeacher(_ context.Context, _, _ uint) (*dto.TrainingResponse, error) {
	return m.detailResult, m.detailErr
}
func (m *mockTrainingService) UpdateStatus(_ context.Context, _ uint, _ *dto.UpdateStatusRequest) error {
	return m.updateStatusErr
}
func (m *mockTrainingService) UpdateProgress(_ context.Context, _ uint, _ *dto.UpdateTrainingProgressRequest) error {
	return m.updateProgressErr
}
func (m *mockTrainingService) UpdateFeedback(_ context.Context, _ uint, _ *dto.UpdateFeedbackRequest) error {
	return m.updateFeedbackErr
}

// ── Mock DocumentService ──

type mockDocumentService struct {
	reserveResult     *dto.ReserveResponse
	reserveErr        error
	listResult        []dto.DocumentResponse
	listErr           error
	detailResult      *dto.DocumentResponse
	detailErr         error
	updateStatusErr   error
	updateProgressErr error
	updateContentErr  error
}

func (m *mockDocumentService) Reserve(_ context.Context, _ uint, _ *dto.ReserveDocumentRequest) (*dto.ReserveResponse, error) {
	return m.reserveResult, m.reserveErr
}
func (m *mockDocumentService) ListForStudent(_ context.Context, _ uint) ([]dto.DocumentResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockDocumentService) DetailForStudent(_ context.Context, _, _ uint) (*dto.DocumentResponse, error) {
	return m.detailResult, m.detailErr
}
func (m *mockDocumentService) ListForTeacher(_ context.Context, _ uint, _ *dto.ReservationListRequest) ([]dto.DocumentResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockDocumentService) DetailForTeacher(_ context.Context, _, _ uint) (*dto.DocumentResponse, error) {
	return m.detailResult, m.detailErr
}
func (m *mockDocumentService) UpdateStatus(_ context.Context, _ uint, _ *dto.UpdateStatusRequest) error {
	return m.updateStatusErr
}
func (m *mockDocumentService) UpdateProgress(_ context.Context, _ uint, _ *dto.UpdateDocumentProgressRequest) error {
	return m.updateProgressErr
}
func (m *mockDocumentService) UpdateContent(_ context.Context, _ uint, _ *dto.UpdateDocumentContentRequest) error {
	return m.updateContentErr
}

// ── Mock StudentService ──

type mockStudentService struct {
	profileResult   *dto.StudentProfileResponse
	profileErr      error
	updateErr       error
	recommendResult []dto.SchoolResponse
	recommendErr    error
	schoolsResult   []dto.SchoolResponse
	schoolsErr      error
	schoolResult    *dto.SchoolResponse
	schoolErr       error
	casesResult     []dto.SuccessCaseResponse
	casesErr        error
}

func (m *mockStudentService) GetProfile(_ context.Context, _ uint) (*dto.StudentProfileResponse, error) {
	return m.profileResult, m.profileErr
}
func (m *mockStudentService) UpdateProfile(_ context.Context, _ uint, _ *dto.UpdateStudentProfileRequest) error {
	return m.updateErr
}
func (m *mockStudentService) Recommend(_ context.Context, _ uint) ([]dto.SchoolResponse, error) {
	return m.recommendResult, m.recommendErr
}
func (m *mockStudentService) ListSchools(_ context.Context) ([]dto.SchoolResponse, error) {
	return m.schoolsResult, m.schoolsErr
}
func (m *mockStudentService) SearchSchools(_ context.Context, _ *dto.SchoolSearchRequest) ([]dto.SchoolResponse, error) {
	return m.schoolsResult, m.schoolsErr
}
func (m *mockStudentService) GetSchool(_ context.Context, _ uint) (*dto.SchoolResponse, error) {
	return m.schoolResult, m.schoolErr
}
func (m *mockStudentService) ListSuccessCases(_ context.Context) ([]dto.SuccessCaseResponse, error) {
	return m.casesResult, m.casesErr
}

// ── Mock SchoolService ──

type mockSchoolService struct {
	listResult []dto.SchoolBriefResponse
	listErr    error
	addResult  *dto.AddSchoolResponse
	addErr     error
	updateErr  error
	deleteErr  error
}

func (m *mockSchoolService) List(_ context.Context) ([]dto.SchoolBriefResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockSchoolService) Add(_ context.Context, _ *dto.AddSchoolRequest) (*dto.AddSchoolResponse, error) {
	return m.addResult, m.addErr
}
func (m *mockSchoolService) Update(_ context.Context, _ uint, _ *dto.UpdateSchoolRequest) error {
	return m.updateErr
}
func (m *mockSchoolService) Delete(_ context.Context, _ uint) error {
	return m.deleteErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("user_id", uint(1))
	c.Set("role", "student")
	c.Set("token_jti", "test-jti")
	c.Set("token_exp", time.Now().Add(15*time.Minute))
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v, body=%s", err, w.Body.String())
	}
	return resp
}

func newAuthedContext(t *testing.T, method, target string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	setAuth(c)
	return c, w
}

// ═══════════════════════════════════════════════════════════
// Auth
// ═══════════════════════════════════════════════════════════

func TestAuthLoginHandler(t *testing.T) {
	tests := []struct {
		name       string
		svc        *mockAuthService
		body       interface{}
		wantStatus int
	}{
		{
			"登录成功",
			&mockAuthService{loginResult: &dto.TokenResponse{AccessToken: "t", TokenType: "bearer", UserID: 1, Role: "student"}},
			dto.LoginRequest{Username: "zhangsan", Password: "secret123", Role: "student"},
			http.StatusOK,
		},
		{
			"凭证错误",
			&mockAuthService{loginErr: service.ErrInvalidCredentials},
			dto.LoginRequest{Username: "zhangsan", Password: "wrong", Role: "student"},
			http.StatusUnauthorized,
		},
		{
			"参数缺失",
			&mockAuthService{},
			map[string]string{"username": "zhangsan"},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(tt.svc)
			c, w := newAuthedContext(t, http.MethodPost, "/api/v1/auth/login", jsonBody(tt.body))

			h.Login(c)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestAuthRegisterDuplicate(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{registerErr: service.ErrUsernameExists})
	c, w := newAuthedContext(t, http.MethodPost, "/api/v1/auth/register", jsonBody(dto.RegisterRequest{
		Username: "zhangsan", Password: "secret123", Role: "student", Name: "张三",
	}))

	h.Register(c)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// Training
// ═══════════════════════════════════════════════════════════

func TestTrainingUpdateStatusHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{"成功", nil, http.StatusOK},
		{"预约不存在", service.ErrNotFound, http.StatusNotFound},
		{"已处理", service.ErrAlreadyProcessed, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTrainingHandler(&mockTrainingService{updateStatusErr: tt.svcErr})
			c, w := newAuthedContext(t, http.MethodPut, "/api/v1/teacher/training/status", jsonBody(dto.UpdateStatusRequest{
				ReservationID: 1, Status: "accepted",
			}))

			h.UpdateStatus(c)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestTrainingUpdateProgressHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{"未接受", service.ErrMustAcceptFirst, http.StatusBadRequest},
		{"课时越界", service.ErrInvalidHours, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTrainingHandler(&mockTrainingService{updateProgressErr: tt.svcErr})
			c, w := newAuthedContext(t, http.MethodPut, "/api/v1/teacher/training/progress", jsonBody(dto.UpdateTrainingProgressRequest{
				ReservationID: 1, AttendedHours: 5,
			}))

			h.UpdateProgress(c)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			resp := parseResponse(t, w)
			if resp.Code == 0 {
				t.Error("业务错误响应 code 不应为 0")
			}
		})
	}
}

func TestTrainingDetailInvalidID(t *testing.T) {
	h := NewTrainingHandler(&mockTrainingService{})
	c, w := newAuthedContext(t, http.MethodGet, "/api/v1/student/training/detail?id=abc", nil)

	h.DetailForStudent(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// Document
// ═══════════════════════════════════════════════════════════

func TestDocumentReserveTeacherNotFoundHandler(t *testing.T) {
	h := NewDocumentHandler(&mockDocumentService{reserveErr: service.ErrTeacherNotFound})
	c, w := newAuthedContext(t, http.MethodPost, "/api/v1/student/document/reserve", jsonBody(dto.ReserveDocumentRequest{
		TeacherID: 99, DocumentCount: 1,
	}))

	h.Reserve(c)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDocumentUpdateContentHandlerErrors(t *testing.T) {
	h := NewDocumentHandler(&mockDocumentService{updateContentErr: service.ErrMustAcceptFirst})
	c, w := newAuthedContext(t, http.MethodPut, "/api/v1/teacher/document/content", jsonBody(dto.UpdateDocumentContentRequest{
		ReservationID: 1, RevisedContent: "润色稿",
	}))

	h.UpdateContent(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// Student
// ═══════════════════════════════════════════════════════════

func TestRecommendHandlerIncompleteProfile(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{recommendErr: service.ErrIncompleteProfile})
	c, w := newAuthedContext(t, http.MethodGet, "/api/v1/student/recommendation", nil)

	h.Recommend(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRecommendHandlerOK(t *testing.T) {
	score := 92.5
	h := NewStudentHandler(&mockStudentService{recommendResult: []dto.SchoolResponse{
		{ID: 1, EnglishName: "MIT", RecommendationScore: &score},
	}})
	c, w := newAuthedContext(t, http.MethodGet, "/api/v1/student/recommendation", nil)

	h.Recommend(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("code = %d, want 0", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// School
// ═══════════════════════════════════════════════════════════

func TestSchoolAddHandlerConflict(t *testing.T) {
	h := NewSchoolHandler(&mockSchoolService{addErr: service.ErrSchoolExists})
	c, w := newAuthedContext(t, http.MethodPost, "/api/v1/teacher/school/add", jsonBody(dto.AddSchoolRequest{
		ChineseName: "斯坦福大学", EnglishName: "Stanford University", Location: "美国", Rank: 3,
	}))

	h.Add(c)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestSchoolDeleteHandlerNotFound(t *testing.T) {
	h := NewSchoolHandler(&mockSchoolService{deleteErr: service.ErrNotFound})
	c, w := newAuthedContext(t, http.MethodDelete, "/api/v1/teacher/school/delete?id=5", nil)

	h.Delete(c)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
