package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/zjy1055/zuohuiying/internal/dto"
	"github.com/zjy1055/zuohuiying/internal/model"
	"github.com/zjy1055/zuohuiying/internal/repository"
)

func newTeacherTestService(repo *repository.Repository, store FileStore) TeacherService {
	return NewTeacherService(repo, store, zap.NewNop())
}

func seedStatisticsProfiles(repo *repository.Repository) {
	studentRepo := repo.StudentProfile.(*mockStudentProfileRepo)
	studentRepo.profiles[1] = &model.StudentProfile{
		UserID: 1, Name: "张三", Gender: "男",
		Toefl: floatPtr(100), Gre: floatPtr(320), Gpa: floatPtr(3.6),
	}
	studentRepo.profiles[2] = &model.StudentProfile{
		UserID: 2, Name: "李四", Gender: "女",
		Toefl: floatPtr(110), Gpa: floatPtr(3.8),
	}
	studentRepo.profiles[3] = &model.StudentProfile{
		UserID: 3, Name: "王五", Gender: "男",
	}
}

func TestStudentStatistics(t *testing.T) {
	repo := newTestRepository()
	svc := newTeacherTestService(repo, nil)
	seedStatisticsProfiles(repo)

	stats, err := svc.StudentStatistics(context.Background())
	if err != nil {
		t.Fatalf("StudentStatistics() error = %v", err)
	}

	if stats.TotalCount != 3 {
		t.Errorf("total_count = %d, want 3", stats.TotalCount)
	}
	if stats.MaleCount != 2 || stats.FemaleCount != 1 {
		t.Errorf("male/female = %d/%d, want 2/1", stats.MaleCount, stats.FemaleCount)
	}
	// 均分只对已填分数的学生求值
	if stats.AverageToefl != 105 {
		t.Errorf("average_toefl = %v, want 105", stats.AverageToefl)
	}
	if stats.AverageGre != 320 {
		t.Errorf("average_gre = %v, want 320", stats.AverageGre)
	}
	if stats.AverageGpa != 3.7 {
		t.Errorf("average_gpa = %v, want 3.7", stats.AverageGpa)
	}
}

func TestStudentStatisticsEmpty(t *testing.T) {
	repo := newTestRepository()
	svc := newTeacherTestService(repo, nil)

	stats, err := svc.StudentStatistics(context.Background())
	if err != nil {
		t.Fatalf("StudentStatistics() error = %v", err)
	}
	if stats.TotalCount != 0 || stats.AverageToefl != 0 {
		t.Errorf("空库统计 = %+v", stats)
	}
}

func TestPredict(t *testing.T) {
	repo := newTestRepository()
	svc := newTeacherTestService(repo, nil)
	seedStatisticsProfiles(repo)

	tests := []struct {
		name     string
		req      dto.PredictRequest
		wantN    int64
		wantRate float64
	}{
		{"无过滤条件", dto.PredictRequest{}, 3, 50},
		{"托福高门槛", dto.PredictRequest{ToeflMin: floatPtr(105)}, 1, 70},
		{"三项全高", dto.PredictRequest{
			ToeflMin: floatPtr(100), GreMin: floatPtr(320), GpaMin: floatPtr(3.5),
		}, 1, 95}, // 0.5+0.2+0.2+0.1=1.0 截断到 0.95
		{"低门槛无加成", dto.PredictRequest{ToeflMin: floatPtr(80)}, 2, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Predict(context.Background(), &tt.req)
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}
			if resp.QualifiedStudents != tt.wantN {
				t.Errorf("qualified = %d, want %d", resp.QualifiedStudents, tt.wantN)
			}
			if resp.TotalStudents != 3 {
				t.Errorf("total = %d, want 3", resp.TotalStudents)
			}
			if resp.SuccessRate != tt.wantRate {
				t.Errorf("success_rate = %v, want %v", resp.SuccessRate, tt.wantRate)
			}
		})
	}
}

func TestExportStudentStatistics(t *testing.T) {
	repo := newTestRepository()
	svc := newTeacherTestService(repo, nil)
	seedStatisticsProfiles(repo)

	data, err := svc.ExportStudentStatistics(context.Background())
	if err != nil {
		t.Fatalf("ExportStudentStatistics() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("导出内容不是合法 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("学生统计")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	// 表头 + 3 行明细 + 空行 + 汇总
	if len(rows) < 4 {
		t.Errorf("导出行数 = %d, 至少应含表头与 3 行明细", len(rows))
	}
	if rows[0][0] != "姓名" {
		t.Errorf("表头首列 = %q, want 姓名", rows[0][0])
	}
}

func TestAddAndDeleteSuccessCase(t *testing.T) {
	repo := newTestRepository()
	store := newMockFileStore()
	svc := newTeacherTestService(repo, store)
	ctx := context.Background()

	id, err := svc.AddSuccessCase(ctx, &dto.AddSuccessCaseRequest{
		Title:   "拿到 CMU offer",
		Content: "案例正文",
	}, "offer.pdf", []byte("pdf-bytes"), "application/pdf")
	if err != nil {
		t.Fatalf("AddSuccessCase() error = %v", err)
	}

	c, err := repo.SuccessCase.GetByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if c.FilePath == "" {
		t.Error("附件对象键未记录")
	}
	if _, ok := store.objects[c.FilePath]; !ok {
		t.Error("附件未写入对象存储")
	}

	if err := svc.DeleteSuccessCase(ctx, id); err != nil {
		t.Fatalf("DeleteSuccessCase() error = %v", err)
	}
	if _, err := repo.SuccessCase.GetByID(ctx, id); err == nil {
		t.Error("案例仍可查询")
	}
	if len(store.removed) != 1 || store.removed[0] != c.FilePath {
		t.Errorf("附件未清理: removed = %v", store.removed)
	}
}

func TestAddSuccessCaseWithoutFile(t *testing.T) {
	repo := newTestRepository()
	svc := newTeacherTestService(repo, nil)

	id, err := svc.AddSuccessCase(context.Background(), &dto.AddSuccessCaseRequest{
		Title:   "纯文字案例",
		Content: "案例正文",
	}, "", nil, "")
	if err != nil {
		t.Fatalf("AddSuccessCase() error = %v", err)
	}

	c, _ := repo.SuccessCase.GetByID(context.Background(), id)
	if c.FilePath != "" {
		t.Errorf("file_path = %q, want empty", c.FilePath)
	}
}

func TestDeleteSuccessCaseNotFound(t *testing.T) {
	repo := newTestRepository()
	svc := newTeacherTestService(repo, nil)

	if err := svc.DeleteSuccessCase(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteSuccessCase() error = %v, want ErrNotFound", err)
	}
}

func TestTeacherUpdateProfilePartial(t *testing.T) {
	repo := newTestRepository()
	svc := newTeacherTestService(repo, nil)
	ctx := context.Background()

	teacherRepo := repo.TeacherProfile.(*mockTeacherProfileRepo)
	teacherRepo.profiles[2] = &model.TeacherProfile{
		UserID: 2, Name: "王老师", Subject: "托福",
	}

	subject := "GRE"
	if err := svc.UpdateProfile(ctx, 2, &dto.UpdateTeacherProfileRequest{Subject: &subject}); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	got, err := svc.GetProfile(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got.Subject != "GRE" {
		t.Errorf("subject = %q, want GRE", got.Subject)
	}
	if got.Name != "王老师" {
		t.Errorf("name = %q, want 王老师", got.Name)
	}
}
