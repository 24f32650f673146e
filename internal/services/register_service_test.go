package services

import (
	"testing"
	"time"

	"markbook_backend/internal/dto"
	"markbook_backend/internal/models"
	"markbook_backend/internal/repositories"
	"markbook_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStudentRepo struct {
	students map[string]*models.Student
}

func (r *fakeStudentRepo) FindByID(id string) (*models.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, repositories.ErrStudentNotFound
	}
	return s, nil
}

func (r *fakeStudentRepo) FindAll(grade string, limit, offset int) ([]models.Student, error) {
	var out []models.Student
	for _, s := range r.students {
		if grade == "" || s.Grade == grade {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeStudentRepo) Create(s *models.Student) error {
	r.students[s.ID] = s
	return nil
}

func (r *fakeStudentRepo) Update(s *models.Student) error {
	r.students[s.ID] = s
	return nil
}

func (r *fakeStudentRepo) Delete(id string) error {
	delete(r.students, id)
	return nil
}

func (r *fakeStudentRepo) Count() (int64, error) { return int64(len(r.students)), nil }

type fakeRegisterRepo struct {
	// keyed by studentID + date
	records map[string]*models.RegisterRecord
}

func registerKey(studentID string, date time.Time) string {
	return studentID + "|" + date.Format("2006-01-02")
}

func (r *fakeRegisterRepo) Upsert(record *models.RegisterRecord) error {
	r.records[registerKey(record.StudentID, record.Date)] = record
	return nil
}

func (r *fakeRegisterRepo) FindByDate(date time.Time) ([]models.RegisterRecord, error) {
	var out []models.RegisterRecord
	for _, rec := range r.records {
		if rec.Date.Equal(date) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeRegisterRepo) FindByStudent(studentID string, from, to *time.Time) ([]models.RegisterRecord, error) {
	var out []models.RegisterRecord
	for _, rec := range r.records {
		if rec.StudentID != studentID {
			continue
		}
		if from != nil && rec.Date.Before(*from) {
			continue
		}
		if to != nil && rec.Date.After(*to) {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (r *fakeRegisterRepo) Delete(id string) error {
	for k, rec := range r.records {
		if rec.ID == id {
			delete(r.records, k)
			return nil
		}
	}
	return repositories.ErrRegisterRecordNotFound
}

func newRegisterFixture(students ...*models.Student) (*fakeRegisterRepo, RegisterService) {
	studentRepo := &fakeStudentRepo{students: map[string]*models.Student{}}
	for _, s := range students {
		studentRepo.students[s.ID] = s
	}
	repo := &fakeRegisterRepo{records: map[string]*models.RegisterRecord{}}
	svc := NewRegisterService(repo, studentRepo, &fakeActivity{})
	return repo, svc
}

func student(id string) *models.Student {
	s := &models.Student{FirstName: "A", LastName: "B", Grade: "10-1"}
	s.ID = id
	return s
}

func TestRegisterUpsert_CreatesRecord(t *testing.T) {
	repo, svc := newRegisterFixture(student("s1"))
	actor := freeUser("t1")

	record, err := svc.Upsert(actor, &dto.UpsertRegisterRequest{
		StudentID: "s1",
		Date:      "2026-03-02",
		Status:    "Present",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RegisterStatus("Present"), record.Status)
	assert.Len(t, repo.records, 1)
}

func TestRegisterUpsert_SameDayOverwrites(t *testing.T) {
	repo, svc := newRegisterFixture(student("s1"))
	actor := freeUser("t1")

	_, err := svc.Upsert(actor, &dto.UpsertRegisterRequest{
		StudentID: "s1", Date: "2026-03-02", Status: "Present",
	})
	require.NoError(t, err)

	record, err := svc.Upsert(actor, &dto.UpsertRegisterRequest{
		StudentID: "s1", Date: "2026-03-02", Status: "Late", Comment: "Bus delay",
	})
	require.NoError(t, err)

	assert.Len(t, repo.records, 1)
	assert.Equal(t, models.RegisterStatus("Late"), record.Status)
	assert.Equal(t, "Bus delay", record.Comment)
}

func TestRegisterUpsert_UnknownStudent(t *testing.T) {
	_, svc := newRegisterFixture()

	_, err := svc.Upsert(freeUser("t1"), &dto.UpsertRegisterRequest{
		StudentID: "missing", Date: "2026-03-02", Status: "Present",
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestRegisterListByStudent_RangeFilter(t *testing.T) {
	_, svc := newRegisterFixture(student("s1"))
	actor := freeUser("t1")

	for _, d := range []string{"2026-03-02", "2026-03-03", "2026-03-10"} {
		_, err := svc.Upsert(actor, &dto.UpsertRegisterRequest{
			StudentID: "s1", Date: d, Status: "Present",
		})
		require.NoError(t, err)
	}

	records, err := svc.ListByStudent("s1", "2026-03-02", "2026-03-04")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
