package services

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"markbook_backend/internal/config"
	"markbook_backend/internal/dto"
	"markbook_backend/internal/entitlement"
	"markbook_backend/internal/models"
	"markbook_backend/internal/repositories"
	"markbook_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEvidenceRepo struct {
	records map[string]*models.Evidence
	count   int64
}

func (r *fakeEvidenceRepo) FindByID(id string) (*models.Evidence, error) {
	e, ok := r.records[id]
	if !ok {
		return nil, repositories.ErrEvidenceNotFound
	}
	return e, nil
}

func (r *fakeEvidenceRepo) FindByTeacher(teacherID string, limit, offset int) ([]models.Evidence, error) {
	var out []models.Evidence
	for _, e := range r.records {
		if e.TeacherID == teacherID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEvidenceRepo) CountByTeacher(teacherID string) (int64, error) { return r.count, nil }

func (r *fakeEvidenceRepo) Create(e *models.Evidence) error {
	if e.ID == "" {
		e.ID = "ev-" + e.Filename
	}
	r.records[e.ID] = e
	r.count++
	return nil
}

func (r *fakeEvidenceRepo) Update(e *models.Evidence) error { return nil }

func (r *fakeEvidenceRepo) Delete(id string) error {
	delete(r.records, id)
	return nil
}

type fakeStorage struct {
	saved   map[string]string
	deleted []string
}

func (s *fakeStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	data, _ := io.ReadAll(reader)
	s.saved[key] = string(data)
	return nil
}

func (s *fakeStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.saved[key])), nil
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.saved, key)
	return nil
}

func (s *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := s.saved[key]
	return ok, nil
}

func (s *fakeStorage) GetURL(ctx context.Context, key string) (string, error) {
	return "https://files.test/" + key, nil
}

func (s *fakeStorage) GetSignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://files.test/signed/" + key, nil
}

func newEvidenceFixture(freeLimit int64) (*fakeEvidenceRepo, *fakeStorage, EvidenceService) {
	repo := &fakeEvidenceRepo{records: map[string]*models.Evidence{}}
	store := &fakeStorage{saved: map[string]string{}}

	cfg := &config.Config{}
	cfg.Upload.MaxSize = 1024
	cfg.Upload.AllowedTypes = []string{"image/png", "application/pdf"}
	cfg.Upload.FreePlanLimit = freeLimit

	guard := entitlement.NewGuard(entitlement.NewRegistry())
	svc := NewEvidenceService(repo, store, guard, cfg, &fakeActivity{})
	return repo, store, svc
}

func teacherOnPlan(plan models.SubscriptionPlan, status models.SubscriptionStatus) *models.User {
	u := &models.User{
		Role:               models.UserRoleTeacher,
		SubscriptionPlan:   plan,
		SubscriptionStatus: status,
	}
	u.ID = "teacher-1"
	return u
}

func TestEvidenceUpload_StoresFileAndRecord(t *testing.T) {
	repo, store, svc := newEvidenceFixture(10)
	user := teacherOnPlan(models.PlanFree, models.SubscriptionStatusInactive)

	ev, err := svc.Upload(context.Background(), user, &dto.UploadEvidenceForm{Title: "Sample"},
		"work.png", 100, "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, user.ID, ev.TeacherID)
	assert.Equal(t, "work.png", ev.Filename)
	assert.Contains(t, ev.StorageKey, "evidence/teacher-1/")
	assert.Len(t, store.saved, 1)
	assert.Equal(t, int64(1), repo.count)
}

func TestEvidenceUpload_FreePlanCapEnforced(t *testing.T) {
	repo, _, svc := newEvidenceFixture(2)
	repo.count = 2
	user := teacherOnPlan(models.PlanFree, models.SubscriptionStatusInactive)

	_, err := svc.Upload(context.Background(), user, &dto.UploadEvidenceForm{},
		"work.png", 100, "image/png", strings.NewReader("png-bytes"))

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeLimitExceeded, appErr.Code)
	assert.Equal(t, 402, appErr.HTTPCode)
}

func TestEvidenceUpload_UnlimitedUploadsLiftsCap(t *testing.T) {
	repo, _, svc := newEvidenceFixture(2)
	repo.count = 50
	user := teacherOnPlan(models.PlanPremium, models.SubscriptionStatusActive)

	_, err := svc.Upload(context.Background(), user, &dto.UploadEvidenceForm{},
		"work.png", 100, "image/png", strings.NewReader("png-bytes"))

	assert.NoError(t, err)
}

func TestEvidenceUpload_RejectsOversizedFile(t *testing.T) {
	_, _, svc := newEvidenceFixture(10)
	user := teacherOnPlan(models.PlanFree, models.SubscriptionStatusInactive)

	_, err := svc.Upload(context.Background(), user, &dto.UploadEvidenceForm{},
		"big.png", 99999, "image/png", strings.NewReader("..."))

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestEvidenceUpload_RejectsDisallowedType(t *testing.T) {
	_, _, svc := newEvidenceFixture(10)
	user := teacherOnPlan(models.PlanFree, models.SubscriptionStatusInactive)

	_, err := svc.Upload(context.Background(), user, &dto.UploadEvidenceForm{},
		"script.sh", 10, "application/x-sh", strings.NewReader("#!/bin/sh"))

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestEvidenceDelete_RemovesObjectAndRow(t *testing.T) {
	repo, store, svc := newEvidenceFixture(10)
	user := teacherOnPlan(models.PlanFree, models.SubscriptionStatusInactive)

	ev, err := svc.Upload(context.Background(), user, &dto.UploadEvidenceForm{},
		"work.png", 100, "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), user, ev.ID))

	assert.Empty(t, repo.records)
	assert.Contains(t, store.deleted, ev.StorageKey)
}

func TestEvidenceGet_OtherTeacherForbidden(t *testing.T) {
	repo, _, svc := newEvidenceFixture(10)
	owner := teacherOnPlan(models.PlanFree, models.SubscriptionStatusInactive)

	ev := &models.Evidence{TeacherID: owner.ID, Filename: "work.png"}
	require.NoError(t, repo.Create(ev))

	other := teacherOnPlan(models.PlanFree, models.SubscriptionStatusInactive)
	other.ID = "teacher-2"

	_, err := svc.GetByID(other, ev.ID)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestEvidenceGet_AdminAllowed(t *testing.T) {
	repo, _, svc := newEvidenceFixture(10)
	owner := teacherOnPlan(models.PlanFree, models.SubscriptionStatusInactive)

	ev := &models.Evidence{TeacherID: owner.ID, Filename: "work.png"}
	require.NoError(t, repo.Create(ev))

	admin := teacherOnPlan(models.PlanFree, models.SubscriptionStatusInactive)
	admin.ID = "admin-1"
	admin.Role = models.UserRoleAdmin

	got, err := svc.GetByID(admin, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev.ID, got.ID)
}
