package services

import (
	"markbook_backend/internal/dto"
	"markbook_backend/internal/models"
	"markbook_backend/internal/repositories"
	"markbook_backend/pkg/apperrors"
)

type StudentService interface {
	Create(actor *models.User, req *dto.CreateStudentRequest) (*models.Student, error)
	GetByID(id string) (*models.Student, error)
	List(query *dto.ListStudentsQuery) ([]models.Student, error)
	Update(actor *models.User, id string, req *dto.UpdateStudentRequest) (*models.Student, error)
	Delete(actor *models.User, id string) error
}

type studentService struct {
	repo     repositories.StudentRepository
	activity ActivityService
}

func NewStudentService(repo repositories.StudentRepository, activity ActivityService) StudentService {
	return &studentService{repo: repo, activity: activity}
}

func (s *studentService) Create(actor *models.User, req *dto.CreateStudentRequest) (*models.Student, error) {
	student := &models.Student{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Grade:         req.Grade,
		Gender:        req.Gender,
		ParentContact: req.ParentContact,
	}

	if err := s.repo.Create(student); err != nil {
		return nil, err
	}

	s.activity.Log(actor, "STUDENT_CREATED", student.ID, map[string]interface{}{
		"grade": student.Grade,
	})
	return student, nil
}

func (s *studentService) GetByID(id string) (*models.Student, error) {
	student, err := s.repo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	return student, nil
}

func (s *studentService) List(query *dto.ListStudentsQuery) ([]models.Student, error) {
	limit, offset := pageToRange(query.Page, query.PageSize)
	return s.repo.FindAll(query.Grade, limit, offset)
}

func (s *studentService) Update(actor *models.User, id string, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.Grade != nil {
		student.Grade = *req.Grade
	}
	if req.Gender != nil {
		student.Gender = *req.Gender
	}
	if req.ParentContact != nil {
		student.ParentContact = *req.ParentContact
	}

	if err := s.repo.Update(student); err != nil {
		return nil, err
	}

	s.activity.Log(actor, "STUDENT_UPDATED", student.ID, nil)
	return student, nil
}

func (s *studentService) Delete(actor *models.User, id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.activity.Log(actor, "STUDENT_DELETED", id, nil)
	return nil
}

// pageToRange converts 1-based page/page_size query params into a
// limit/offset pair with sane defaults.
func pageToRange(page, pageSize int) (limit, offset int) {
	if pageSize <= 0 {
		pageSize = 50
	}
	if page <= 0 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}
