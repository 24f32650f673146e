package services

import (
	"markbook_backend/internal/dto"
	"markbook_backend/internal/models"
	"markbook_backend/internal/repositories"
	"markbook_backend/pkg/apperrors"
)

type ClassService interface {
	Create(actor *models.User, req *dto.CreateClassRequest) (*models.Class, error)
	GetByID(id string) (*models.Class, error)
	List(page, pageSize int) ([]models.Class, error)
	Update(actor *models.User, id string, req *dto.UpdateClassRequest) (*models.Class, error)
	Delete(actor *models.User, id string) error

	EnrollStudent(actor *models.User, classID, studentID string) error
	UnenrollStudent(actor *models.User, classID, studentID string) error
}

type classService struct {
	repo        repositories.ClassRepository
	studentRepo repositories.StudentRepository
	activity    ActivityService
}

func NewClassService(repo repositories.ClassRepository, studentRepo repositories.StudentRepository, activity ActivityService) ClassService {
	return &classService{repo: repo, studentRepo: studentRepo, activity: activity}
}

func (s *classService) Create(actor *models.User, req *dto.CreateClassRequest) (*models.Class, error) {
	class := &models.Class{
		Name:         req.Name,
		AcademicYear: req.AcademicYear,
	}
	if err := s.repo.Create(class); err != nil {
		return nil, err
	}
	s.activity.Log(actor, "CLASS_CREATED", class.ID, map[string]interface{}{"name": class.Name})
	return class, nil
}

func (s *classService) GetByID(id string) (*models.Class, error) {
	class, err := s.repo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrClassNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	return class, nil
}

func (s *classService) List(page, pageSize int) ([]models.Class, error) {
	limit, offset := pageToRange(page, pageSize)
	return s.repo.FindAll(limit, offset)
}

func (s *classService) Update(actor *models.User, id string, req *dto.UpdateClassRequest) (*models.Class, error) {
	class, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.AcademicYear != nil {
		class.AcademicYear = *req.AcademicYear
	}

	if err := s.repo.Update(class); err != nil {
		return nil, err
	}
	s.activity.Log(actor, "CLASS_UPDATED", class.ID, nil)
	return class, nil
}

func (s *classService) Delete(actor *models.User, id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.activity.Log(actor, "CLASS_DELETED", id, nil)
	return nil
}

func (s *classService) EnrollStudent(actor *models.User, classID, studentID string) error {
	if _, err := s.GetByID(classID); err != nil {
		return err
	}
	student, err := s.studentRepo.FindByID(studentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrStudentNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return err
	}

	if err := s.repo.AddStudent(classID, student); err != nil {
		return err
	}
	s.activity.Log(actor, "STUDENT_ENROLLED", classID, map[string]interface{}{"student_id": studentID})
	return nil
}

func (s *classService) UnenrollStudent(actor *models.User, classID, studentID string) error {
	if _, err := s.GetByID(classID); err != nil {
		return err
	}
	student, err := s.studentRepo.FindByID(studentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrStudentNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return err
	}

	if err := s.repo.RemoveStudent(classID, student); err != nil {
		return err
	}
	s.activity.Log(actor, "STUDENT_UNENROLLED", classID, map[string]interface{}{"student_id": studentID})
	return nil
}
