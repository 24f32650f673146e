package services

import (
	"time"

	"markbook_backend/internal/dto"
	"markbook_backend/internal/entitlement"
	"markbook_backend/internal/repositories"
)

// AdminService backs the admin dashboard: usage analytics and the
// paginated user list with entitlement state.
type AdminService interface {
	Overview() (*dto.AnalyticsOverview, error)
	ListUsers(page, pageSize int) ([]dto.EntitlementSnapshot, error)
}

type adminService struct {
	userRepo    repositories.UserRepository
	studentRepo repositories.StudentRepository
	guard       *entitlement.Guard
}

func NewAdminService(userRepo repositories.UserRepository, studentRepo repositories.StudentRepository, guard *entitlement.Guard) AdminService {
	return &adminService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		guard:       guard,
	}
}

func (s *adminService) Overview() (*dto.AnalyticsOverview, error) {
	totalUsers, err := s.userRepo.CountAll()
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.studentRepo.Count()
	if err != nil {
		return nil, err
	}
	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	newUsers, err := s.userRepo.CountCreatedSince(weekAgo)
	if err != nil {
		return nil, err
	}
	plans, err := s.userRepo.CountByPlan()
	if err != nil {
		return nil, err
	}

	return &dto.AnalyticsOverview{
		TotalUsers:       totalUsers,
		TotalStudents:    totalStudents,
		NewUsersThisWeek: newUsers,
		PlanDistribution: plans,
	}, nil
}

func (s *adminService) ListUsers(page, pageSize int) ([]dto.EntitlementSnapshot, error) {
	limit, offset := pageToRange(page, pageSize)
	users, err := s.userRepo.FindAll(limit, offset)
	if err != nil {
		return nil, err
	}

	snapshots := make([]dto.EntitlementSnapshot, 0, len(users))
	for i := range users {
		u := &users[i]
		snapshots = append(snapshots, dto.NewEntitlementSnapshot(u, s.guard.IsEntitled(u)))
	}
	return snapshots, nil
}
