package services

import (
	"markbook_backend/internal/auth"
	"markbook_backend/internal/config"
	"markbook_backend/internal/email"
	"markbook_backend/internal/entitlement"
	"markbook_backend/internal/repositories"
	"markbook_backend/internal/storage"

	"gorm.io/gorm"
)

// ServiceContainer wires repositories into services once at startup.
type ServiceContainer struct {
	Guard  *entitlement.Guard
	Tokens *auth.TokenManager

	Auth       AuthService
	Billing    BillingService
	Student    StudentService
	Register   RegisterService
	Assessment AssessmentService
	Class      ClassService
	Evidence   EvidenceService
	Admin      AdminService
	Activity   ActivityService

	Users repositories.UserRepository
}

func NewServiceContainer(db *gorm.DB, cfg *config.Config, store storage.Storage, emails email.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	studentRepo := repositories.NewStudentRepository(db)
	registerRepo := repositories.NewRegisterRepository(db)
	assessmentRepo := repositories.NewAssessmentRepository(db)
	classRepo := repositories.NewClassRepository(db)
	evidenceRepo := repositories.NewEvidenceRepository(db)
	activityRepo := repositories.NewActivityLogRepository(db)

	guard := entitlement.NewGuard(entitlement.NewRegistry())
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	activity := NewActivityService(activityRepo)

	return &ServiceContainer{
		Guard:      guard,
		Tokens:     tokens,
		Auth:       NewAuthService(userRepo, tokens, emails, activity),
		Billing:    NewBillingService(cfg, userRepo, activity),
		Student:    NewStudentService(studentRepo, activity),
		Register:   NewRegisterService(registerRepo, studentRepo, activity),
		Assessment: NewAssessmentService(assessmentRepo, studentRepo, activity),
		Class:      NewClassService(classRepo, studentRepo, activity),
		Evidence:   NewEvidenceService(evidenceRepo, store, guard, cfg, activity),
		Admin:      NewAdminService(userRepo, studentRepo, guard),
		Activity:   activity,
		Users:      userRepo,
	}
}
