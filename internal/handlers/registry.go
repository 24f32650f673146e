package handlers

import (
	"markbook_backend/internal/config"
	"markbook_backend/internal/services"
	"markbook_backend/internal/validator"
)

// AppHandlers holds every handler in the application.
type AppHandlers struct {
	AuthHandler       *AuthHandler
	BillingHandler    *BillingHandler
	StudentHandler    *StudentHandler
	RegisterHandler   *RegisterHandler
	AssessmentHandler *AssessmentHandler
	ClassHandler      *ClassHandler
	EvidenceHandler   *EvidenceHandler
	AdminHandler      *AdminHandler
	ExportHandler     *ExportHandler
}

func NewAppHandlers(sc *services.ServiceContainer, cfg *config.Config, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:       NewAuthHandler(base, sc.Auth),
		BillingHandler:    NewBillingHandler(base, sc.Billing, sc.Guard, cfg),
		StudentHandler:    NewStudentHandler(base, sc.Student),
		RegisterHandler:   NewRegisterHandler(base, sc.Register),
		AssessmentHandler: NewAssessmentHandler(base, sc.Assessment),
		ClassHandler:      NewClassHandler(base, sc.Class),
		EvidenceHandler:   NewEvidenceHandler(base, sc.Evidence),
		AdminHandler:      NewAdminHandler(base, sc.Admin, sc.Billing, sc.Activity, sc.Guard),
		ExportHandler:     NewExportHandler(base, sc.Assessment),
	}
}
