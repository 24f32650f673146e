package models

type UserRole string
type SubscriptionPlan string
type SubscriptionStatus string
type RegisterStatus string
type AssessmentType string

const (
	UserRoleTeacher UserRole = "TEACHER"
	UserRoleAdmin   UserRole = "ADMIN"

	// FREE is the default plan and the only one with zero feature access.
	PlanFree    SubscriptionPlan = "FREE"
	PlanPro     SubscriptionPlan = "PRO"
	PlanSchool  SubscriptionPlan = "SCHOOL"
	PlanPremium SubscriptionPlan = "PREMIUM"

	SubscriptionStatusActive   SubscriptionStatus = "ACTIVE"
	SubscriptionStatusInactive SubscriptionStatus = "INACTIVE"
	SubscriptionStatusCanceled SubscriptionStatus = "CANCELED"

	RegisterStatusPresent RegisterStatus = "Present"
	RegisterStatusAbsent  RegisterStatus = "Absent"
	RegisterStatusLate    RegisterStatus = "Late"
	RegisterStatusExcused RegisterStatus = "Excused"

	AssessmentTypeQuiz     AssessmentType = "Quiz"
	AssessmentTypeHomework AssessmentType = "Homework"
	AssessmentTypeProject  AssessmentType = "Project"
	AssessmentTypeTest     AssessmentType = "Test"
	AssessmentTypeExam     AssessmentType = "Exam"
)

// PaidPlans is the closed set of plans with any paid entitlement.
var PaidPlans = []SubscriptionPlan{PlanPro, PlanSchool, PlanPremium}
