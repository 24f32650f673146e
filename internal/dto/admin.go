package dto

import "markbook_backend/internal/models"

// AnalyticsOverview is the admin dashboard summary.
type AnalyticsOverview struct {
	TotalUsers       int64                              `json:"total_users"`
	TotalStudents    int64                              `json:"total_students"`
	NewUsersThisWeek int64                              `json:"new_users_this_week"`
	PlanDistribution map[models.SubscriptionPlan]int64  `json:"plan_distribution"`
}

type ListUsersQuery struct {
	Page     int `form:"page" validate:"omitempty,gte=1"`
	PageSize int `form:"page_size" validate:"omitempty,gte=1,lte=200"`
}

type RecentActivityQuery struct {
	Limit int `form:"limit" validate:"omitempty,gte=1,lte=200"`
}
