package handlers

import (
	"net/http"

	"markbook_backend/internal/dto"
	"markbook_backend/internal/entitlement"
	"markbook_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin dashboard: analytics, the user list with
// entitlement snapshots, recent activity, and the premium override.
type AdminHandler struct {
	*BaseHandler
	adminService    services.AdminService
	billingService  services.BillingService
	activityService services.ActivityService
	guard           *entitlement.Guard
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService,
	billingService services.BillingService, activityService services.ActivityService,
	guard *entitlement.Guard) *AdminHandler {
	return &AdminHandler{
		BaseHandler:     base,
		adminService:    adminService,
		billingService:  billingService,
		activityService: activityService,
		guard:           guard,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired, adminRequired gin.HandlerFunc) {
	admin := rg.Group("/admin")
	admin.Use(authRequired, adminRequired)
	{
		admin.GET("/analytics/overview", h.Overview)
		admin.GET("/activity", h.RecentActivity)
		admin.GET("/users", h.ListUsers)
		admin.POST("/users/:userId/grant-premium", h.GrantPremium)
		admin.POST("/users/:userId/revoke-premium", h.RevokePremium)
	}
}

func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.adminService.Overview()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *AdminHandler) RecentActivity(c *gin.Context) {
	var query dto.RecentActivityQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	entries, err := h.activityService.GetRecent(query.Limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var query dto.ListUsersQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	users, err := h.adminService.ListUsers(query.Page, query.PageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) GrantPremium(c *gin.Context) {
	admin, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.GrantPremiumRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.billingService.GrantPremium(admin, c.Param("userId"), req.Lifetime, req.Days)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEntitlementSnapshot(user, h.guard.IsEntitled(user)))
}

func (h *AdminHandler) RevokePremium(c *gin.Context) {
	admin, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	user, err := h.billingService.RevokePremium(admin, c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEntitlementSnapshot(user, h.guard.IsEntitled(user)))
}
