package entitlement

import "markbook_backend/internal/models"

// Feature keys gated by subscription plan.
const (
	FeatureAIOCR             = "AI_OCR"
	FeatureAdvancedAnalytics = "ADVANCED_ANALYTICS"
	FeatureExportReports     = "EXPORT_REPORTS"
	FeatureUnlimitedUploads  = "UNLIMITED_UPLOADS"
)

// Feature describes one gated capability and the plans allowed to use it.
type Feature struct {
	Name         string
	Description  string
	AllowedPlans map[models.SubscriptionPlan]struct{}
}

// Registry maps feature keys to their definitions. It is built once at
// process start and read-only afterwards; lookups for unknown keys fail
// closed.
type Registry struct {
	features map[string]Feature
}

// NewRegistry builds the default feature registry. All current features are
// available on every paid plan; per-tier features only need a narrower
// plan list here.
func NewRegistry() *Registry {
	paid := planSet(models.PaidPlans...)

	return &Registry{
		features: map[string]Feature{
			FeatureAIOCR: {
				Name:         "AI OCR",
				Description:  "Extract text from images using AI",
				AllowedPlans: paid,
			},
			FeatureAdvancedAnalytics: {
				Name:         "Advanced Analytics",
				Description:  "Access to detailed analytics and insights",
				AllowedPlans: paid,
			},
			FeatureExportReports: {
				Name:         "Export Reports",
				Description:  "Export reports in various formats",
				AllowedPlans: paid,
			},
			FeatureUnlimitedUploads: {
				Name:         "Unlimited Uploads",
				Description:  "Upload unlimited files without restrictions",
				AllowedPlans: paid,
			},
		},
	}
}

// Lookup returns the feature definition for key. ok is false for unknown
// keys.
func (r *Registry) Lookup(key string) (Feature, bool) {
	f, ok := r.features[key]
	return f, ok
}

// Allows reports whether plan is in the feature's allow-list. Unknown
// features deny every plan.
func (r *Registry) Allows(key string, plan models.SubscriptionPlan) bool {
	f, ok := r.features[key]
	if !ok {
		return false
	}
	_, allowed := f.AllowedPlans[plan]
	return allowed
}

// Keys lists the registered feature keys.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.features))
	for k := range r.features {
		keys = append(keys, k)
	}
	return keys
}

func planSet(plans ...models.SubscriptionPlan) map[models.SubscriptionPlan]struct{} {
	set := make(map[models.SubscriptionPlan]struct{}, len(plans))
	for _, p := range plans {
		set[p] = struct{}{}
	}
	return set
}
