package entitlement

import (
	"testing"

	"markbook_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_PaidPlansAllowed(t *testing.T) {
	r := NewRegistry()

	for _, key := range r.Keys() {
		for _, plan := range models.PaidPlans {
			assert.True(t, r.Allows(key, plan), "%s should allow %s", key, plan)
		}
		assert.False(t, r.Allows(key, models.PlanFree), "%s must not allow FREE", key)
	}
}

func TestRegistry_UnknownFeature(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Lookup("DOES_NOT_EXIST")
	assert.False(t, ok)
	assert.False(t, r.Allows("DOES_NOT_EXIST", models.PlanPremium))
}

func TestRegistry_KnownKeys(t *testing.T) {
	r := NewRegistry()

	for _, key := range []string{FeatureAIOCR, FeatureAdvancedAnalytics, FeatureExportReports, FeatureUnlimitedUploads} {
		f, ok := r.Lookup(key)
		assert.True(t, ok, key)
		assert.NotEmpty(t, f.Name)
	}
}
