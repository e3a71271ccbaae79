package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsValidServiceType(t *testing.T) {
	assert.True(t, IsValidServiceType(ServiceTypeRegular))
	assert.True(t, IsValidServiceType(ServiceTypeRepair))
	assert.True(t, IsValidServiceType(ServiceTypeOneOff))
	assert.False(t, IsValidServiceType("cleaning"))
	assert.False(t, IsValidServiceType(""))
	assert.False(t, IsValidServiceType("Regular"))
}

func TestIsValidServiceStatus(t *testing.T) {
	for _, status := range []string{StatusScheduled, StatusInProgress, StatusCompleted, StatusSkipped} {
		assert.True(t, IsValidServiceStatus(status), status)
	}
	assert.False(t, IsValidServiceStatus("cancelled"))
	assert.False(t, IsValidServiceStatus(""))
}

func TestIsValidFrequency(t *testing.T) {
	assert.True(t, IsValidFrequency(FrequencyWeekly))
	assert.True(t, IsValidFrequency(FrequencyBiweekly))
	assert.True(t, IsValidFrequency(FrequencyMonthly))
	assert.False(t, IsValidFrequency("daily"))
	assert.False(t, IsValidFrequency(""))
}

func TestIsValidBillingModel(t *testing.T) {
	for _, model := range []string{BillingPerMonth, BillingPlusChems, BillingPerStop, BillingWithChems} {
		assert.True(t, IsValidBillingModel(model), model)
	}
	assert.False(t, IsValidBillingModel("per_visit"))
}

func TestBaseUUIDModel_BeforeCreate(t *testing.T) {
	t.Run("assigns id when missing", func(t *testing.T) {
		model := BaseUUIDModel{}
		err := model.BeforeCreate(nil)

		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, model.ID)
	})

	t.Run("keeps an existing id", func(t *testing.T) {
		id := uuid.New()
		model := BaseUUIDModel{ID: id}
		err := model.BeforeCreate(nil)

		assert.NoError(t, err)
		assert.Equal(t, id, model.ID)
	})
}

func TestCustomerPatch_Updates(t *testing.T) {
	t.Run("empty patch yields empty map", func(t *testing.T) {
		assert.Empty(t, CustomerPatch{}.Updates())
	})

	t.Run("only set fields are carried", func(t *testing.T) {
		name := "Ray Delgado"
		autopay := true
		updates := CustomerPatch{Name: &name, AutopayEnabled: &autopay}.Updates()

		assert.Len(t, updates, 2)
		assert.Equal(t, "Ray Delgado", updates["name"])
		assert.Equal(t, true, updates["autopay_enabled"])
	})
}

func TestServicePatch_Updates(t *testing.T) {
	status := StatusCompleted
	completedAt := time.Now()
	updates := ServicePatch{Status: &status, CompletedAt: &completedAt}.Updates()

	assert.Len(t, updates, 2)
	assert.Equal(t, StatusCompleted, updates["status"])
	assert.Equal(t, completedAt, updates["completed_at"])
}

func TestRecurringServicePatch_Updates(t *testing.T) {
	t.Run("empty patch yields empty map", func(t *testing.T) {
		assert.Empty(t, RecurringServicePatch{}.Updates())
	})

	t.Run("day fields are carried independently", func(t *testing.T) {
		dayOfWeek := 3
		updates := RecurringServicePatch{DayOfWeek: &dayOfWeek}.Updates()

		assert.Len(t, updates, 1)
		assert.Equal(t, 3, updates["day_of_week"])
	})
}
