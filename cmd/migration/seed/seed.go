package seed

import (
	"time"

	"skimmer/config"
	. "skimmer/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	customers := []Customer{
		{
			Name:         "Margaret Holt",
			Email:        stringPtr("margaret.holt@example.com"),
			Phone:        stringPtr("555-0142"),
			Address:      "1418 Pecan Hollow Dr",
			City:         stringPtr("Austin"),
			State:        stringPtr("TX"),
			ZipCode:      stringPtr("78745"),
			GateCode:     stringPtr("4821"),
			BillingModel: stringPtr(BillingPerMonth),
			MonthlyRate:  decimalPtr(decimal.NewFromFloat(165.00)),
		},
		{
			Name:         "Ray Delgado",
			Email:        stringPtr("ray.delgado@example.com"),
			Phone:        stringPtr("555-0187"),
			Address:      "77 Bluebonnet Cir",
			City:         stringPtr("Round Rock"),
			State:        stringPtr("TX"),
			ZipCode:      stringPtr("78664"),
			BillingModel: stringPtr(BillingPerStop),
		},
		{
			Name:    "Priya Raman",
			Address: "2203 Cedar Elm Ln",
			City:    stringPtr("Pflugerville"),
			State:   stringPtr("TX"),
			ZipCode: stringPtr("78660"),
		},
	}

	for i := range customers {
		var existing Customer
		if err := db.First(&existing, "name = ?", customers[i].Name).Error; err == nil {
			log.Info("Customer already exists", "name", customers[i].Name)
			continue
		}
		log.Info("Seeding customer", "name", customers[i].Name)
		if err := db.Create(&customers[i]).Error; err != nil {
			log.Er("failed to create customer", err, "name", customers[i].Name)
		}
	}

	if len(customers) == 0 {
		return nil
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	services := []Service{
		{
			CustomerID:    customers[0].ID,
			ServiceType:   ServiceTypeRegular,
			ScheduledDate: today.AddDate(0, 0, 2),
			ScheduledTime: stringPtr("09:00"),
			Status:        StatusScheduled,
		},
		{
			CustomerID:    customers[1].ID,
			ServiceType:   ServiceTypeRepair,
			ScheduledDate: today.AddDate(0, 0, -7),
			Status:        StatusCompleted,
			ServiceNotes:  stringPtr("Replaced pump impeller"),
		},
	}

	for i := range services {
		if services[i].CustomerID == uuid.Nil {
			continue
		}
		if err := db.Create(&services[i]).Error; err != nil {
			log.Er("failed to create service", err)
		}
	}

	recurring := []RecurringService{
		{
			CustomerID:  customers[0].ID,
			ServiceType: ServiceTypeRegular,
			Frequency:   FrequencyWeekly,
			DayOfWeek:   intPtr(2),
			StartDate:   today.AddDate(0, -1, 0),
			IsActive:    true,
		},
		{
			CustomerID:  customers[1].ID,
			ServiceType: ServiceTypeRegular,
			Frequency:   FrequencyMonthly,
			DayOfMonth:  intPtr(15),
			StartDate:   today.AddDate(0, -2, 0),
			IsActive:    true,
		},
	}

	for i := range recurring {
		if recurring[i].CustomerID == uuid.Nil {
			continue
		}
		if err := db.Create(&recurring[i]).Error; err != nil {
			log.Er("failed to create recurring service", err)
		}
	}

	return nil
}
