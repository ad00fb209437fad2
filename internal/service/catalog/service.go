package catalog

import (
	"time"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
	"github.com/m04kA/mehndi-booking-service/internal/service/catalog/models"
)

// Service publishes the booking options so clients do not hard-code prices
type Service struct {
	prices       PriceTable
	schedule     *domain.Schedule
	currency     string
	requireTerms bool
	logger       Logger
}

func NewService(prices PriceTable, schedule *domain.Schedule, currency string, requireTerms bool, logger Logger) *Service {
	return &Service{
		prices:       prices,
		schedule:     schedule,
		currency:     currency,
		requireTerms: requireTerms,
		logger:       logger,
	}
}

// Get returns the current catalog
func (s *Service) Get() *models.CatalogResponse {
	rules := s.prices.Rules()
	defaultDuration := s.schedule.DefaultDuration

	resp := &models.CatalogResponse{
		Currency:        s.currency,
		Timezone:        s.schedule.Location.String(),
		DurationMinutes: int(defaultDuration / time.Minute),
		LookaheadDays:   s.schedule.LookaheadDays,
		TermsRequired:   s.requireTerms,
		Windows:         make([]models.WindowResponse, 0, len(s.schedule.Windows)),
		Packages:        make([]models.PackageResponse, 0, len(rules.Packages)),
		Deposit: models.DepositResponse{
			Package:          rules.PackageDeposit.String(),
			PerPerson:        rules.PerPersonDeposit.String(),
			GuestBooking:     rules.GuestDeposit.String(),
			AdditionalPeople: string(rules.AdditionalPricing),
		},
		BridalDiscount:  rules.BridalDiscount.String(),
		GuestHourlyRate: rules.GuestHourlyRate.String(),
		MaxAdditional:   domain.MaxAdditionalPeople,
		GuestHours:      models.HoursRange{Min: domain.MinGuestHours, Max: domain.MaxGuestHours},
	}

	for _, w := range s.schedule.Windows {
		resp.Windows = append(resp.Windows, models.WindowResponse{
			Slot: string(w.Label),
			From: w.From.String(),
			To:   w.To.String(),
		})
	}

	for _, p := range rules.Packages {
		pkg := models.PackageResponse{
			Name:       p.Name,
			PricePence: p.Price.Pence(),
			Price:      p.Price.String(),
			Bridal:     p.Bridal,
		}
		if d := s.schedule.Duration(p.Name, false, 0); d != defaultDuration {
			pkg.DurationMinutes = int(d / time.Minute)
		}
		resp.Packages = append(resp.Packages, pkg)
	}

	s.logger.Info("Catalog: %d packages, %d windows", len(resp.Packages), len(resp.Windows))
	return resp
}
