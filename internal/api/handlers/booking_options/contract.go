package booking_options

import "github.com/m04kA/mehndi-booking-service/internal/service/catalog/models"

type CatalogService interface {
	Get() *models.CatalogResponse
}
