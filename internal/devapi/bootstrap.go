package devapi

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/orders"
	"github.com/jrsteele09/go-storefront-client/products"
	"github.com/rs/zerolog/log"
)

const generatedPasswordBytes = 12

// Bootstrap seeds the admin account from config and a small demo catalogue.
// It returns the admin password, which is generated when none is configured.
func (s *Server) Bootstrap() (adminPassword string, err error) {
	adminEmail := s.config.GetAdminEmail()
	adminPassword = s.config.GetAdminPassword()
	if adminPassword == "" {
		if adminPassword, err = generatePassword(); err != nil {
			return "", apperrors.Wrapf(err, "[Server Bootstrap] generate admin password")
		}
	}

	if _, err := s.users.Create(adminEmail, adminPassword, true); err != nil {
		return "", apperrors.Wrapf(err, "[Server Bootstrap] create admin %s", adminEmail)
	}

	s.seedCatalogue()

	log.Info().Str("email", adminEmail).Int("products", len(s.catalog.List(""))).Msg("development API seeded")
	return adminPassword, nil
}

func (s *Server) seedCatalogue() {
	demo := []products.CreatePayload{
		{Name: "Espresso Beans", Description: "Dark roast whole beans, 1kg bag", Price: 24.5, StockQuantity: 40},
		{Name: "Pour Over Kettle", Description: "Gooseneck kettle with thermometer", Price: 59.99, StockQuantity: 12},
		{Name: "Ceramic Dripper", Description: "Single cup ceramic cone dripper", Price: 18, StockQuantity: 0},
	}

	var created []products.Product
	for _, p := range demo {
		created = append(created, s.catalog.Create(p))
	}

	now := NowTimeFunc().UTC()
	s.orders.Add(orders.Order{OrderStatus: orders.StatusReceived, OrderDate: now, Total: created[0].Price * 2, User: orders.Customer{Email: "alex@example.com"}})
	s.orders.Add(orders.Order{OrderStatus: orders.StatusShipped, OrderDate: now.Add(-72 * time.Hour), Total: created[1].Price, User: orders.Customer{Email: "sam@example.com"}})
	s.orders.Add(orders.Order{OrderStatus: orders.StatusDelivered, OrderDate: now.AddDate(0, -1, 0), Total: created[2].Price, User: orders.Customer{Email: "alex@example.com"}})
}

func generatePassword() (string, error) {
	b := make([]byte, generatedPasswordBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
