// Package orders calls the admin order listing endpoint.
package orders

import (
	"context"
	"net/url"
	"time"

	"github.com/jrsteele09/go-storefront-client/apiclient"
	"github.com/pkg/errors"
)

const (
	RouteOrders = "/orders"
	DateLayout  = "2006-01-02"
)

type Status string

const (
	StatusCart       Status = "CART"
	StatusReceived   Status = "RECEIVED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

type Customer struct {
	Email string `json:"email"`
}

type Order struct {
	ID          string    `json:"id"`
	OrderStatus Status    `json:"orderStatus"`
	OrderDate   time.Time `json:"orderDate"`
	Total       float64   `json:"total"`
	User        Customer  `json:"user"`
}

// Filter restricts the listing to orders placed between two calendar dates (inclusive).
// Empty dates are not sent.
type Filter struct {
	StartDate string
	EndDate   string
}

// DefaultFilter covers January 1st of now's year up to now's date.
func DefaultFilter(now time.Time) Filter {
	return Filter{
		StartDate: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC).Format(DateLayout),
		EndDate:   now.UTC().Format(DateLayout),
	}
}

func (f Filter) validate() error {
	var start, end time.Time
	var err error
	if f.StartDate != "" {
		if start, err = time.Parse(DateLayout, f.StartDate); err != nil {
			return errors.Wrap(err, "invalid start date")
		}
	}
	if f.EndDate != "" {
		if end, err = time.Parse(DateLayout, f.EndDate); err != nil {
			return errors.Wrap(err, "invalid end date")
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return errors.New("end date is before start date")
	}
	return nil
}

type Service struct {
	api *apiclient.Client
}

func New(api *apiclient.Client) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Order, error) {
	if err := filter.validate(); err != nil {
		return nil, errors.Wrap(err, "[orders List]")
	}

	var out []Order
	query := url.Values{
		"startDate": {filter.StartDate},
		"endDate":   {filter.EndDate},
	}
	if err := s.api.Get(ctx, RouteOrders, query, &out); err != nil {
		return nil, errors.Wrap(err, "[orders List]")
	}
	return out, nil
}
