// Package products calls the product catalogue endpoints.
package products

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/jrsteele09/go-storefront-client/apiclient"
	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/internal/validation"
	"github.com/pkg/errors"
)

const RouteProducts = "/products"

type Product struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Price         float64    `json:"price"`
	Description   string     `json:"description"`
	StockQuantity int        `json:"stockQuantity"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty"`
}

// Status is the label shown on the admin dashboard.
func (p Product) Status() string {
	switch {
	case p.DeletedAt != nil:
		return "Inactive"
	case p.StockQuantity == 0:
		return "Out of Stock"
	default:
		return "Active"
	}
}

type CreatePayload struct {
	Name          string  `json:"name" validate:"required,min=3"`
	Description   string  `json:"description" validate:"required,min=10"`
	Price         float64 `json:"price" validate:"gt=0"`
	StockQuantity int     `json:"stockQuantity" validate:"gte=0"`
}

// UpdatePayload is a partial update; nil fields are left untouched.
type UpdatePayload struct {
	Name          *string  `json:"name,omitempty" validate:"omitnil,min=3"`
	Description   *string  `json:"description,omitempty" validate:"omitnil,min=10"`
	Price         *float64 `json:"price,omitempty" validate:"omitnil,gt=0"`
	StockQuantity *int     `json:"stockQuantity,omitempty" validate:"omitnil,gte=0"`
}

type Service struct {
	api *apiclient.Client
}

func New(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// List returns the catalogue, optionally filtered by the search term q.
func (s *Service) List(ctx context.Context, q string) ([]Product, error) {
	var out []Product
	query := url.Values{"q": {strings.TrimSpace(q)}}
	if err := s.api.Get(ctx, RouteProducts, query, &out); err != nil {
		return nil, errors.Wrap(err, "[products List]")
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	path, err := productPath(id)
	if err != nil {
		return nil, err
	}
	var out Product
	if err := s.api.Get(ctx, path, nil, &out); err != nil {
		return nil, errors.Wrapf(err, "[products Get] %s", id)
	}
	return &out, nil
}

func (s *Service) Create(ctx context.Context, payload CreatePayload) (*Product, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	var out Product
	if err := s.api.Post(ctx, RouteProducts, payload, &out); err != nil {
		return nil, errors.Wrap(err, "[products Create]")
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, id string, payload UpdatePayload) (*Product, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	path, err := productPath(id)
	if err != nil {
		return nil, err
	}
	var out Product
	if err := s.api.Put(ctx, path, payload, &out); err != nil {
		return nil, errors.Wrapf(err, "[products Update] %s", id)
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	path, err := productPath(id)
	if err != nil {
		return err
	}
	if err := s.api.Delete(ctx, path); err != nil {
		return errors.Wrapf(err, "[products Delete] %s", id)
	}
	return nil
}

// productPath rejects ids that path cleaning would collapse out of /products/.
func productPath(id string) (string, error) {
	switch strings.TrimSpace(id) {
	case "", ".", "..":
		return "", errors.Wrapf(apperrors.ErrValidation, "[products] invalid product id %q", id)
	}
	return RouteProducts + "/" + url.PathEscape(id), nil
}
