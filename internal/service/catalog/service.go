// Package catalog serves products and categories to the storefront and
// back-office.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"frituurgros/internal/domain"
	categoryrepo "frituurgros/internal/repository/category"
	productrepo "frituurgros/internal/repository/product"
)

type Service struct {
	products   productrepo.Repository
	categories categoryrepo.Repository
}

func New(products productrepo.Repository, categories categoryrepo.Repository) *Service {
	return &Service{products: products, categories: categories}
}

// VariantInput is one packaging option in a product payload.
type VariantInput struct {
	Name      string          `json:"name"`
	Weight    string          `json:"weight"`
	BasePrice decimal.Decimal `json:"basePrice"`
}

// ProductInput mirrors the admin product form.
type ProductInput struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CategoryID  *string        `json:"categoryId"`
	ImageURL    string         `json:"imageUrl"`
	Active      bool           `json:"active"`
	Variants    []VariantInput `json:"variants"`
}

// ListProducts returns catalog products, optionally filtered by category.
// Buyers only see active products; the back-office sees everything.
func (s *Service) ListProducts(ctx context.Context, categoryID string, includeInactive bool) ([]domain.Product, error) {
	return s.products.List(ctx, categoryID, !includeInactive)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	p, err := productFromInput(in)
	if err != nil {
		return nil, err
	}
	return s.products.Create(ctx, *p)
}

func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	p, err := productFromInput(in)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return s.products.Update(ctx, *p)
}

func (s *Service) SetProductActive(ctx context.Context, id string, active bool) error {
	return s.products.SetActive(ctx, id, active)
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name required")
	}
	slug := strings.ReplaceAll(strings.ToLower(name), " ", "-")
	return s.categories.Create(ctx, domain.Category{Name: name, Slug: slug})
}

func productFromInput(in ProductInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("name required")
	}
	if len(in.Variants) == 0 {
		return nil, errors.New("at least one variant required")
	}
	p := domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		CategoryID:  in.CategoryID,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Active:      in.Active,
	}
	for _, v := range in.Variants {
		if strings.TrimSpace(v.Name) == "" {
			return nil, errors.New("variant name required")
		}
		if v.BasePrice.IsNegative() {
			return nil, errors.New("variant price must not be negative")
		}
		p.Variants = append(p.Variants, domain.Variant{
			Name:      strings.TrimSpace(v.Name),
			Weight:    strings.TrimSpace(v.Weight),
			BasePrice: v.BasePrice,
		})
	}
	return &p, nil
}
