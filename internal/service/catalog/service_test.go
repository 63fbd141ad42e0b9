package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"frituurgros/internal/domain"
)

type stubProducts struct {
	created    *domain.Product
	updated    *domain.Product
	setActive  map[string]bool
	listFilter string
	activeOnly bool
	products   []domain.Product
}

func (s *stubProducts) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	p.ID = "p1"
	s.created = &p
	return &p, nil
}

func (s *stubProducts) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.updated = &p
	return &p, nil
}

func (s *stubProducts) SetActive(_ context.Context, id string, active bool) error {
	if s.setActive == nil {
		s.setActive = make(map[string]bool)
	}
	s.setActive[id] = active
	return nil
}

func (s *stubProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubProducts) List(_ context.Context, categoryID string, activeOnly bool) ([]domain.Product, error) {
	s.listFilter = categoryID
	s.activeOnly = activeOnly
	return s.products, nil
}

type stubCategories struct {
	created *domain.Category
}

func (s *stubCategories) Create(_ context.Context, c domain.Category) (*domain.Category, error) {
	c.ID = "c1"
	s.created = &c
	return &c, nil
}

func (s *stubCategories) List(context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: "c1", Name: "Snacks"}}, nil
}

func validInput() ProductInput {
	return ProductInput{
		Name:   "Rundvleeskroketten",
		Active: true,
		Variants: []VariantInput{
			{Name: "Doos 20 stuks", Weight: "1.4kg", BasePrice: decimal.RequireFromString("18.40")},
		},
	}
}

func TestCreateProduct(t *testing.T) {
	products := &stubProducts{}
	svc := New(products, &stubCategories{})

	p, err := svc.CreateProduct(context.Background(), validInput())
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if p.ID != "p1" {
		t.Errorf("expected stored product back, got %+v", p)
	}
	if len(products.created.Variants) != 1 {
		t.Errorf("expected 1 variant, got %d", len(products.created.Variants))
	}
}

func TestCreateProductRejectsMissingName(t *testing.T) {
	svc := New(&stubProducts{}, &stubCategories{})

	in := validInput()
	in.Name = "   "
	if _, err := svc.CreateProduct(context.Background(), in); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestCreateProductRequiresVariant(t *testing.T) {
	svc := New(&stubProducts{}, &stubCategories{})

	in := validInput()
	in.Variants = nil
	if _, err := svc.CreateProduct(context.Background(), in); err == nil {
		t.Fatal("expected error for product without variants")
	}
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	svc := New(&stubProducts{}, &stubCategories{})

	in := validInput()
	in.Variants[0].BasePrice = decimal.RequireFromString("-0.01")
	if _, err := svc.CreateProduct(context.Background(), in); err == nil {
		t.Fatal("expected error for negative variant price")
	}
}

func TestListProductsVisibility(t *testing.T) {
	products := &stubProducts{}
	svc := New(products, &stubCategories{})

	if _, err := svc.ListProducts(context.Background(), "c1", false); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if !products.activeOnly {
		t.Error("storefront listing should only include active products")
	}
	if products.listFilter != "c1" {
		t.Errorf("expected category filter c1, got %q", products.listFilter)
	}

	if _, err := svc.ListProducts(context.Background(), "", true); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if products.activeOnly {
		t.Error("back-office listing should include inactive products")
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	failing := &failingProducts{err: domain.ErrNotFound}
	svc := New(failing, &stubCategories{})

	_, err := svc.UpdateProduct(context.Background(), "missing", validInput())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type failingProducts struct {
	stubProducts
	err error
}

func (f *failingProducts) Update(context.Context, domain.Product) (*domain.Product, error) {
	return nil, f.err
}

func TestCreateCategorySlug(t *testing.T) {
	categories := &stubCategories{}
	svc := New(&stubProducts{}, categories)

	c, err := svc.CreateCategory(context.Background(), "  Verse Frieten ")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if c.Name != "Verse Frieten" {
		t.Errorf("expected trimmed name, got %q", c.Name)
	}
	if c.Slug != "verse-frieten" {
		t.Errorf("expected slug verse-frieten, got %q", c.Slug)
	}
}

func TestCreateCategoryRejectsBlankName(t *testing.T) {
	svc := New(&stubProducts{}, &stubCategories{})

	if _, err := svc.CreateCategory(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank category name")
	}
}
