package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/atletica-scoreboard/models"
	"github.com/Dosada05/atletica-scoreboard/repositories"
)

type InventoryService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id int) (*models.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int, input ProductInput) (*models.Product, error)
	// AdjustStock adds delta (negative for sales) to the product's quantity.
	AdjustStock(ctx context.Context, id, delta int) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

type ProductInput struct {
	Name                string  `json:"name"`
	Size                string  `json:"size"`
	Quantity            int     `json:"quantity"`
	PriceMemberCents    int64   `json:"price_member_cents"`
	PriceNonMemberCents int64   `json:"price_non_member_cents"`
	ImageURL            *string `json:"image_url"`
}

type inventoryService struct {
	productRepo repositories.ProductRepository
	logger      *slog.Logger
}

func NewInventoryService(productRepo repositories.ProductRepository, logger *slog.Logger) InventoryService {
	return &inventoryService{
		productRepo: productRepo,
		logger:      logger,
	}
}

func (s *inventoryService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		return []models.Product{}, nil
	}
	return products, nil
}

func (s *inventoryService) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapProductError(err, id)
	}
	return product, nil
}

func (s *inventoryService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	product, err := newProduct(input)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *inventoryService) UpdateProduct(ctx context.Context, id int, input ProductInput) (*models.Product, error) {
	product, err := newProduct(input)
	if err != nil {
		return nil, err
	}
	product.ID = id
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, mapProductError(err, id)
	}
	return product, nil
}

func (s *inventoryService) AdjustStock(ctx context.Context, id, delta int) (*models.Product, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: stock adjustment must not be zero", ErrValidationFailed)
	}
	quantity, err := s.productRepo.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, mapProductError(err, id)
	}
	s.logger.InfoContext(ctx, "stock adjusted",
		slog.Int("product_id", id), slog.Int("delta", delta), slog.Int("quantity", quantity))

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapProductError(err, id)
	}
	return product, nil
}

func (s *inventoryService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return mapProductError(err, id)
	}
	return nil
}

func newProduct(input ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: product name is required", ErrValidationFailed)
	case !models.ValidProductSize(input.Size):
		return nil, fmt.Errorf("%w: size must be one of %s", ErrValidationFailed, strings.Join(models.ProductSizes, ", "))
	case input.Quantity < 0:
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrValidationFailed)
	case input.PriceMemberCents < 0 || input.PriceNonMemberCents < 0:
		return nil, fmt.Errorf("%w: prices cannot be negative", ErrValidationFailed)
	}

	product := &models.Product{
		Name:                name,
		Size:                input.Size,
		Quantity:            input.Quantity,
		PriceMemberCents:    input.PriceMemberCents,
		PriceNonMemberCents: input.PriceNonMemberCents,
	}
	if input.ImageURL != nil {
		if image := strings.TrimSpace(*input.ImageURL); image != "" {
			product.ImageURL = &image
		}
	}
	return product, nil
}

func mapProductError(err error, id int) error {
	switch {
	case errors.Is(err, repositories.ErrProductNotFound):
		return ErrProductNotFound
	case errors.Is(err, repositories.ErrInsufficientStock):
		return ErrInsufficientStock
	default:
		return fmt.Errorf("product %d: %w", id, err)
	}
}
