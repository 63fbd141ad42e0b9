// Package checkout builds submission-ready order drafts from a cart and
// pushes them to storage, compensating the order header when line-item
// persistence fails halfway.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"frituurgros/internal/domain"
	"frituurgros/internal/pricing"
	"frituurgros/internal/schedule"
)

// ErrSubmitFailed wraps storage failures during submission. The cart is left
// untouched so the buyer can retry.
var ErrSubmitFailed = errors.New("order submission failed")

type orderRepo interface {
	CreateHeader(ctx context.Context, order domain.Order) (*domain.Order, error)
	CreateLines(ctx context.Context, orderID string, lines []domain.OrderLine) error
	DeleteHeader(ctx context.Context, orderID string) error
	SetStatus(ctx context.Context, id, status string) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

type cart interface {
	Load(ctx context.Context) []domain.CartLine
	Clear(ctx context.Context) error
}

type publisher interface {
	OrderCreated(ctx context.Context, order domain.Order) error
	OrderCompensated(ctx context.Context, orderID, reason string) error
}

type Service struct {
	orders        orderRepo
	events        publisher
	policy        schedule.Policy
	submitTimeout time.Duration
	logger        *zap.Logger
}

func New(orders orderRepo, events publisher, policy schedule.Policy, submitTimeout time.Duration, logger *zap.Logger) *Service {
	if submitTimeout <= 0 {
		submitTimeout = 15 * time.Second
	}
	return &Service{
		orders:        orders,
		events:        events,
		policy:        policy,
		submitTimeout: submitTimeout,
		logger:        logger,
	}
}

// AvailableDates lists the delivery dates the client may request for their
// zone. A nil zone yields no dates; the storefront shows a "contact us"
// dead-end instead of a date picker.
func (s *Service) AvailableDates(zone *domain.DeliveryZone, now time.Time) []time.Time {
	if zone == nil {
		return nil
	}
	return schedule.Available(zone.Weekdays, now, s.policy)
}

// BuildDraft validates the cart against the client's zone and produces the
// order to submit. All validation happens here, before any external call.
func (s *Service) BuildDraft(lines []domain.CartLine, account domain.ClientAccount, zone *domain.DeliveryZone, requestedDate time.Time, instructions string, now time.Time) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if requestedDate.IsZero() {
		return nil, domain.ErrNoDeliveryDate
	}
	if zone == nil || !schedule.Contains(zone.Weekdays, now, s.policy, requestedDate) {
		return nil, domain.ErrDateUnavailable
	}

	totals := pricing.Evaluate(lines, zone)
	order := domain.Order{
		ClientID:              account.ID,
		Status:                domain.OrderPlaced,
		Subtotal:              totals.Subtotal,
		ShippingFee:           totals.ShippingFee,
		Total:                 totals.Total,
		DiscountPercentage:    account.DiscountPercentage,
		RequestedDeliveryDate: requestedDate,
		DeliveryInstructions:  instructions,
	}
	for _, line := range lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			VariantID:   line.VariantID,
			VariantName: line.VariantName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	return &order, nil
}

// Submit persists the draft: header first, then lines. If the lines fail the
// header is deleted so no order ever exists without items, and the cart is
// not cleared. On success the cart is cleared and an order-created event is
// published; failures past the storage writes never fail the submission.
func (s *Service) Submit(ctx context.Context, draft *domain.Order, buyerCart cart) (*domain.Order, error) {
	if len(draft.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	ctx, cancel := context.WithTimeout(ctx, s.submitTimeout)
	defer cancel()

	header, err := s.orders.CreateHeader(ctx, *draft)
	if err != nil {
		return nil, fmt.Errorf("%w: create header: %v", ErrSubmitFailed, err)
	}

	if err := s.orders.CreateLines(ctx, header.ID, draft.Lines); err != nil {
		if delErr := s.orders.DeleteHeader(ctx, header.ID); delErr != nil {
			s.logger.Error("compensating header delete failed",
				zap.String("order_id", header.ID), zap.Error(delErr))
		}
		if pubErr := s.events.OrderCompensated(ctx, header.ID, err.Error()); pubErr != nil {
			s.logger.Warn("publish compensation event failed", zap.String("order_id", header.ID), zap.Error(pubErr))
		}
		return nil, fmt.Errorf("%w: create lines: %v", ErrSubmitFailed, err)
	}

	if err := buyerCart.Clear(ctx); err != nil {
		s.logger.Warn("cart clear after submission failed", zap.String("order_id", header.ID), zap.Error(err))
	}
	if err := s.events.OrderCreated(ctx, *header); err != nil {
		s.logger.Warn("publish order-created event failed", zap.String("order_id", header.ID), zap.Error(err))
	}

	header.Lines = draft.Lines
	return header, nil
}

var transitions = map[string][]string{
	domain.OrderPlaced:    {domain.OrderConfirmed, domain.OrderCancelled},
	domain.OrderConfirmed: {domain.OrderDelivered, domain.OrderCancelled},
}

// Advance moves an order along its lifecycle. Delivered and cancelled are
// terminal.
func (s *Service) Advance(ctx context.Context, orderID, next string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	allowed := false
	for _, status := range transitions[order.Status] {
		if status == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatus, order.Status, next)
	}
	if err := s.orders.SetStatus(ctx, orderID, next); err != nil {
		return nil, err
	}
	order.Status = next
	return order, nil
}
