package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikshi-16/amazon/internal/cache"
	"github.com/nikshi-16/amazon/internal/domain"
	"github.com/nikshi-16/amazon/internal/notification"
	"github.com/nikshi-16/amazon/internal/repository"
	"github.com/rs/zerolog"
)

var (
	ErrOrderNotPriced      = errors.New("order total price is missing")
	ErrOrderAlreadyPaid    = errors.New("order is already paid")
	ErrOrderAccessDenied   = errors.New("order belongs to another user")
	ErrWrongPaymentMethod  = errors.New("order payment method requires provider capture")
	ErrPaymentVerification = errors.New("payment capture failed verification")
)

// Service runs the two-phase payment protocol. Phase failures leave the
// order in its prior state; the caller retries the whole phase.
type Service struct {
	orders   repository.OrderRepository
	provider Provider
	receipts notification.ReceiptPublisher
	cache    cache.OrderCache
	logger   zerolog.Logger
}

func NewService(
	orders repository.OrderRepository,
	provider Provider,
	receipts notification.ReceiptPublisher,
	orderCache cache.OrderCache,
	logger zerolog.Logger,
) *Service {
	return &Service{
		orders:   orders,
		provider: provider,
		receipts: receipts,
		cache:    orderCache,
		logger:   logger,
	}
}

// CreateProviderOrder is phase 1: it creates a provider-side order for the
// stored total and records the provider id on the order. The returned id goes
// to the client for confirmation. Only the order's owner may start a phase.
func (s *Service) CreateProviderOrder(ctx context.Context, userID, orderID string) (string, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.UserID != userID {
		return "", ErrOrderAccessDenied
	}
	if order.IsPaid {
		return "", ErrOrderAlreadyPaid
	}
	if order.TotalPrice.IsZero() {
		return "", ErrOrderNotPriced
	}

	providerOrder, err := s.provider.CreateOrder(ctx, order.TotalPrice)
	if err != nil {
		return "", fmt.Errorf("provider order creation failed: %w", err)
	}

	result := &domain.PaymentResult{ID: providerOrder.ID}
	if err := s.orders.SetPaymentResult(ctx, orderID, result); err != nil {
		return "", err
	}

	s.logger.Info().
		Str("order_id", orderID).
		Str("provider_order_id", providerOrder.ID).
		Msg("payment intent created")

	return providerOrder.ID, nil
}

// ApprovePayment is phase 2: it captures the provider session and marks the
// order paid only when the capture is non-nil, its id matches the id stored
// in phase 1, and its status is the completed sentinel. A client cannot mark
// an order paid by supplying an arbitrary provider id.
func (s *Service) ApprovePayment(ctx context.Context, userID, orderID, providerSessionID string) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return ErrOrderAccessDenied
	}
	if order.IsPaid {
		return ErrOrderAlreadyPaid
	}

	capture, err := s.provider.CapturePayment(ctx, providerSessionID)
	if err != nil {
		return fmt.Errorf("provider capture failed: %w", err)
	}

	if capture == nil ||
		order.PaymentResult == nil ||
		capture.ID != order.PaymentResult.ID ||
		capture.Status != StatusCompleted {
		return ErrPaymentVerification
	}

	paidAt := time.Now()
	result := &domain.PaymentResult{
		ID:           capture.ID,
		Status:       capture.Status,
		EmailAddress: capture.PayerEmail,
		PricePaid:    capture.PricePaid,
	}
	if err := s.orders.SetPaid(ctx, orderID, paidAt, result); err != nil {
		return err
	}

	order.IsPaid = true
	order.PaidAt = &paidAt
	order.PaymentResult = result

	s.logger.Info().
		Str("order_id", orderID).
		Str("provider_order_id", capture.ID).
		Str("price_paid", capture.PricePaid).
		Msg("order paid")

	s.notifyAndInvalidate(order)
	return nil
}

// MarkOrderPaid is the simple path for methods with no provider round trip.
// It refuses orders whose method expects a provider capture; those must go
// through ApprovePayment and its verification.
func (s *Service) MarkOrderPaid(ctx context.Context, userID, orderID string) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return ErrOrderAccessDenied
	}
	if order.PaymentMethod != string(domain.PaymentMethodCashOnDelivery) {
		return ErrWrongPaymentMethod
	}
	if order.IsPaid {
		return ErrOrderAlreadyPaid
	}

	paidAt := time.Now()
	result := &domain.PaymentResult{Status: StatusCompleted, PricePaid: order.TotalPrice.StringFixed(2)}
	if err := s.orders.SetPaid(ctx, orderID, paidAt, result); err != nil {
		return err
	}

	order.IsPaid = true
	order.PaidAt = &paidAt
	order.PaymentResult = result

	s.logger.Info().Str("order_id", orderID).Msg("order marked paid")

	s.notifyAndInvalidate(order)
	return nil
}

// notifyAndInvalidate is fire and forget: receipt delivery or cache failures
// never surface to the payment caller.
func (s *Service) notifyAndInvalidate(order *domain.Order) {
	email, err := s.orders.UserEmail(context.Background(), order.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("failed to resolve user email for receipt")
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.receipts.PublishOrderPaid(ctx, order, email); err != nil {
			s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("failed to publish receipt event")
		}
	}()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.cache.Delete(ctx, order.ID); err != nil {
			s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("failed to invalidate order cache")
		}
	}()
}
