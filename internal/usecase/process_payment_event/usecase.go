package process_payment_event

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/turnosapp/booking-service/internal/domain"
	"github.com/turnosapp/booking-service/internal/integrations/mercadopago"
	bookingsService "github.com/turnosapp/booking-service/internal/service/bookings"
	"github.com/turnosapp/booking-service/pkg/ptr"
)

// UseCase use case сверки платежного уведомления с реестром бронирований.
//
// Контракт со шлюзом: уведомление подтверждается (2xx) во всех случаях,
// кроме невалидной подписи. Иначе шлюз будет бесконечно ретраить события,
// которые мы обработать не можем.
type UseCase struct {
	gateway  PaymentGateway
	ledger   BookingLedger
	notifier Notifier
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(gateway PaymentGateway, ledger BookingLedger, notifier Notifier, logger Logger) *UseCase {
	return &UseCase{
		gateway:  gateway,
		ledger:   ledger,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute выполняет сверку одного платежного уведомления
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Проверяем подпись уведомления
	if !uc.gateway.VerifySignature(req.XSignature, req.XRequestID, req.DataID) {
		uc.logger.Warn("ProcessPaymentEvent: invalid signature for data.id=%s", req.DataID)
		return nil, ErrUnauthorized
	}

	// 2. Уведомление без ID платежа обработать нечем
	if req.DataID == "" {
		uc.logger.Info("ProcessPaymentEvent: notification without payment id, ignoring")
		return &Response{Outcome: OutcomeIgnored}, nil
	}

	// 3. Запрашиваем платеж у шлюза: статусу из уведомления не доверяем
	payment, err := uc.gateway.GetPayment(ctx, req.DataID)
	if err != nil {
		if errors.Is(err, mercadopago.ErrPaymentNotFound) {
			uc.logger.Warn("ProcessPaymentEvent: payment %s not found in gateway", req.DataID)
			return &Response{Outcome: OutcomeIgnored}, nil
		}
		uc.logger.Error("ProcessPaymentEvent: failed to get payment %s: %v", req.DataID, err)
		return &Response{Outcome: OutcomeFailed}, nil
	}

	// 4. Платеж не привязан к нашей брони
	if payment.ExternalReference == "" {
		uc.logger.Warn("ProcessPaymentEvent: payment %s has no external reference", req.DataID)
		return &Response{Outcome: OutcomeIgnored}, nil
	}

	// 5. Подтверждаем только одобренные платежи
	if payment.Status != mercadopago.PaymentStatusApproved {
		uc.logger.Info("ProcessPaymentEvent: payment %s status=%s, no action", req.DataID, payment.Status)
		return &Response{Outcome: OutcomeNotApproved}, nil
	}

	// 6. Разбираем external_reference: ID брони или UUID группы
	if bookingID, err := strconv.ParseInt(payment.ExternalReference, 10, 64); err == nil {
		return uc.confirmSingle(ctx, bookingID, payment)
	}

	if _, err := uuid.Parse(payment.ExternalReference); err == nil {
		return uc.confirmGroup(ctx, payment.ExternalReference, payment)
	}

	uc.logger.Warn("ProcessPaymentEvent: unresolvable external reference %q for payment %s",
		payment.ExternalReference, req.DataID)
	return &Response{Outcome: OutcomeIgnored}, nil
}

// confirmSingle подтверждает одиночную бронь по платежу
func (uc *UseCase) confirmSingle(ctx context.Context, bookingID int64, payment *mercadopago.Payment) (*Response, error) {
	paymentRef := strconv.FormatInt(payment.ID, 10)

	err := uc.ledger.Confirm(ctx, bookingID, paymentRef, payment.TransactionAmount)
	if err != nil {
		return uc.confirmFailure(fmt.Sprintf("booking id=%d", bookingID), paymentRef, err), nil
	}

	uc.logger.Info("ProcessPaymentEvent: booking id=%d confirmed by payment %s", bookingID, paymentRef)

	uc.notifyConfirmed(ctx, bookingID)

	return &Response{Outcome: OutcomeConfirmed, BookingID: ptr.Ptr(bookingID)}, nil
}

// confirmGroup подтверждает серию сеансов по платежу
func (uc *UseCase) confirmGroup(ctx context.Context, groupID string, payment *mercadopago.Payment) (*Response, error) {
	paymentRef := strconv.FormatInt(payment.ID, 10)

	err := uc.ledger.ConfirmGroup(ctx, groupID, paymentRef, payment.TransactionAmount)
	if err != nil {
		return uc.confirmFailure(fmt.Sprintf("group %s", groupID), paymentRef, err), nil
	}

	uc.logger.Info("ProcessPaymentEvent: group %s confirmed by payment %s", groupID, paymentRef)

	if group, err := uc.ledger.GetGroup(ctx, groupID); err == nil && len(group.Bookings) > 0 {
		first := group.Bookings[0]
		uc.notifier.SendAsync(first.ClientPhone, fmt.Sprintf(
			"Оплата получена! Серия из %d сеансов подтверждена, первый - %s %s.",
			group.Total, first.BookingDate.Format(domain.DateFormat), first.StartTime,
		))
	}

	return &Response{Outcome: OutcomeConfirmed, GroupID: ptr.Ptr(groupID)}, nil
}

// confirmFailure классифицирует ошибку подтверждения.
// Оплата за бронь, которую подтвердить нельзя, - несогласованность:
// деньги взяты, слот не удержан. Логируем громко, уведомление подтверждаем.
func (uc *UseCase) confirmFailure(target, paymentRef string, err error) *Response {
	switch {
	case errors.Is(err, bookingsService.ErrPaymentRefMismatch):
		uc.logger.Error("ProcessPaymentEvent: INCONSISTENCY - %s already confirmed with a different payment, incoming ref=%s: %v",
			target, paymentRef, err)
		return &Response{Outcome: OutcomeInconsistent}

	case errors.Is(err, bookingsService.ErrNotPending):
		uc.logger.Error("ProcessPaymentEvent: INCONSISTENCY - payment ref=%s received for %s that is no longer awaiting payment: %v",
			paymentRef, target, err)
		return &Response{Outcome: OutcomeInconsistent}

	case errors.Is(err, bookingsService.ErrBookingNotFound), errors.Is(err, bookingsService.ErrGroupNotFound):
		uc.logger.Warn("ProcessPaymentEvent: %s not found for payment ref=%s", target, paymentRef)
		return &Response{Outcome: OutcomeIgnored}

	default:
		uc.logger.Error("ProcessPaymentEvent: failed to confirm %s by payment ref=%s: %v", target, paymentRef, err)
		return &Response{Outcome: OutcomeFailed}
	}
}

// notifyConfirmed уведомляет клиента о подтвержденной брони (fire-and-forget)
func (uc *UseCase) notifyConfirmed(ctx context.Context, bookingID int64) {
	booking, err := uc.ledger.GetByID(ctx, bookingID)
	if err != nil {
		uc.logger.Warn("ProcessPaymentEvent: failed to load booking id=%d for notification: %v", bookingID, err)
		return
	}

	uc.notifier.SendAsync(booking.ClientPhone, fmt.Sprintf(
		"Оплата получена! Запись подтверждена: %s, %s %s.",
		booking.ServiceName, booking.BookingDate.Format(domain.DateFormat), booking.StartTime,
	))
}
