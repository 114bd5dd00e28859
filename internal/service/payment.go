package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/backend"
	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/internal/nav"
	"github.com/realahmed45/future-bali-frontend/pkg/errors"
)

const (
	paymentMethod = "PayPal"

	msgPaymentOrderIDMissing = "Order ID is missing. Please try again."
	msgOrderLoadFailed       = "Could not load order data. Please try again."
	msgPaymentFailed         = "Payment processing failed. Please try again."
	msgEmailFailed           = "Payment successful! Email sending failed, but you can download your contract below."
	paymentSucceededMessage  = "Payment successful! A confirmation email has been sent with your contract download link."
	defaultCustomerName      = "Customer"
)

// PaymentView fetches the order so totals come from the backend rather than the draft.
// A failed fetch still renders with the draft's own total.
func (s *checkoutService) PaymentView(ctx context.Context, state *domain.OrderDraft) (PaymentView, error) {
	draft := carried(state).WithDefaults(domain.DefaultCartPackage())
	if draft.OrderID == "" {
		return PaymentView{}, &errors.ErrPrecondition{Message: msgPaymentOrderIDMissing}
	}

	view := PaymentView{State: draft, DepositAmount: domain.DepositAmount}
	order, err := s.backend.GetOrder(ctx, draft.OrderID)
	if err != nil {
		s.logger.Warn("Failed to fetch order for payment", zap.String("order_id", draft.OrderID), zap.Error(err))
	} else {
		view.Order = order
	}
	view.FullAmount = fullAmount(order, draft)
	view.FullAmountFormatted = formatAmount(view.FullAmount)
	view.DepositAmountFormatted = formatAmount(view.DepositAmount)
	return view, nil
}

func fullAmount(order *domain.Order, draft domain.OrderDraft) float64 {
	if order != nil && order.TotalAmount != 0 {
		return order.TotalAmount
	}
	return draft.TotalCost()
}

// Pay records a simulated payment, generates the contract and emails the customer a download link.
// Email delivery failure does not fail the payment.
func (s *checkoutService) Pay(ctx context.Context, state *domain.OrderDraft, paymentType domain.PaymentType) (*PaymentReceipt, error) {
	draft := carried(state).WithDefaults(domain.DefaultCartPackage())
	if !paymentType.IsValid() {
		msg := "Unknown payment type"
		return nil, &errors.ErrValidation{Message: msg, Fields: map[string]string{"paymentType": msg}}
	}
	if draft.OrderID == "" {
		return nil, &errors.ErrPrecondition{Message: msgPaymentOrderIDMissing}
	}

	order, err := s.backend.GetOrder(ctx, draft.OrderID)
	if err != nil {
		s.logger.Warn("Failed to load order before payment", zap.String("order_id", draft.OrderID), zap.Error(err))
		return nil, &errors.ErrUpstream{Message: msgOrderLoadFailed, Err: err}
	}

	amount := float64(domain.DepositAmount)
	if paymentType == domain.PaymentTypeFull {
		amount = fullAmount(order, draft)
	}
	now := s.now()
	payment := domain.PaymentDetails{
		TransactionID: transactionID(now),
		AmountPaid:    amount,
		PaymentType:   paymentType,
		PaymentMethod: paymentMethod,
		PaymentDate:   now.UTC().Format(time.RFC3339Nano),
	}

	if err := s.backend.GenerateContract(ctx, draft.OrderID, payment, backend.WithTimeout(s.timeouts.ContractTimeout)); err != nil {
		s.recordEvent(ctx, draft, "payment_failed", map[string]interface{}{"transaction_id": payment.TransactionID, "error": err.Error()})
		s.logger.Error("Contract generation failed", zap.String("order_id", draft.OrderID), zap.Error(err))
		return nil, &errors.ErrUpstream{Message: msgPaymentFailed, Err: err}
	}

	receipt := &PaymentReceipt{
		OrderID:     draft.OrderID,
		Payment:     payment,
		DownloadURL: s.backend.ContractDownloadURL(draft.OrderID),
		Order:       order,
	}

	if err := s.mailer.Send(ctx, s.confirm, s.confirmationParams(order, receipt)); err != nil {
		s.logger.Warn("Confirmation email failed", zap.String("order_id", draft.OrderID), zap.Error(err))
		s.notifier.Warn(msgEmailFailed)
	} else {
		receipt.EmailSent = true
		s.notifier.Success(paymentSucceededMessage)
	}

	s.logger.Info("Payment recorded",
		zap.String("order_id", draft.OrderID),
		zap.String("transaction_id", payment.TransactionID),
		zap.String("payment_type", string(paymentType)))
	s.checkpoint(ctx, domain.StepPayment, draft)
	s.recordEvent(ctx, draft, "payment_recorded", map[string]interface{}{
		"transaction_id": payment.TransactionID,
		"amount_paid":    payment.AmountPaid,
		"payment_type":   string(paymentType),
		"email_sent":     receipt.EmailSent,
	})
	return receipt, nil
}

func (s *checkoutService) confirmationParams(order *domain.Order, receipt *PaymentReceipt) map[string]string {
	email, name := order.UserEmail, defaultCustomerName
	if len(order.UserInfo) > 0 {
		if order.UserInfo[0].Email != "" {
			email = order.UserInfo[0].Email
		}
		if order.UserInfo[0].Name != "" {
			name = order.UserInfo[0].Name
		}
	}
	var title string
	if order.BasePackage != nil {
		title = order.BasePackage.Title
	}
	return map[string]string{
		"to_email":       email,
		"to_name":        name,
		"order_id":       receipt.OrderID,
		"total_amount":   strconv.FormatFloat(order.TotalAmount, 'f', -1, 64),
		"transaction_id": receipt.Payment.TransactionID,
		"package_title":  title,
		"download_link":  receipt.DownloadURL,
		"from_name":      s.fromName,
	}
}

// ClosePayment leaves the success modal for the home page
func (s *checkoutService) ClosePayment(receipt PaymentReceipt) CloseResult {
	payment := receipt.Payment
	return CloseResult{
		Redirect: nav.HomePath,
		State: HomeState{
			PaymentInfo: &payment,
			OrderData:   receipt.Order,
			OrderID:     receipt.OrderID,
		},
	}
}
