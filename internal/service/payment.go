package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/cosmo-events/internal/model"
	"github.com/google/uuid"
)

// ReferenceCode is the voucher code shown to users for paid events.
func (p *Platform) ReferenceCode() string {
	return p.referenceCode
}

// ConfirmPayment marks the session user's enrollment as paid when code matches
// the event reference code or the universal override code. Codes are compared
// trimmed and upper-cased.
func (p *Platform) ConfirmPayment(ctx context.Context, eventID int, code string) (model.PaymentReceipt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return model.PaymentReceipt{}, ErrNotLoggedIn
	}
	ev := p.findEvent(eventID)
	if ev == nil {
		return model.PaymentReceipt{}, ErrEventNotFound
	}
	if p.current.FindEnrollment(eventID) == nil {
		return model.PaymentReceipt{}, ErrNotEnrolled
	}
	if !ev.RequiresPayment() {
		return model.PaymentReceipt{}, ErrPaymentNotRequired
	}

	normalized := normalizeCode(code)
	if normalized == "" || (normalized != p.referenceCode && normalized != p.overrideCode) {
		return model.PaymentReceipt{}, ErrInvalidVoucher
	}

	updated := p.current.Clone()
	updated.MarkPaid(eventID)
	if err := p.commitUser(ctx, updated); err != nil {
		return model.PaymentReceipt{}, fmt.Errorf("confirm payment: %w", err)
	}

	receipt := model.PaymentReceipt{
		ID:      p.newReceiptID(),
		EventID: eventID,
		UserID:  updated.ID(),
		PaidAt:  p.now(),
	}
	p.logger.Printf("payment user_id=%d event_id=%d receipt=%s", receipt.UserID, eventID, receipt.ID)
	return receipt, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func newReceiptID() string {
	return uuid.New().String()
}
