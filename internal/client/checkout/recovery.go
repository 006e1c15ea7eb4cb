package checkout

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/storefront-client/internal/client/api"
)

// RestoreOrderData pre-fills the form from the recovery slot left by a
// previous submission attempt and consumes the slot. It returns false
// when there is nothing to restore; an unreadable draft is discarded
// rather than surfaced, since the user can always re-enter the form.
func (s *Submitter) RestoreOrderData(ctx context.Context, form *Form) (bool, error) {
	b, err := s.recovery.Get(ctx, KeyRestoreOrderData)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, nil
	}

	var draft api.OrderDraft
	if err := json.Unmarshal(b, &draft); err != nil {
		if s.log != nil {
			s.log.Warn(ctx, "discarding unreadable order draft", "error", err)
		}
		if derr := s.recovery.Delete(ctx, KeyRestoreOrderData); derr != nil {
			return false, derr
		}
		return false, nil
	}

	form.Phone = draft.Phone
	form.Email = draft.Email
	form.FirstName = draft.FirstName
	form.LastName = draft.LastName
	form.DeliveryType = draft.DeliveryType
	form.Country = draft.Country
	form.Region = draft.Region
	form.City = draft.City
	form.Street = draft.Street
	form.House = draft.House
	form.Apartment = draft.Apartment
	form.PaymentType = draft.PaymentType

	if err := s.recovery.Delete(ctx, KeyRestoreOrderData); err != nil {
		return true, err
	}
	return true, nil
}
