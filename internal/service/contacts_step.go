package service

import (
	"context"

	"github.com/realahmed45/future-bali-frontend/internal/backend"
	"github.com/realahmed45/future-bali-frontend/internal/domain"
	"github.com/realahmed45/future-bali-frontend/internal/nav"
	"github.com/realahmed45/future-bali-frontend/internal/validate"
	"github.com/realahmed45/future-bali-frontend/pkg/errors"
)

const (
	msgInheritanceSaveFailed = "Failed to save inheritance details. Please try again."
	msgEmergencySaveFailed   = "Failed to save emergency contacts. Please try again."
	msgTooFewContacts        = "At least 2 contacts are required"
	inheritanceSavedMessage  = "Inheritance details saved."
	emergencySavedMessage    = "Emergency contacts saved."
)

// ContactsForm returns the contact list to render: the carried one, or two blank contacts
func ContactsForm(state *domain.OrderDraft, existing func(domain.OrderDraft) []domain.Contact) ContactsView {
	draft := carried(state)
	contacts := domain.ContactList(existing(draft))
	if len(contacts) < domain.MinContacts {
		contacts = domain.NewContactList(domain.MinContacts)
	}
	return ContactsView{Contacts: contacts, State: draft}
}

// InheritanceContacts selects the inheritance list of a draft
func InheritanceContacts(d domain.OrderDraft) []domain.Contact { return d.InheritanceContacts }

// EmergencyContacts selects the emergency list of a draft
func EmergencyContacts(d domain.OrderDraft) []domain.Contact { return d.EmergencyContacts }

// validateContacts checks every contact, keying errors by "<contact id>-<field>".
// A skipped form is always valid.
func validateContacts(contacts []ContactInput, skip bool) validate.FieldErrors {
	errs := validate.FieldErrors{}
	if skip {
		return errs
	}
	if len(contacts) < domain.MinContacts {
		errs["contacts"] = msgTooFewContacts
	}
	for _, c := range contacts {
		errs.Merge(validate.Struct(c.Contact).Prefixed(c.Contact.ID))
		if c.IDImage != nil {
			if msg := c.IDImage.problem(); msg != "" {
				errs[fieldKey(c.Contact.ID, "idImage")] = msg
			}
		}
	}
	return errs
}

// SaveInheritance saves the inheritance contacts unless skipped and moves to emergency contacts
func (s *checkoutService) SaveInheritance(ctx context.Context, state *domain.OrderDraft, contacts []domain.Contact, skip bool) (*StepResult, error) {
	draft := carried(state)
	contacts = domain.ContactList(contacts).WithIDs()
	inputs := make([]ContactInput, len(contacts))
	for i, c := range contacts {
		inputs[i] = ContactInput{Contact: c}
	}
	if errs := validateContacts(inputs, skip); len(errs) > 0 {
		return nil, &errors.ErrValidation{Message: msgRequiredFields, Fields: errs}
	}
	if err := requireOrderID(draft); err != nil {
		return nil, err
	}
	if err := s.requireSession(nav.InheritancePath, draft); err != nil {
		return nil, err
	}

	if skip {
		draft.InheritanceContacts = []domain.Contact{}
		return s.advance(ctx, domain.StepInheritance, nav.InheritancePath, draft)
	}

	if err := s.backend.SaveInheritance(ctx, draft.OrderID, contacts, backend.WithTimeout(s.timeouts.FormTimeout)); err != nil {
		return nil, s.stepFailed(ctx, domain.StepInheritance, nav.InheritancePath, draft, err, msgInheritanceSaveFailed)
	}

	draft.InheritanceContacts = append([]domain.Contact{}, contacts...)
	s.notifier.Success(inheritanceSavedMessage)
	return s.advance(ctx, domain.StepInheritance, nav.InheritancePath, draft)
}

// SaveEmergency uploads id images, saves the emergency contacts unless skipped and moves to billing.
// A failed upload leaves that image empty and does not stop the step.
func (s *checkoutService) SaveEmergency(ctx context.Context, state *domain.OrderDraft, contacts []ContactInput, skip bool) (*StepResult, error) {
	draft := carried(state)
	contacts = withContactIDs(contacts)
	if errs := validateContacts(contacts, skip); len(errs) > 0 {
		return nil, &errors.ErrValidation{Message: msgRequiredFields, Fields: errs}
	}
	if err := requireOrderID(draft); err != nil {
		return nil, err
	}
	if err := s.requireSession(nav.EmergencyPath, draft); err != nil {
		return nil, err
	}

	if skip {
		draft.EmergencyContacts = []domain.Contact{}
		return s.advance(ctx, domain.StepEmergency, nav.EmergencyPath, draft)
	}

	docs := make([]*Document, len(contacts))
	for i, c := range contacts {
		docs[i] = c.IDImage
	}
	uploaded := s.uploadAll(ctx, docs)

	saved := make([]domain.Contact, len(contacts))
	for i, c := range contacts {
		saved[i] = c.Contact
		if c.IDImage != nil {
			saved[i].IDImage = uploaded[i]
		}
	}

	if err := s.backend.SaveEmergency(ctx, draft.OrderID, saved, backend.WithTimeout(s.timeouts.FormTimeout)); err != nil {
		return nil, s.stepFailed(ctx, domain.StepEmergency, nav.EmergencyPath, draft, err, msgEmergencySaveFailed)
	}

	draft.EmergencyContacts = saved
	s.notifier.Success(emergencySavedMessage)
	return s.advance(ctx, domain.StepEmergency, nav.EmergencyPath, draft)
}

func withContactIDs(inputs []ContactInput) []ContactInput {
	list := make(domain.ContactList, len(inputs))
	for i, in := range inputs {
		list[i] = in.Contact
	}
	list = list.WithIDs()
	out := make([]ContactInput, len(inputs))
	for i, in := range inputs {
		out[i] = ContactInput{Contact: list[i], IDImage: in.IDImage}
	}
	return out
}
