package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// NewDraft creates an empty draft for the given base package
func NewDraft(base BasePackage) OrderDraft {
	return OrderDraft{
		ID:             uuid.New(),
		BasePackage:    &base,
		SelectedAddOns: []AddOn{},
	}
}

// ToggleAddOn adds the add-on, or removes it if its room is already selected
func (d *OrderDraft) ToggleAddOn(addOn AddOn) {
	for i, a := range d.SelectedAddOns {
		if a.Room == addOn.Room {
			d.SelectedAddOns = append(d.SelectedAddOns[:i:i], d.SelectedAddOns[i+1:]...)
			return
		}
	}
	d.SelectedAddOns = append(d.SelectedAddOns, addOn)
}

// RemoveAddOnAt removes the add-on at index
func (d *OrderDraft) RemoveAddOnAt(index int) error {
	if index < 0 || index >= len(d.SelectedAddOns) {
		return fmt.Errorf("add-on index %d out of range", index)
	}
	d.SelectedAddOns = append(d.SelectedAddOns[:index:index], d.SelectedAddOns[index+1:]...)
	return nil
}

// AddOnTotal sums the selected add-on prices
func (d OrderDraft) AddOnTotal() float64 {
	var sum float64
	for _, a := range d.SelectedAddOns {
		sum += a.Price
	}
	return sum
}

// TotalCost is the base package price plus every selected add-on. Always recomputed.
func (d OrderDraft) TotalCost() float64 {
	var base float64
	if d.BasePackage != nil {
		base = d.BasePackage.Price
	}
	return base + d.AddOnTotal()
}

// WithDefaults fills the fragments a step needs to render when the carrier lacks them
func (d OrderDraft) WithDefaults(base BasePackage) OrderDraft {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.BasePackage == nil {
		b := base
		d.BasePackage = &b
	}
	if d.SelectedAddOns == nil {
		d.SelectedAddOns = []AddOn{}
	}
	return d
}

// Clone returns a deep copy so steps never share slices with their caller
func (d OrderDraft) Clone() OrderDraft {
	out := d
	if d.BasePackage != nil {
		b := *d.BasePackage
		b.Details = append([]PackageDetail(nil), d.BasePackage.Details...)
		out.BasePackage = &b
	}
	out.SelectedAddOns = append([]AddOn{}, d.SelectedAddOns...)
	if d.UserInfo != nil {
		out.UserInfo = append([]Person(nil), d.UserInfo...)
	}
	if d.PrimarySigner != nil {
		p := *d.PrimarySigner
		out.PrimarySigner = &p
	}
	if d.InheritanceContacts != nil {
		out.InheritanceContacts = append([]Contact(nil), d.InheritanceContacts...)
	}
	if d.EmergencyContacts != nil {
		out.EmergencyContacts = append([]Contact(nil), d.EmergencyContacts...)
	}
	if d.BillingDetails != nil {
		b := *d.BillingDetails
		out.BillingDetails = &b
	}
	return out
}
