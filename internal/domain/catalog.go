package domain

// Package is a purchasable base package with its add-on offers
type Package struct {
	Slug   string      `json:"slug"`
	Base   BasePackage `json:"basePackage"`
	Offers []AddOn     `json:"offers"`
}

const Package1Slug = "package1"

// DepositAmount is the fixed amount charged for a deposit payment
const DepositAmount = 2000

var package1Offers = []AddOn{
	{Room: "Bedroom", Size: "38 m²", Price: 2000},
	{Room: "Bathroom", Size: "20 m²", Price: 2000},
	{Room: "Kitchen", Size: "20 m²", Price: 2000},
	{Room: "Storage", Size: "38 m²", Price: 2000},
	{Room: "Garden", Size: "38 m²", Price: 2000},
}

// Package1 is the furnished one-bedroom house shown on the package page
func Package1() Package {
	return Package{
		Slug: Package1Slug,
		Base: BasePackage{
			Title:    "Furnished 1 bedroom house",
			Price:    25000,
			Duration: "4-6 months",
			Details: []PackageDetail{
				{Label: "Bedroom", Size: "18-20 m²"},
				{Label: "Bathroom", Size: "9-14 m²"},
				{Label: "Kitchen", Size: "12-14 m²"},
				{Label: "Garden", Size: "121 m²"},
			},
		},
		Offers: append([]AddOn(nil), package1Offers...),
	}
}

// DefaultCartPackage is substituted by later steps when the carrier has no base package
func DefaultCartPackage() BasePackage {
	return BasePackage{
		Title:    "Furnished 1 bedroom house",
		Price:    25000,
		Duration: "4-6 months",
		Details: []PackageDetail{
			{Label: "Bedroom", Size: "18-20 m²"},
			{Label: "Bathroom", Size: "9-14 m²"},
			{Label: "Kitchen", Size: "12-14 m²"},
			{Label: "Storage", Size: "5 m²"},
			{Label: "Garden", Size: "121 m²"},
		},
	}
}

// FindOffer looks up an add-on offer by room
func (p Package) FindOffer(room string) (AddOn, bool) {
	for _, o := range p.Offers {
		if o.Room == room {
			return o, true
		}
	}
	return AddOn{}, false
}
