package refdata

// Color is a vehicle body color
type Color struct {
	Audit
	Color       string `json:"color" validate:"required,max=50"`
	Description string `json:"description" validate:"max=255"`
}

// Maker is a vehicle manufacturer
type Maker struct {
	Audit
	MakerName   string `json:"maker_name" validate:"required,max=100"`
	CountryCode string `json:"country_code" validate:"omitempty,max=3"`
	Description string `json:"description" validate:"max=255"`
}

// Country is an origin or destination country
type Country struct {
	Audit
	CountryCode string `json:"country_code" validate:"required,min=2,max=3"`
	CountryName string `json:"country_name" validate:"required,max=100"`
}

// Counterparty types
const (
	CounterpartyCustomer = "customer"
	CounterpartySupplier = "supplier"
	CounterpartyBoth     = "both"
)

// Counterparty is a customer or supplier a company trades with
type Counterparty struct {
	Audit
	Name    string `json:"name" validate:"required,max=150"`
	Type    string `json:"type" validate:"required,oneof=customer supplier both"`
	Phone   string `json:"phone" validate:"max=50"`
	Email   string `json:"email" validate:"omitempty,email,max=254"`
	Address string `json:"address" validate:"max=500"`
	Notes   string `json:"notes" validate:"max=1000"`
}

// Account types for the chart of accounts
const (
	AccountAsset     = "asset"
	AccountLiability = "liability"
	AccountEquity    = "equity"
	AccountIncome    = "income"
	AccountExpense   = "expense"
)

// Account is an entry in a company's chart of accounts
type Account struct {
	Audit
	AccountCode string `json:"account_code" validate:"required,max=20"`
	AccountName string `json:"account_name" validate:"required,max=150"`
	AccountType string `json:"account_type" validate:"required,oneof=asset liability equity income expense"`
	Description string `json:"description" validate:"max=255"`
}

// Location is a yard, branch or port where vehicles are kept
type Location struct {
	Audit
	LocationName string `json:"location_name" validate:"required,max=100"`
	Address      string `json:"address" validate:"max=500"`
	Description  string `json:"description" validate:"max=255"`
}

// VehicleType is a body classification such as SEDAN or TRUCK
type VehicleType struct {
	Audit
	VehicleType string `json:"vehicle_type" validate:"required,max=50"`
	Description string `json:"description" validate:"max=255"`
}
