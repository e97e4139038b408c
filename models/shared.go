package models

// Account roles used in tokens, upload folders and cache keys.
const (
	RoleFarmer = "farmer"
	RoleBuyer  = "buyer"
	RoleDriver = "deliverydriver"
)

// BillingVerificationRequest is the payload for the billing verification
// endpoint. No card network is contacted; verification runs against a fixed
// allowlist of published test card numbers.
type BillingVerificationRequest struct {
	CardNumber string `json:"cardnumber" binding:"required"`
	CardExpiry string `json:"cardexpiry" binding:"required"`
	CardCVC    string `json:"cardcvc" binding:"required"`
	CardEmail  string `json:"cardemail" binding:"required"`
}

// BillingVerificationResult carries the synthetic payment identifiers
// returned on a successful verification.
type BillingVerificationResult struct {
	CustomerID      string `json:"customerId"`
	PaymentMethodID string `json:"paymentMethodId"`
	Brand           string `json:"brand"`
	Last4           string `json:"last4"`
}
