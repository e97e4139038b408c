package billing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"agritrust/models"

	"github.com/google/uuid"
)

// Published test card numbers accepted by the verification endpoint.
// No card network is contacted; anything outside this list is rejected.
var testCards = map[string]string{
	"4242424242424242": "visa",
	"4000056655665556": "visa",
	"5555555555554444": "mastercard",
	"5200828282828210": "mastercard",
	"2223003122003222": "mastercard",
	"378282246310005":  "amex",
	"371449635398431":  "amex",
	"6011111111111117": "discover",
	"6011000990139424": "discover",
	"3056930009020004": "diners",
	"3566002020360505": "jcb",
}

var (
	emailShape  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	expiryShape = regexp.MustCompile(`^(0[1-9]|1[0-2])\s*/\s*(\d{2}|\d{4})$`)
)

// VerificationError is a client-correctable verification failure.
type VerificationError struct {
	Message string
}

func (e VerificationError) Error() string { return e.Message }

// Service validates card details against the test-card allowlist and mints
// synthetic payment identifiers.
type Service struct{}

// Verify checks the card number against the allowlist, the expiry against the
// current month/year, and the CVC/email shapes. An allowlist miss fails
// regardless of the other fields.
func (s *Service) Verify(req models.BillingVerificationRequest) (*models.BillingVerificationResult, error) {
	number := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(req.CardNumber))
	brand, ok := testCards[number]
	if !ok {
		return nil, VerificationError{Message: "card number could not be verified"}
	}

	if err := checkExpiry(req.CardExpiry); err != nil {
		return nil, err
	}

	cvc := strings.TrimSpace(req.CardCVC)
	wantLen := 3
	if brand == "amex" {
		wantLen = 4
	}
	if len(cvc) != wantLen || !isDigits(cvc) {
		return nil, VerificationError{Message: "invalid CVC"}
	}

	if !emailShape.MatchString(strings.TrimSpace(req.CardEmail)) {
		return nil, VerificationError{Message: "invalid billing email"}
	}

	return &models.BillingVerificationResult{
		CustomerID:      "cus_" + uuid.New().String(),
		PaymentMethodID: "pm_" + uuid.New().String(),
		Brand:           brand,
		Last4:           number[len(number)-4:],
	}, nil
}

// checkExpiry accepts MM/YY or MM/YYYY and rejects past months.
func checkExpiry(expiry string) error {
	m := expiryShape.FindStringSubmatch(strings.TrimSpace(expiry))
	if m == nil {
		return VerificationError{Message: "invalid expiry format"}
	}

	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if year < 100 {
		year += 2000
	}

	now := time.Now()
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return VerificationError{Message: fmt.Sprintf("card expired %02d/%d", month, year)}
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
