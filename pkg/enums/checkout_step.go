package enums

import "fmt"

// CheckoutStep is a state of the checkout workflow.
type CheckoutStep string

const (
	CheckoutStepIdle         CheckoutStep = "idle"
	CheckoutStepShipping     CheckoutStep = "shipping"
	CheckoutStepPayment      CheckoutStep = "payment"
	CheckoutStepConfirmation CheckoutStep = "confirmation"
	CheckoutStepComplete     CheckoutStep = "complete"
)

var validCheckoutSteps = []CheckoutStep{
	CheckoutStepIdle,
	CheckoutStepShipping,
	CheckoutStepPayment,
	CheckoutStepConfirmation,
	CheckoutStepComplete,
}

func (s CheckoutStep) String() string {
	return string(s)
}

func (s CheckoutStep) IsValid() bool {
	for _, candidate := range validCheckoutSteps {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseCheckoutStep(value string) (CheckoutStep, error) {
	for _, candidate := range validCheckoutSteps {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout step %q", value)
}
