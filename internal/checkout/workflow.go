// Package checkout drives the multi-step checkout:
// idle → shipping → payment → confirmation → complete.
package checkout

import (
	"time"

	"github.com/shoptodo/shoptodo-backend/internal/cart"
	"github.com/shoptodo/shoptodo-backend/internal/orders"
	pkgcheckout "github.com/shoptodo/shoptodo-backend/pkg/checkout"
	"github.com/shoptodo/shoptodo-backend/pkg/enums"
	pkgerrors "github.com/shoptodo/shoptodo-backend/pkg/errors"
	"github.com/shoptodo/shoptodo-backend/pkg/types"
)

// ErrEmptyCart is returned by Begin and Confirm when there is nothing to buy.
var ErrEmptyCart = pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")

// State is a read-only view of the workflow.
type State struct {
	Step          enums.CheckoutStep  `json:"step"`
	ShippingInfo  types.ShippingInfo  `json:"shippingInfo"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod,omitempty"`
	// LastOrderID is set once the workflow reaches complete.
	LastOrderID int64 `json:"lastOrderId,omitempty"`
}

type Workflow struct {
	step      enums.CheckoutStep
	shipping  types.ShippingInfo
	payment   enums.PaymentMethod
	lastOrder int64
}

func New() *Workflow {
	return &Workflow{step: enums.CheckoutStepIdle}
}

func (w *Workflow) Step() enums.CheckoutStep {
	return w.step
}

func (w *Workflow) State() State {
	return State{
		Step:          w.step,
		ShippingInfo:  w.shipping,
		PaymentMethod: w.payment,
		LastOrderID:   w.lastOrder,
	}
}

// Begin opens checkout for a non-empty cart and discards any stale form data.
func (w *Workflow) Begin(c *cart.Cart) error {
	if err := w.expect("begin", enums.CheckoutStepIdle); err != nil {
		return err
	}
	if c == nil || c.IsEmpty() {
		return ErrEmptyCart
	}
	w.reset()
	w.step = enums.CheckoutStepShipping
	return nil
}

// SubmitShipping validates info and advances to payment. On failure the step
// and previously stored data are unchanged.
func (w *Workflow) SubmitShipping(info types.ShippingInfo) error {
	if err := w.expect("submit shipping", enums.CheckoutStepShipping); err != nil {
		return err
	}
	trimmed, err := pkgcheckout.ValidateShipping(info)
	if err != nil {
		return err
	}
	w.shipping = trimmed
	w.step = enums.CheckoutStepPayment
	return nil
}

// SelectPayment records method and advances to confirmation.
func (w *Workflow) SelectPayment(method enums.PaymentMethod) error {
	if err := w.expect("select payment", enums.CheckoutStepPayment); err != nil {
		return err
	}
	if err := pkgcheckout.ValidatePaymentMethod(method); err != nil {
		return err
	}
	w.payment = method
	w.step = enums.CheckoutStepConfirmation
	return nil
}

// Back steps from payment to shipping or from confirmation to payment,
// keeping everything entered so far.
func (w *Workflow) Back() error {
	switch w.step {
	case enums.CheckoutStepPayment:
		w.step = enums.CheckoutStepShipping
	case enums.CheckoutStepConfirmation:
		w.step = enums.CheckoutStepPayment
	default:
		return w.conflict("back", enums.CheckoutStepPayment, enums.CheckoutStepConfirmation)
	}
	return nil
}

// Confirm snapshots c into a completed order and moves to complete. The cart
// is not modified; the caller records the order and clears the cart.
func (w *Workflow) Confirm(c *cart.Cart, id int64, now time.Time) (orders.Order, error) {
	if err := w.expect("confirm", enums.CheckoutStepConfirmation); err != nil {
		return orders.Order{}, err
	}
	if c == nil || c.IsEmpty() {
		return orders.Order{}, ErrEmptyCart
	}
	order := orders.Order{
		ID:            id,
		Date:          now,
		Items:         c.Lines(),
		Total:         c.Total(),
		ShippingInfo:  w.shipping,
		PaymentMethod: w.payment,
		Status:        enums.OrderStatusCompleted,
	}
	w.lastOrder = id
	w.step = enums.CheckoutStepComplete
	return order, nil
}

// Close returns to idle from any step and discards the form data.
func (w *Workflow) Close() {
	w.reset()
	w.step = enums.CheckoutStepIdle
}

func (w *Workflow) reset() {
	w.shipping = types.ShippingInfo{}
	w.payment = ""
	w.lastOrder = 0
}

func (w *Workflow) expect(action string, step enums.CheckoutStep) error {
	if w.step == step {
		return nil
	}
	return w.conflict(action, step)
}

func (w *Workflow) conflict(action string, allowed ...enums.CheckoutStep) error {
	return pkgerrors.Newf(pkgerrors.CodeStateConflict, "cannot %s during %s step", action, w.step).
		WithDetails(map[string]any{
			"step":    w.step,
			"allowed": allowed,
		})
}
