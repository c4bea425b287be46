package checkout

import (
	"testing"
	"time"

	"github.com/shoptodo/shoptodo-backend/internal/cart"
	"github.com/shoptodo/shoptodo-backend/internal/catalog"
	"github.com/shoptodo/shoptodo-backend/pkg/enums"
	pkgerrors "github.com/shoptodo/shoptodo-backend/pkg/errors"
	"github.com/shoptodo/shoptodo-backend/pkg/types"
	"github.com/stretchr/testify/require"
)

func filledCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New(nil)
	cat := catalog.Default()
	for _, id := range []int{1, 2} {
		p, ok := cat.Get(id)
		require.True(t, ok)
		c.Add(p)
	}
	return c
}

func shipping() types.ShippingInfo {
	return types.ShippingInfo{
		Name:       "山田太郎",
		Email:      "taro@example.com",
		Phone:      "090-1234-5678",
		PostalCode: "100-0001",
		Address:    "東京都千代田区1-1",
	}
}

func advanceToConfirmation(t *testing.T, w *Workflow, c *cart.Cart) {
	t.Helper()
	require.NoError(t, w.Begin(c))
	require.NoError(t, w.SubmitShipping(shipping()))
	require.NoError(t, w.SelectPayment(enums.PaymentMethodCreditCard))
	require.Equal(t, enums.CheckoutStepConfirmation, w.Step())
}

func TestHappyPath(t *testing.T) {
	c := filledCart(t)
	w := New()
	advanceToConfirmation(t, w, c)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	order, err := w.Confirm(c, 42, now)
	require.NoError(t, err)
	require.Equal(t, enums.CheckoutStepComplete, w.Step())
	require.Equal(t, int64(42), order.ID)
	require.Equal(t, now, order.Date)
	require.Len(t, order.Items, 2)
	require.Equal(t, int64(89800+12800), order.Total)
	require.Equal(t, enums.OrderStatusCompleted, order.Status)
	require.Equal(t, enums.PaymentMethodCreditCard, order.PaymentMethod)
	require.Equal(t, shipping(), order.ShippingInfo)
	require.Equal(t, int64(42), w.State().LastOrderID)

	w.Close()
	require.Equal(t, enums.CheckoutStepIdle, w.Step())
	require.True(t, w.State().ShippingInfo.IsZero())
}

func TestBeginOnEmptyCartIsRejected(t *testing.T) {
	w := New()
	err := w.Begin(cart.New(nil))
	require.ErrorIs(t, err, ErrEmptyCart)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))
	require.Equal(t, enums.CheckoutStepIdle, w.Step())

	require.ErrorIs(t, w.Begin(nil), ErrEmptyCart)
}

func TestBeginClearsStaleData(t *testing.T) {
	c := filledCart(t)
	w := New()
	require.NoError(t, w.Begin(c))
	require.NoError(t, w.SubmitShipping(shipping()))
	w.Close()

	require.NoError(t, w.Begin(c))
	require.True(t, w.State().ShippingInfo.IsZero())
	require.Empty(t, w.State().PaymentMethod)
}

func TestInvalidShippingKeepsState(t *testing.T) {
	w := New()
	require.NoError(t, w.Begin(filledCart(t)))

	bad := shipping()
	bad.Email = "not-an-email"
	err := w.SubmitShipping(bad)
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	require.Equal(t, enums.CheckoutStepShipping, w.Step())
	require.True(t, w.State().ShippingInfo.IsZero())

	missing := shipping()
	missing.Address = "   "
	require.Error(t, w.SubmitShipping(missing))
	require.Equal(t, enums.CheckoutStepShipping, w.Step())
}

func TestInvalidPaymentKeepsState(t *testing.T) {
	w := New()
	require.NoError(t, w.Begin(filledCart(t)))
	require.NoError(t, w.SubmitShipping(shipping()))

	require.True(t, pkgerrors.HasCode(w.SelectPayment(""), pkgerrors.CodeValidation))
	require.True(t, pkgerrors.HasCode(w.SelectPayment("paypal"), pkgerrors.CodeValidation))
	require.Equal(t, enums.CheckoutStepPayment, w.Step())
}

func TestBackPreservesData(t *testing.T) {
	w := New()
	advanceToConfirmation(t, w, filledCart(t))

	require.NoError(t, w.Back())
	require.Equal(t, enums.CheckoutStepPayment, w.Step())
	require.Equal(t, enums.PaymentMethodCreditCard, w.State().PaymentMethod)

	require.NoError(t, w.Back())
	require.Equal(t, enums.CheckoutStepShipping, w.Step())
	require.Equal(t, shipping(), w.State().ShippingInfo)

	err := w.Back()
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))
	require.Equal(t, enums.CheckoutStepShipping, w.Step())
}

func TestWrongStepTransitionsConflict(t *testing.T) {
	c := filledCart(t)
	w := New()

	require.True(t, pkgerrors.HasCode(w.SubmitShipping(shipping()), pkgerrors.CodeStateConflict))
	require.True(t, pkgerrors.HasCode(w.SelectPayment(enums.PaymentMethodCashOnDelivery), pkgerrors.CodeStateConflict))
	_, err := w.Confirm(c, 1, time.Now())
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))

	require.NoError(t, w.Begin(c))
	require.True(t, pkgerrors.HasCode(w.Begin(c), pkgerrors.CodeStateConflict))

	typed := pkgerrors.As(w.Back())
	require.NotNil(t, typed)
	details := typed.Details().(map[string]any)
	require.Equal(t, enums.CheckoutStepShipping, details["step"])
}

func TestConfirmRequiresItems(t *testing.T) {
	c := filledCart(t)
	w := New()
	advanceToConfirmation(t, w, c)
	c.Clear()

	_, err := w.Confirm(c, 1, time.Now())
	require.ErrorIs(t, err, ErrEmptyCart)
	require.Equal(t, enums.CheckoutStepConfirmation, w.Step())
}

func TestOrderSnapshotIndependentOfCart(t *testing.T) {
	c := filledCart(t)
	w := New()
	advanceToConfirmation(t, w, c)
	order, err := w.Confirm(c, 7, time.Now())
	require.NoError(t, err)

	p, _ := catalog.Default().Get(3)
	c.Add(p)
	c.UpdateQuantity(1, 9)

	require.Len(t, order.Items, 2)
	require.Equal(t, 1, order.Items[0].Quantity)
	require.Equal(t, int64(89800+12800), order.Total)
}

func TestCloseFromAnyStep(t *testing.T) {
	for _, steps := range []int{0, 1, 2, 3} {
		w := New()
		c := filledCart(t)
		if steps >= 1 {
			require.NoError(t, w.Begin(c))
		}
		if steps >= 2 {
			require.NoError(t, w.SubmitShipping(shipping()))
		}
		if steps >= 3 {
			require.NoError(t, w.SelectPayment(enums.PaymentMethodBankTransfer))
		}
		w.Close()
		require.Equal(t, enums.CheckoutStepIdle, w.Step())
		require.Equal(t, State{Step: enums.CheckoutStepIdle}, w.State())
	}
}
