package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	for _, raw := range []string{"credit_card", "bank_transfer", "cash_on_delivery"} {
		got, err := ParsePaymentMethod(raw)
		require.NoError(t, err)
		assert.True(t, got.IsValid())
		assert.Equal(t, raw, got.String())
	}
	_, err := ParsePaymentMethod("bitcoin")
	require.Error(t, err)
	assert.False(t, PaymentMethod("").IsValid())
}

func TestParseCategory(t *testing.T) {
	got, err := ParseCategory(" Books ")
	require.NoError(t, err)
	assert.Equal(t, CategoryBooks, got)

	_, err = ParseCategory("")
	require.Error(t, err)
	assert.Len(t, Categories(), 4)
}

func TestCheckoutStepsAndOrderStatus(t *testing.T) {
	step, err := ParseCheckoutStep("confirmation")
	require.NoError(t, err)
	assert.Equal(t, CheckoutStepConfirmation, step)
	_, err = ParseCheckoutStep("done")
	require.Error(t, err)

	status, err := ParseOrderStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusCompleted, status)
	assert.False(t, OrderStatus("cancelled").IsValid())
}

func TestParseLanguage(t *testing.T) {
	cases := map[string]Language{"ja": LanguageJapanese, "en": LanguageEnglish, "en-US": LanguageEnglish, "ja-JP": LanguageJapanese}
	for raw, want := range cases {
		got, err := ParseLanguage(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseLanguage("fr")
	require.Error(t, err)
	_, err = ParseLanguage("")
	require.Error(t, err)
}

func TestMatchLanguage(t *testing.T) {
	assert.Equal(t, LanguageEnglish, MatchLanguage("en-GB,en;q=0.9"))
	assert.Equal(t, LanguageJapanese, MatchLanguage("ja,en;q=0.5"))
	assert.Equal(t, DefaultLanguage, MatchLanguage(""))
}

func TestParseSortKey(t *testing.T) {
	got, err := ParseSortKey("price-high")
	require.NoError(t, err)
	assert.Equal(t, SortKeyPriceHigh, got)

	got, err = ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortKeyNone, got)
	assert.True(t, got.IsValid())

	_, err = ParseSortKey("rating")
	require.Error(t, err)
}
