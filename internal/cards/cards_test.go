// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cards

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/cachedash/internal/dashboard"
)

func plainFormatter(t *testing.T) *Formatter {
	t.Helper()
	f, err := NewFormatter("en-US", "UTC", false)
	require.NoError(t, err)
	f.Now = func() time.Time { return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) }
	return f
}

func ptr(s string) *string { return &s }

func TestDashboard_EmptyCacheData(t *testing.T) {
	r, err := dashboard.Decode([]byte(`{"session_id":"abc-123","found_in_date":"2024-01-01","cache_data":{}}`))
	require.NoError(t, err)

	f := plainFormatter(t)
	out := f.Dashboard(r)

	assert.Contains(t, out, "Session ID: abc-123")
	assert.Contains(t, out, "Found in Date: 2024-01-01")
	assert.Empty(t, f.Cards(r.CacheData))
	assert.NotContains(t, out, "Cached at:")
}

func TestRefund(t *testing.T) {
	out := plainFormatter(t).Refund(dashboard.Envelope[string]{
		Value:     "Refund issued",
		CachedAt:  "2024-01-01T00:00:00Z",
		ExpiresAt: "2024-01-08T00:00:00Z",
	})

	assert.Contains(t, out, "Refund Message")
	assert.Contains(t, out, "Refund issued")
	assert.Contains(t, out, "Cached at: 1/1/2024, 12:00:00 AM")
	assert.Contains(t, out, "Expires at: 1/8/2024, 12:00:00 AM")
	assert.Contains(t, out, "(expires 6 days from now)")
}

func TestFooter_InvalidDate(t *testing.T) {
	out := plainFormatter(t).Refund(dashboard.Envelope[string]{
		Value:     "x",
		CachedAt:  "not a date",
		ExpiresAt: "",
	})

	assert.Contains(t, out, "Cached at: Invalid Date")
	assert.Contains(t, out, "Expires at: Invalid Date")
	assert.NotContains(t, out, "expires ")
}

const budgetPayDoc = `{
  "session_id": "s1",
  "found_in_date": "2024-01-01",
  "cache_data": {
    "budgetpay": {
      "value": [{
        "AvailableLimit": 150,
        "TotalLimit": 500.5,
        "UsedLimit": 349.499,
        "TotalOutstandingLimit": 10,
        "TotalPendingInstallmentAmount": 20.25,
        "OverDueAmount": 0,
        "CustomerBpStatus": "SoftRecovery",
        "LastInstallments": [
          {"SalesOrderCode": "SO-1", "LastInstallmentAmount": "25.00", "LastInstallmentDate": "2024-01-05T14:30:00Z"}
        ],
        "NextInstallment": [
          {"SalesOrderCode": "SO-2", "NextInstallmentAmount": "30.00", "NextInstallmentDate": "2024-02-01T00:00:00Z"}
        ],
        "PendingInstallments": []
      }],
      "cached_at": "2024-01-01T00:00:00Z",
      "expires_at": "2024-01-08T00:00:00Z"
    }
  }
}`

func TestBudgetPay(t *testing.T) {
	r, err := dashboard.Decode([]byte(budgetPayDoc))
	require.NoError(t, err)

	out := plainFormatter(t).BudgetPay(*r.CacheData.BudgetPay)

	assert.Contains(t, out, "Budget Pay Information  [SoftRecovery]")
	assert.Contains(t, out, "$150.00")
	assert.Contains(t, out, "$500.50")
	assert.Contains(t, out, "$349.50")
	assert.Contains(t, out, "$20.25")
	assert.Contains(t, out, "$0.00")

	assert.Contains(t, out, "Last Installments")
	assert.Contains(t, out, "SO-1")
	assert.Contains(t, out, "$25.00")
	assert.Contains(t, out, "1/5/2024, 2:30:00 PM")

	assert.Contains(t, out, "Next Installment")
	assert.Contains(t, out, "SO-2  $30.00  2/1/2024")

	assert.NotContains(t, out, "Pending Installments")
	assert.NotContains(t, out, "Due Date")
}

func TestBudgetPay_Empty(t *testing.T) {
	out := plainFormatter(t).BudgetPay(dashboard.Envelope[[]dashboard.BudgetPayRecord]{})
	assert.Contains(t, out, "No budget pay information available")
}

func TestBudgetPayStatusPalette(t *testing.T) {
	assert.Equal(t, PaletteYellow, BudgetPayStatusPalette("SoftRecovery"))
	assert.Equal(t, PaletteGreen, BudgetPayStatusPalette("Active"))
	assert.Equal(t, PaletteGreen, BudgetPayStatusPalette("softrecovery"))
}

func TestOrderStatusPalette(t *testing.T) {
	tests := map[string]Palette{
		"Delivered":  PaletteGreen,
		"DISPATCHED": PaletteBlue,
		"invoiced":   PaletteYellow,
		"Cancelled":  PaletteGray,
		"":           PaletteGray,
	}
	for status, expected := range tests {
		assert.Equal(t, expected, OrderStatusPalette(status), status)
	}
}

func TestOrders(t *testing.T) {
	env := dashboard.Envelope[[]dashboard.Order]{
		Value: []dashboard.Order{
			{
				SalesOrderCode:       "SO-100",
				OrderStatus:          "Delivered",
				OrderDate:            "2024-01-01",
				TotalGrossAmount:     "59.99",
				LastCardDigit:        "4242",
				PaymentMode:          "Credit Card",
				IsBudgetPayOrder:     "Budgetpay order with 4 installments",
				TotalShippingCharges: 5,
				InvoiceCode:          "INV-9",
				TotalTaxAmount:       4.5,
				TotalDiscountAmount:  1.005,
				Items: []dashboard.OrderItem{
					{
						ItemCode:       "IC-1",
						ItemName:       "Garden Gnome",
						ItemStatus:     "Dispatched",
						Message:        "Left at door",
						TrackingNumber: ptr("1Z999"),
						Carrier:        ptr("ups"),
						DeliveryDate:   ptr("2024-01-03"),
						NarvarStatus:   ptr("In Transit"),
						ItemQuantity:   2,
					},
				},
			},
			{
				SalesOrderCode:   "SO-200",
				OrderStatus:      "Pending",
				IsBudgetPayOrder: "No",
			},
		},
		CachedAt:  "2024-01-01T00:00:00Z",
		ExpiresAt: "2024-01-08T00:00:00Z",
	}

	out := plainFormatter(t).Orders(env)

	assert.Contains(t, out, "Order Details")
	assert.Contains(t, out, "SO-100  [Delivered]  $59.99")
	assert.Contains(t, out, "Invoice: INV-9")
	assert.Contains(t, out, "Order Date: 2024-01-01")
	assert.Contains(t, out, "Payment Mode: Credit Card  Card: ****4242")
	assert.Contains(t, out, "Shipping: $5.00  Tax: $4.50")
	assert.Contains(t, out, "[Budgetpay order with 4 installments]")
	assert.Contains(t, out, "Garden Gnome  [Dispatched]")
	assert.Contains(t, out, "Item Code: IC-1")
	assert.Contains(t, out, "Quantity: 2")
	assert.Contains(t, out, "> Left at door")
	assert.Contains(t, out, "Tracking: 1Z999  Carrier: UPS  Delivery: 2024-01-03")
	assert.Contains(t, out, "Status: In Transit")

	second := out[strings.Index(out, "SO-200"):]
	assert.Contains(t, second, "No item details available")
	assert.NotContains(t, second, "[No]")
}

func TestOrders_DriftedAmount(t *testing.T) {
	r, err := dashboard.Decode([]byte(`{"session_id":"abc-123","cache_data":{"orderdetails":{"value":[
		{"SalesOrderCode":"SO-1","OrderStatus":"Delivered","TotalGrossAmount":12.5,"TotalTaxAmount":"1.25","items":[]}
	]}}}`))
	require.NoError(t, err)

	out := plainFormatter(t).Dashboard(r)
	assert.Contains(t, out, "$12.5")
	assert.Contains(t, out, "$1.25")
	assert.Contains(t, out, "No item details available")
}

func TestOrderItem_NullTracking(t *testing.T) {
	env := dashboard.Envelope[[]dashboard.Order]{
		Value: []dashboard.Order{{
			SalesOrderCode: "SO-1",
			Items: []dashboard.OrderItem{{
				ItemName: "Lamp",
				Carrier:  ptr("fedex"),
			}},
		}},
	}

	out := plainFormatter(t).Orders(env)
	assert.NotContains(t, out, "Tracking:")
	assert.NotContains(t, out, "FEDEX")
	assert.NotContains(t, out, "Status:")
}

func TestLayoutsFor(t *testing.T) {
	assert.Equal(t, "1/2/2006", LayoutsFor("").Date)
	assert.Equal(t, "1/2/2006", LayoutsFor("en-US").Date)
	assert.Equal(t, "02/01/2006", LayoutsFor("en-GB").Date)
	assert.Equal(t, "2.1.2006", LayoutsFor("de-DE").Date)
	assert.Equal(t, "2006/1/2", LayoutsFor("ja").Date)
	assert.Equal(t, "1/2/2006", LayoutsFor("not a tag!").Date)
}

func TestParseTime(t *testing.T) {
	f := plainFormatter(t)

	for _, s := range []string{
		"2024-01-01T00:00:00Z",
		"2024-01-01T00:00:00.123+00:00",
		"2024-01-01",
		"2024-01-01T00:00:00",
		"2024-01-01 00:00:00",
	} {
		got, ok := f.ParseTime(s)
		require.True(t, ok, s)
		assert.Equal(t, 2024, got.Year(), s)
	}

	_, ok := f.ParseTime("yesterday")
	assert.False(t, ok)
}

func TestExpiry_Past(t *testing.T) {
	f := plainFormatter(t)
	assert.Equal(t, "expired 1 day ago", f.Expiry("2024-01-01T00:00:00Z"))
}

func TestColorOutputKeepsText(t *testing.T) {
	f := plainFormatter(t)
	f.Color = true

	out := f.Refund(dashboard.Envelope[string]{Value: "Refund issued"})
	assert.Contains(t, out, "Refund issued")
}
