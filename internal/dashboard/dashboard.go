// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by Decode when the body is not JSON at all.
var ErrInvalidJSON = errors.New("invalid JSON")

// Envelope wraps a cached value with the times the backend stored it and
// will drop it. Timestamps are kept as received.
type Envelope[T any] struct {
	Value     T      `json:"value"`
	CachedAt  string `json:"cached_at"`
	ExpiresAt string `json:"expires_at"`
}

// Response is the root payload of a cache lookup.
type Response struct {
	SessionID   string    `json:"session_id"`
	FoundInDate string    `json:"found_in_date"`
	CacheData   CacheData `json:"cache_data"`
}

// CacheData holds the optional cached slices. A nil envelope is absent and
// is not rendered.
type CacheData struct {
	BudgetPay     *Envelope[[]BudgetPayRecord] `json:"budgetpay,omitempty"`
	RefundMessage *Envelope[string]            `json:"refund_message,omitempty"`
	OrderDetails  *Envelope[[]Order]           `json:"orderdetails,omitempty"`
}

// Empty reports whether no recognized slice is present.
func (c CacheData) Empty() bool {
	return c.BudgetPay == nil && c.RefundMessage == nil && c.OrderDetails == nil
}

// Installment is one row of the last, next or pending installment lists. The
// backend names the amount and date fields after the list they belong to.
type Installment struct {
	SalesOrderCode string
	Amount         string
	Date           string
}

type BudgetPayRecord struct {
	AvailableLimit                float64 `json:"AvailableLimit"`
	TotalLimit                    float64 `json:"TotalLimit"`
	UsedLimit                     float64 `json:"UsedLimit"`
	TotalOutstandingLimit         float64 `json:"TotalOutstandingLimit"`
	TotalPendingInstallmentAmount float64 `json:"TotalPendingInstallmentAmount"`
	OverDueAmount                 float64 `json:"OverDueAmount"`
	CustomerBpStatus              string  `json:"CustomerBpStatus"`

	LastInstallments    []LastInstallment    `json:"LastInstallments"`
	NextInstallment     []NextInstallment    `json:"NextInstallment"`
	PendingInstallments []PendingInstallment `json:"PendingInstallments"`
}

type LastInstallment struct {
	SalesOrderCode        string `json:"SalesOrderCode"`
	LastInstallmentAmount string `json:"LastInstallmentAmount"`
	LastInstallmentDate   string `json:"LastInstallmentDate"`
}

func (i LastInstallment) Installment() Installment {
	return Installment{i.SalesOrderCode, i.LastInstallmentAmount, i.LastInstallmentDate}
}

type NextInstallment struct {
	SalesOrderCode        string `json:"SalesOrderCode"`
	NextInstallmentAmount string `json:"NextInstallmentAmount"`
	NextInstallmentDate   string `json:"NextInstallmentDate"`
}

func (i NextInstallment) Installment() Installment {
	return Installment{i.SalesOrderCode, i.NextInstallmentAmount, i.NextInstallmentDate}
}

type PendingInstallment struct {
	SalesOrderCode           string `json:"SalesOrderCode"`
	PendingInstallmentAmount string `json:"PendingInstallmentAmount"`
	PendingInstallmentDate   string `json:"PendingInstallmentDate"`
}

func (i PendingInstallment) Installment() Installment {
	return Installment{i.SalesOrderCode, i.PendingInstallmentAmount, i.PendingInstallmentDate}
}

// Installments normalizes any of the three installment lists.
func Installments[T interface{ Installment() Installment }](in []T) []Installment {
	out := make([]Installment, 0, len(in))
	for _, i := range in {
		out = append(out, i.Installment())
	}
	return out
}

type Order struct {
	SalesOrderCode       string      `json:"SalesOrderCode"`
	OrderStatus          string      `json:"OrderStatus"`
	OrderDate            string      `json:"OrderDate"`
	TotalGrossAmount     string      `json:"TotalGrossAmount"`
	Items                []OrderItem `json:"items"`
	LastCardDigit        string      `json:"LastCardDigit"`
	PaymentMode          string      `json:"PaymentMode"`
	IsBudgetPayOrder     string      `json:"IsBudgetPayOrder"`
	TotalShippingCharges float64     `json:"TotalShippingcharges_forthis_order"`
	IsAuctionRunning     bool        `json:"IsAuctionRunning"`
	InvoiceCode          string      `json:"InvoiceCode"`
	BuyAllDiscountAmt    float64     `json:"BuyAllDiscountAmt"`
	TotalDiscountAmount  float64     `json:"TotalDiscountAmount"`
	TotalTaxAmount       float64     `json:"TotalTaxAmount"`
	SubscriptionDiscount *float64    `json:"SubscriptionDiscount"`
	IsSubscriber         bool        `json:"IsSubscriber"`
}

// BudgetPayNote returns the order's budget pay note when it carries one.
func (o Order) BudgetPayNote() (string, bool) {
	if strings.Contains(o.IsBudgetPayOrder, "Budgetpay") {
		return o.IsBudgetPayOrder, true
	}
	return "", false
}

type OrderItem struct {
	ItemCode       string  `json:"ItemCode"`
	ItemName       string  `json:"ItemName"`
	ItemStatus     string  `json:"ItemStatus"`
	Message        string  `json:"message"`
	TrackingNumber *string `json:"TrackingNumber"`
	NarvarStatus   *string `json:"NarvarStatus"`
	DeliveryDate   *string `json:"DeliveryDate"`
	Carrier        *string `json:"carrier"`
	ItemQuantity   float64 `json:"ItemQuantity"`
	ItemCancelDate *string `json:"ItemCancelDate"`
}

// Decode parses a lookup body into a Response. Only a body that is not JSON
// is an error. Fields whose type drifted from what the cards expect are
// coerced where possible and otherwise left at their zero value, so one odd
// field degrades only the card it belongs to.
func Decode(body []byte) (*Response, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("failed to decode dashboard response: %w", ErrInvalidJSON)
	}

	var r Response
	bind(gjson.ParseBytes(body), reflect.ValueOf(&r).Elem())
	return &r, nil
}

// Str dereferences a nullable string, "" for nil.
func Str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
