// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cards

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"

	"github.com/staranto/cachedash/internal/dashboard"
)

// Dashboard renders the session block followed by every card the payload
// carries, in budget pay, refund, orders order.
func (f *Formatter) Dashboard(r *dashboard.Response) string {
	if r == nil {
		return ""
	}
	blocks := []string{f.Session(r)}
	blocks = append(blocks, f.Cards(r.CacheData)...)
	return strings.Join(blocks, "\n\n")
}

// Cards renders one card per present envelope. Absent envelopes are skipped.
func (f *Formatter) Cards(c dashboard.CacheData) []string {
	var out []string
	if c.BudgetPay != nil {
		out = append(out, f.BudgetPay(*c.BudgetPay))
	}
	if c.RefundMessage != nil {
		out = append(out, f.Refund(*c.RefundMessage))
	}
	if c.OrderDetails != nil {
		out = append(out, f.Orders(*c.OrderDetails))
	}
	return out
}

// Session renders the session information block.
func (f *Formatter) Session(r *dashboard.Response) string {
	return f.card([]string{
		f.title("Session Information"),
		"",
		f.label("Session ID:") + " " + r.SessionID,
		f.label("Found in Date:") + " " + r.FoundInDate,
	})
}

// Refund renders the refund message card.
func (f *Formatter) Refund(e dashboard.Envelope[string]) string {
	lines := []string{
		f.title("Refund Message"),
		"",
		e.Value,
	}
	lines = append(lines, f.footer(e.CachedAt, e.ExpiresAt)...)
	return f.card(lines)
}

// BudgetPay renders the first budget pay record of the envelope.
func (f *Formatter) BudgetPay(e dashboard.Envelope[[]dashboard.BudgetPayRecord]) string {
	if len(e.Value) == 0 {
		lines := []string{
			f.title("Budget Pay Information"),
			"",
			f.muted("No budget pay information available"),
		}
		lines = append(lines, f.footer(e.CachedAt, e.ExpiresAt)...)
		return f.card(lines)
	}

	bp := e.Value[0]
	lines := []string{
		f.title("Budget Pay Information") + "  " +
			f.badge(bp.CustomerBpStatus, BudgetPayStatusPalette(bp.CustomerBpStatus)),
		"",
	}

	lines = append(lines, f.amounts([][2]string{
		{"Available Limit", Currency(bp.AvailableLimit)},
		{"Total Limit", Currency(bp.TotalLimit)},
		{"Used Limit", Currency(bp.UsedLimit)},
		{"Outstanding Limit", Currency(bp.TotalOutstandingLimit)},
		{"Pending Installment", Currency(bp.TotalPendingInstallmentAmount)},
		{"Overdue Amount", Currency(bp.OverDueAmount)},
	})...)

	if last := dashboard.Installments(bp.LastInstallments); len(last) > 0 {
		lines = append(lines, "", f.heading("Last Installments"))
		lines = append(lines, f.installmentTable("Date", last, f.DateTime))
	}

	if next := dashboard.Installments(bp.NextInstallment); len(next) > 0 {
		lines = append(lines, "", f.heading("Next Installment"))
		for _, i := range next {
			lines = append(lines, i.SalesOrderCode+"  "+
				f.style(amountStyle).Render("$"+i.Amount)+"  "+
				f.Date(i.Date))
		}
	}

	if pending := dashboard.Installments(bp.PendingInstallments); len(pending) > 0 {
		lines = append(lines, "", f.heading("Pending Installments"))
		lines = append(lines, f.installmentTable("Due Date", pending, f.Date))
	}

	lines = append(lines, f.footer(e.CachedAt, e.ExpiresAt)...)
	return f.card(lines)
}

// Orders renders every order of the envelope.
func (f *Formatter) Orders(e dashboard.Envelope[[]dashboard.Order]) string {
	lines := []string{f.title("Order Details")}

	for _, o := range e.Value {
		lines = append(lines, "")
		lines = append(lines, f.order(o)...)
	}

	lines = append(lines, f.footer(e.CachedAt, e.ExpiresAt)...)
	return f.card(lines)
}

func (f *Formatter) order(o dashboard.Order) []string {
	lines := []string{
		f.heading(o.SalesOrderCode) + "  " +
			f.badge(o.OrderStatus, OrderStatusPalette(o.OrderStatus)) + "  " +
			f.style(amountStyle).Render("$"+o.TotalGrossAmount),
		f.label("Invoice:") + " " + o.InvoiceCode,
		f.label("Order Date:") + " " + o.OrderDate,
		f.label("Payment Mode:") + " " + o.PaymentMode + "  " +
			f.muted("Card: ****"+o.LastCardDigit),
		f.label("Shipping:") + " " + Currency(o.TotalShippingCharges) + "  " +
			f.label("Tax:") + " " + Currency(o.TotalTaxAmount) + "  " +
			f.label("Discount:") + " " + Currency(o.TotalDiscountAmount),
	}

	if note, ok := o.BudgetPayNote(); ok {
		lines = append(lines, f.badge(note, PalettePurple))
	}

	if len(o.Items) == 0 {
		return append(lines, f.muted("No item details available"))
	}

	lines = append(lines, f.heading("Items:"))
	for _, item := range o.Items {
		for _, l := range f.item(item) {
			lines = append(lines, "  "+l)
		}
	}
	return lines
}

func (f *Formatter) item(it dashboard.OrderItem) []string {
	lines := []string{
		it.ItemName + "  " + f.badge(it.ItemStatus, OrderStatusPalette(it.ItemStatus)),
		f.label("Item Code:") + " " + it.ItemCode,
		f.label("Quantity:") + " " + Quantity(it.ItemQuantity),
	}

	if it.Message != "" {
		lines = append(lines, "> "+it.Message)
	}

	if tracking := dashboard.Str(it.TrackingNumber); tracking != "" {
		parts := []string{f.label("Tracking:") + " " + tracking}
		if carrier := dashboard.Str(it.Carrier); carrier != "" {
			parts = append(parts, f.label("Carrier:")+" "+strings.ToUpper(carrier))
		}
		if delivery := dashboard.Str(it.DeliveryDate); delivery != "" {
			parts = append(parts, f.label("Delivery:")+" "+delivery)
		}
		lines = append(lines, strings.Join(parts, "  "))
	}

	if narvar := dashboard.Str(it.NarvarStatus); narvar != "" {
		lines = append(lines, f.label("Status:")+" "+narvar)
	}

	return lines
}

func (f *Formatter) heading(s string) string {
	return f.style(headStyle).Render(s)
}

// amounts lays out label/value pairs with the values aligned.
func (f *Formatter) amounts(pairs [][2]string) []string {
	width := 0
	for _, p := range pairs {
		width = max(width, len(p[0]))
	}
	pad := lipgloss.NewStyle().Width(width + 2)
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, f.label(pad.Render(p[0]))+f.style(amountStyle).Render(p[1]))
	}
	return out
}

func (f *Formatter) installmentTable(dateHeader string, rows []dashboard.Installment, date func(string) string) string {
	var (
		headerStyle = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle   = lipgloss.NewStyle().Align(lipgloss.Left)
	)
	if f.Color {
		headerStyle = headerStyle.Bold(true).Foreground(lipgloss.Color("#6b7280"))
	}

	var data [][]string
	for _, r := range rows {
		data = append(data, []string{r.SalesOrderCode, "$" + r.Amount, date(r.Date)})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cellStyle
			if row == table.HeaderRow {
				style = headerStyle
			}
			if col > 0 {
				style = style.PaddingLeft(2)
			}
			return style
		}).
		Headers("Order Code", "Amount", dateHeader).
		Rows(data...).
		BorderHeader(false)

	return t.String()
}

func (f *Formatter) footer(cachedAt, expiresAt string) []string {
	expires := f.muted("Expires at: " + f.DateTime(expiresAt))
	if hint := f.Expiry(expiresAt); hint != "" {
		expires += " " + f.muted("("+hint+")")
	}
	return []string{
		"",
		f.muted("Cached at: " + f.DateTime(cachedAt)),
		expires,
	}
}
