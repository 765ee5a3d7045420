package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/freightdesk/internal/models"
	"github.com/dmitrijs2005/freightdesk/internal/services"
)

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func freightLine(r models.FreightRecord) string {
	return fmt.Sprintf("%d\t%s\t%s -> %s\t%s\t%s",
		r.ID, r.CreatedAt.Local().Format("2006-01-02"), r.Origin, r.Destination, r.GoodsDescription, r.Total().StringFixed(2))
}

func (a *App) printFreight(r *models.FreightRecord) {
	a.printf("ID:           %d\n", r.ID)
	a.printf("Created:      %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04"))
	if r.UpdatedAt != nil {
		a.printf("Updated:      %s\n", r.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	a.printf("Route:        %s -> %s\n", r.Origin, r.Destination)
	a.printf("Goods:        %s\n", r.GoodsDescription)
	a.printf("Weight:       %s kg\n", r.Weight.String())
	a.printf("Amount:       %s\n", r.Amount.StringFixed(2))
	a.printf("Discount:     %s\n", r.Discount.StringFixed(2))
	a.printf("Taxes:        %s\n", r.Taxes.StringFixed(2))
	a.printf("Total:        %s\n", r.Total().StringFixed(2))
	if r.EwayBillNumber != nil {
		a.printf("E-way bill:   %s %s\n", *r.EwayBillNumber, deref(r.EwayBillDate))
	}
	if r.CompanyProfileID != nil {
		a.printf("Profile:      %d\n", *r.CompanyProfileID)
	}
	if vals, err := r.CustomFields.Values(); err == nil {
		for k, v := range vals {
			a.printf("  %s: %s\n", k, v)
		}
	}
}

func (a *App) printDocument(d *services.Document) {
	title := "BILTY"
	if d.Type == models.DocumentInvoice {
		title = "TAX INVOICE"
	}
	a.println(strings.Repeat("=", 48))
	if p := d.Profile; p != nil {
		a.println(p.Name)
		if addr := strings.Join(nonEmpty(deref(p.Address), deref(p.City), deref(p.State), deref(p.Pincode)), ", "); addr != "" {
			a.println(addr)
		}
		if p.GSTIN != nil {
			a.println("GSTIN:", *p.GSTIN)
		}
	}
	a.printf("%s  No. %s  Date %s\n", title, d.Number, d.GeneratedAt.Local().Format("02-01-2006"))
	a.println(strings.Repeat("-", 48))
	a.printf("From %s to %s\n", d.Freight.Origin, d.Freight.Destination)
	a.printf("Goods: %s, %s kg\n", d.Freight.GoodsDescription, d.Freight.Weight.String())
	if d.Freight.EwayBillNumber != nil {
		a.printf("E-way bill: %s %s\n", *d.Freight.EwayBillNumber, deref(d.Freight.EwayBillDate))
	}
	for _, l := range d.Extra {
		a.printf("%s: %s\n", l.Label, l.Value)
	}
	a.println(strings.Repeat("-", 48))
	a.printf("Freight   %12s\n", d.Freight.Amount.StringFixed(2))
	a.printf("Discount  %12s\n", d.Freight.Discount.Neg().StringFixed(2))
	a.printf("Taxes     %12s\n", d.Freight.Taxes.StringFixed(2))
	a.printf("Total     %12s\n", d.Total.StringFixed(2))
	a.println(strings.Repeat("=", 48))
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
