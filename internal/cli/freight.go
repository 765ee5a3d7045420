package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/dmitrijs2005/freightdesk/internal/models"
)

// readFreight prompts for every field, offering cur's values as defaults.
func (a *App) readFreight(ctx context.Context, cur *models.FreightRecord) (*models.FreightRecord, error) {
	var err error
	r := *cur
	r.OwnerUserID = a.owner()

	if r.Origin, err = a.text("Origin", cur.Origin); err != nil {
		return nil, err
	}
	if r.Destination, err = a.text("Destination", cur.Destination); err != nil {
		return nil, err
	}
	if r.GoodsDescription, err = a.text("Goods description", cur.GoodsDescription); err != nil {
		return nil, err
	}

	def := func(v string) string {
		if cur.ID == 0 {
			return ""
		}
		return v
	}
	if r.Weight, err = a.number("Weight", def(cur.Weight.String())); err != nil {
		return nil, err
	}
	if r.Amount, err = a.number("Amount", def(cur.Amount.String())); err != nil {
		return nil, err
	}
	if r.Discount, err = a.number("Discount", cur.Discount.String()); err != nil {
		return nil, err
	}
	if r.Taxes, err = a.number("Taxes", cur.Taxes.String()); err != nil {
		return nil, err
	}

	if r.EwayBillNumber, err = a.optional("E-way bill number (- for none)", cur.EwayBillNumber); err != nil {
		return nil, err
	}
	if r.EwayBillNumber != nil {
		if r.EwayBillDate, err = a.optional("E-way bill date YYYY-MM-DD", cur.EwayBillDate); err != nil {
			return nil, err
		}
	} else {
		r.EwayBillDate = nil
	}

	var curProfile *string
	if cur.CompanyProfileID != nil {
		s := strconv.FormatInt(*cur.CompanyProfileID, 10)
		curProfile = &s
	}
	p, err := a.optional("Company profile id (- for none)", curProfile)
	if err != nil {
		return nil, err
	}
	r.CompanyProfileID = nil
	if p != nil {
		id, err := parseID(*p)
		if err != nil {
			return nil, err
		}
		r.CompanyProfileID = &id
	}

	if r.CustomFields, err = a.readCustomValues(ctx, cur.CustomFields); err != nil {
		return nil, err
	}
	return &r, nil
}

// readCustomValues prompts for each active custom field. Values of fields
// that are no longer active are kept as they were.
func (a *App) readCustomValues(ctx context.Context, cur models.ExtensionData) (models.ExtensionData, error) {
	defs, err := a.store.GetUserCustomFields(ctx, a.owner(), false)
	if err != nil {
		return nil, err
	}
	values, err := cur.Values()
	if err != nil {
		values = map[string]string{}
	}
	if len(defs) == 0 {
		return cur, nil
	}

	for _, d := range defs {
		prompt := d.FieldLabel
		if d.FieldType == models.FieldSelect {
			prompt = fmt.Sprintf("%s %v", prompt, d.Options)
		}
		v, err := a.text(prompt, values[d.FieldName])
		if err != nil {
			return nil, err
		}
		switch {
		case v == "" && d.IsRequired:
			return nil, fmt.Errorf("%s is required", d.FieldLabel)
		case v != "" && d.FieldType == models.FieldSelect && !slices.Contains(d.Options, v):
			return nil, fmt.Errorf("%s must be one of %v", d.FieldLabel, d.Options)
		case v != "" && d.FieldType == models.FieldNumber:
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				return nil, fmt.Errorf("%s must be a number", d.FieldLabel)
			}
		}
		if v == "" {
			delete(values, d.FieldName)
		} else {
			values[d.FieldName] = v
		}
	}
	return models.ExtensionFromValues(values)
}

func (a *App) AddFreight(ctx context.Context) error {
	if err := a.checkSession(); err != nil {
		return err
	}

	r, err := a.readFreight(ctx, &models.FreightRecord{})
	if err != nil {
		return err
	}
	id, err := a.store.SaveFreightDetails(ctx, r)
	if err != nil {
		return err
	}
	a.printf("Saved freight record %d\n", id)
	return nil
}

func (a *App) List(ctx context.Context) error {
	if err := a.checkSession(); err != nil {
		return err
	}

	list, err := a.store.GetUserFreightRecords(ctx, a.owner())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No freight records")
		return nil
	}
	for _, r := range list {
		a.println(freightLine(r))
	}
	return nil
}

// ownRecord loads a record of the signed-in user; others read as missing.
func (a *App) ownRecord(ctx context.Context, arg string) (*models.FreightRecord, error) {
	id, err := parseID(arg)
	if err != nil {
		return nil, err
	}
	r, err := a.store.GetFreightDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil || r.OwnerUserID != a.owner() {
		return nil, fmt.Errorf("freight record %d not found", id)
	}
	return r, nil
}

func (a *App) Show(ctx context.Context, arg string) error {
	if err := a.checkSession(); err != nil {
		return err
	}
	r, err := a.ownRecord(ctx, arg)
	if err != nil {
		return err
	}
	a.printFreight(r)
	return nil
}

func (a *App) Edit(ctx context.Context, arg string) error {
	if err := a.checkSession(); err != nil {
		return err
	}
	cur, err := a.ownRecord(ctx, arg)
	if err != nil {
		return err
	}

	r, err := a.readFreight(ctx, cur)
	if err != nil {
		return err
	}
	if err := a.store.UpdateFreightDetails(ctx, cur.ID, r); err != nil {
		return err
	}
	a.printf("Updated freight record %d\n", cur.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, arg string) error {
	if err := a.checkSession(); err != nil {
		return err
	}
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	ok, err := a.yesNo(fmt.Sprintf("Delete freight record %d and its document history?", id))
	if err != nil || !ok {
		return err
	}
	if err := a.store.DeleteFreightDetails(ctx, id, a.owner()); err != nil {
		return err
	}
	a.printf("Deleted freight record %d\n", id)
	return nil
}
