package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/freightdesk/internal/models"
)

func (a *App) AddField(ctx context.Context) error {
	if err := a.checkSession(); err != nil {
		return err
	}

	f := models.CustomFieldDefinition{OwnerUserID: a.owner()}
	var err error
	if f.FieldName, err = a.text("Field name (e.g. lr_no)", ""); err != nil {
		return err
	}
	if f.FieldLabel, err = a.text("Label", ""); err != nil {
		return err
	}
	t, err := a.text("Type: text, number, date, textarea, select", string(models.FieldText))
	if err != nil {
		return err
	}
	f.FieldType = models.FieldType(strings.ToLower(t))

	if f.FieldType == models.FieldSelect {
		opts, err := a.text("Options, comma separated", "")
		if err != nil {
			return err
		}
		for _, o := range strings.Split(opts, ",") {
			if o = strings.TrimSpace(o); o != "" {
				f.Options = append(f.Options, o)
			}
		}
	}

	order, err := a.text("Display order", "0")
	if err != nil {
		return err
	}
	if f.DisplayOrder, err = strconv.Atoi(order); err != nil {
		return err
	}
	if f.IsRequired, err = a.yesNo("Required?"); err != nil {
		return err
	}

	id, err := a.store.SaveCustomField(ctx, &f)
	if err != nil {
		return err
	}
	a.printf("Saved custom field %d\n", id)
	return nil
}

func (a *App) Fields(ctx context.Context) error {
	if err := a.checkSession(); err != nil {
		return err
	}

	list, err := a.store.GetUserCustomFields(ctx, a.owner(), false)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No custom fields")
		return nil
	}
	for _, f := range list {
		req := ""
		if f.IsRequired {
			req = " *"
		}
		a.printf("%d\t%s\t%s\t%s%s\n", f.ID, f.FieldName, f.FieldLabel, f.FieldType, req)
	}
	return nil
}

// RemoveField deactivates a field; values already stored stay untouched.
func (a *App) RemoveField(ctx context.Context, arg string) error {
	if err := a.checkSession(); err != nil {
		return err
	}
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	if err := a.store.DeleteCustomField(ctx, id, a.owner()); err != nil {
		return err
	}
	a.printf("Removed custom field %d\n", id)
	return nil
}
