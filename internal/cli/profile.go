package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/freightdesk/internal/models"
)

func (a *App) AddProfile(ctx context.Context) error {
	if err := a.checkSession(); err != nil {
		return err
	}

	p := models.CompanyProfile{OwnerUserID: a.owner()}
	var err error
	if p.Name, err = a.text("Company name", ""); err != nil {
		return err
	}

	for _, f := range []struct {
		prompt string
		dst    **string
	}{
		{"Address", &p.Address},
		{"City", &p.City},
		{"State", &p.State},
		{"Pincode", &p.Pincode},
		{"GSTIN", &p.GSTIN},
		{"PAN", &p.PAN},
		{"Phone", &p.Phone},
		{"Email", &p.Email},
		{"Website", &p.Website},
	} {
		if *f.dst, err = a.optional(f.prompt, nil); err != nil {
			return err
		}
	}
	if p.GSTIN != nil {
		*p.GSTIN = strings.ToUpper(*p.GSTIN)
	}
	if p.PAN != nil {
		*p.PAN = strings.ToUpper(*p.PAN)
	}

	if p.IsDefault, err = a.yesNo("Use as default profile?"); err != nil {
		return err
	}

	id, err := a.store.SaveCompanyProfile(ctx, &p)
	if err != nil {
		return err
	}
	a.printf("Saved company profile %d\n", id)
	return nil
}

func (a *App) Profiles(ctx context.Context) error {
	if err := a.checkSession(); err != nil {
		return err
	}

	list, err := a.store.GetUserCompanyProfiles(ctx, a.owner())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No company profiles")
		return nil
	}
	for _, p := range list {
		mark := ""
		if p.IsDefault {
			mark = " (default)"
		}
		a.printf("%d\t%s%s\t%s\n", p.ID, p.Name, mark, deref(p.GSTIN))
	}
	return nil
}
