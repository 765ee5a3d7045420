package cli

import (
	"context"

	"github.com/dmitrijs2005/freightdesk/internal/models"
)

// Generate prints a bilty or invoice for an owned record and records it in
// the document history.
func (a *App) Generate(ctx context.Context, arg, docType string) error {
	if err := a.checkSession(); err != nil {
		return err
	}
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	doc, err := a.docService.Generate(ctx, a.owner(), id, models.DocumentType(docType))
	if err != nil {
		return err
	}
	a.printDocument(doc)
	return nil
}

func (a *App) History(ctx context.Context, arg string) error {
	if err := a.checkSession(); err != nil {
		return err
	}
	r, err := a.ownRecord(ctx, arg)
	if err != nil {
		return err
	}

	hist, err := a.store.GetDocumentHistory(ctx, r.ID)
	if err != nil {
		return err
	}
	if len(hist) == 0 {
		a.println("No documents generated yet")
		return nil
	}
	for _, h := range hist {
		a.printf("%s\t%s\n", h.GeneratedAt.Local().Format("2006-01-02 15:04:05"), h.DocumentType)
	}
	return nil
}
