package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/freightdesk/internal/logging"
	"github.com/dmitrijs2005/freightdesk/internal/models"
	"github.com/dmitrijs2005/freightdesk/internal/services"
)

// Store is the storage engine surface the CLI uses.
type Store interface {
	services.UserStore
	services.DocumentStore

	SaveFreightDetails(ctx context.Context, r *models.FreightRecord) (int64, error)
	GetUserFreightRecords(ctx context.Context, owner int64) ([]models.FreightRecord, error)
	UpdateFreightDetails(ctx context.Context, id int64, r *models.FreightRecord) error
	DeleteFreightDetails(ctx context.Context, id, owner int64) error
	GetDocumentHistory(ctx context.Context, freightID int64) ([]models.DocumentGenerationRecord, error)

	SaveCompanyProfile(ctx context.Context, p *models.CompanyProfile) (int64, error)
	GetUserCompanyProfiles(ctx context.Context, owner int64) ([]models.CompanyProfile, error)

	SaveCustomField(ctx context.Context, f *models.CustomFieldDefinition) (int64, error)
	DeleteCustomField(ctx context.Context, id, owner int64) error

	ExportAll(ctx context.Context) (*models.Snapshot, error)
	ImportAll(ctx context.Context, s *models.Snapshot) error
	ClearAllData(ctx context.Context) error
	Initialize(ctx context.Context) error
	LastBackupAt(ctx context.Context) (*time.Time, error)
}

type App struct {
	store       Store
	authService services.AuthService
	docService  services.DocumentService
	log         logging.Logger
	session     *services.Session
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(store Store, auth services.AuthService, log logging.Logger) *App {
	return &App{
		store:       store,
		authService: auth,
		docService:  services.NewDocumentService(store),
		log:         log.With("component", "cli"),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to freightdesk (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

// owner is the signed-in user id. Commands that need it check isLoggedIn first.
func (a *App) owner() int64 {
	return a.session.UserID
}

func (a *App) getStatus() string {
	if a.session == nil {
		return ""
	}
	return "(" + a.session.Username + ")"
}
