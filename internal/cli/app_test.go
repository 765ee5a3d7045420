package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/freightdesk/internal/blobstore"
	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/dmitrijs2005/freightdesk/internal/logging"
	"github.com/dmitrijs2005/freightdesk/internal/models"
	"github.com/dmitrijs2005/freightdesk/internal/services"
	"github.com/dmitrijs2005/freightdesk/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

type testApp struct {
	*App
	engine *storage.Engine
	out    *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	e := storage.New(blobstore.NewMemory(), logging.Discard())
	require.NoError(t, e.Initialize(context.Background()))
	t.Cleanup(func() { _ = e.Close() })

	auth := services.NewAuthService(e, []byte("secret"), time.Hour)
	a := NewApp(e, auth, logging.Discard())
	out := &bytes.Buffer{}
	a.out = out
	return &testApp{App: a, engine: e, out: out}
}

// input replaces what the app reads from the user.
func (ta *testApp) input(lines ...string) {
	ta.reader = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func (ta *testApp) login(t *testing.T) {
	t.Helper()
	stubPassword(t, common.DefaultPassword)
	ta.input(common.DefaultUsername)
	require.NoError(t, ta.Login(context.Background()))
	require.True(t, ta.isLoggedIn())
}

var freightAnswers = []string{"Mumbai", "Delhi", "Electronics", "100", "5000", "100", "900", "", ""}

func TestLogin(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()

	stubPassword(t, "wrong")
	ta.input("admin")
	require.NoError(t, ta.Login(ctx))
	assert.False(t, ta.isLoggedIn())
	assert.Contains(t, ta.out.String(), "Invalid username or password")

	ta.login(t)
	assert.Equal(t, "(admin)", ta.getStatus())

	require.NoError(t, ta.Logout(ctx))
	assert.False(t, ta.isLoggedIn())
	assert.Equal(t, "", ta.getStatus())
}

func TestRegister(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	stubPassword(t, "pw")

	ta.input("bob")
	require.NoError(t, ta.Register(ctx))
	assert.Contains(t, ta.out.String(), "Success!")

	ta.input("bob")
	require.NoError(t, ta.Register(ctx))
	assert.Contains(t, ta.out.String(), "Username already exists")
}

func TestFreightCommands(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	ta.login(t)

	ta.input(freightAnswers...)
	require.NoError(t, ta.AddFreight(ctx))
	assert.Contains(t, ta.out.String(), "Saved freight record 1")

	ta.out.Reset()
	require.NoError(t, ta.List(ctx))
	assert.Contains(t, ta.out.String(), "Mumbai -> Delhi")
	assert.Contains(t, ta.out.String(), "5800.00")

	// Keep everything but the destination and add an e-way bill.
	ta.input("", "Kolkata", "", "", "", "", "", "EWB77", "2024-06-01", "")
	require.NoError(t, ta.Edit(ctx, "1"))

	rec, err := ta.engine.GetFreightDetails(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Kolkata", rec.Destination)
	assert.Equal(t, "Mumbai", rec.Origin)
	assert.Equal(t, "EWB77", *rec.EwayBillNumber)
	assert.NotNil(t, rec.UpdatedAt)

	ta.out.Reset()
	require.NoError(t, ta.Show(ctx, "1"))
	assert.Contains(t, ta.out.String(), "EWB77")
	assert.Contains(t, ta.out.String(), "Total:        5800.00")

	assert.Error(t, ta.Show(ctx, "99"))

	ta.input("n")
	require.NoError(t, ta.Delete(ctx, "1"))
	rec, err = ta.engine.GetFreightDetails(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, rec)

	ta.input("y")
	require.NoError(t, ta.Delete(ctx, "1"))
	rec, err = ta.engine.GetFreightDetails(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestGenerateAndHistory(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	ta.login(t)

	ta.input("Acme Roadways", "12 MG Road", "Pune", "MH", "411001", "27aapfu0939f1zv", "", "", "", "", "y")
	require.NoError(t, ta.AddProfile(ctx))

	ta.input(freightAnswers...)
	require.NoError(t, ta.AddFreight(ctx))

	ta.out.Reset()
	require.NoError(t, ta.Generate(ctx, "1", "bilty"))
	doc := ta.out.String()
	assert.Contains(t, doc, "Acme Roadways")
	assert.Contains(t, doc, "GSTIN: 27AAPFU0939F1ZV")
	assert.Contains(t, doc, "BLT-000001")
	assert.Contains(t, doc, "5800.00")

	assert.Error(t, ta.Generate(ctx, "1", "receipt"))

	ta.out.Reset()
	require.NoError(t, ta.History(ctx, "1"))
	assert.Contains(t, ta.out.String(), "bilty")

	ta.out.Reset()
	require.NoError(t, ta.Profiles(ctx))
	assert.Contains(t, ta.out.String(), "Acme Roadways (default)")
}

func TestCustomFieldCommands(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	ta.login(t)

	ta.input("mode", "Mode", "select", "road, rail", "1", "y")
	require.NoError(t, ta.AddField(ctx))

	ta.out.Reset()
	require.NoError(t, ta.Fields(ctx))
	assert.Contains(t, ta.out.String(), "mode\tMode\tselect *")

	ta.input(append(freightAnswers, "air")...)
	assert.ErrorContains(t, ta.AddFreight(ctx), "must be one of")

	ta.input(append(freightAnswers, "rail")...)
	require.NoError(t, ta.AddFreight(ctx))

	rec, err := ta.engine.GetFreightDetails(ctx, 1)
	require.NoError(t, err)
	vals, err := rec.CustomFields.Values()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"mode": "rail"}, vals)

	require.NoError(t, ta.RemoveField(ctx, "1"))
	ta.out.Reset()
	require.NoError(t, ta.Fields(ctx))
	assert.Contains(t, ta.out.String(), "No custom fields")
}

func TestExportImportReset(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	ta.login(t)

	ta.input(freightAnswers...)
	require.NoError(t, ta.AddFreight(ctx))

	path := filepath.Join(t.TempDir(), "backups", "fd.json")
	require.NoError(t, ta.Export(ctx, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	snap, err := models.ReadSnapshot(f)
	_ = f.Close()
	require.NoError(t, err)
	assert.Len(t, snap.Tables["freight_details"], 1)

	ta.input("y")
	require.NoError(t, ta.Reset(ctx))
	assert.False(t, ta.isLoggedIn())
	assert.Contains(t, ta.out.String(), "Last backup:")

	ta.login(t)
	list, err := ta.engine.GetUserFreightRecords(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)

	ta.input("y")
	require.NoError(t, ta.Import(ctx, path))
	assert.False(t, ta.isLoggedIn())

	list, err = ta.engine.GetUserFreightRecords(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestExpiredSessionIsDropped(t *testing.T) {
	ta := newTestApp(t)
	ta.login(t)
	ta.session.Token = "garbage"

	assert.Error(t, ta.List(context.Background()))
	assert.False(t, ta.isLoggedIn())
}
