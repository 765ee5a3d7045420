package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func scanRow(s Scanner) (struct {
	ID int64
	V  string
}, error) {
	var r struct {
		ID int64
		V  string
	}
	err := s.Scan(&r.ID, &r.V)
	return r, err
}

func seed(t *testing.T, db *sql.DB, vals ...string) {
	t.Helper()
	_, err := db.Exec(`DELETE FROM t`)
	require.NoError(t, err)
	for _, v := range vals {
		_, err := db.Exec(`INSERT INTO t(v) VALUES (?)`, v)
		require.NoError(t, err)
	}
}

func TestCollect_ReturnsAllRowsInOrder(t *testing.T) {
	db := setupDB(t)
	seed(t, db, "a", "b", "c")

	got, err := Collect(Query(context.Background(), db, scanRow, `SELECT id, v FROM t ORDER BY id`))
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "a", got[0].V)
	require.Equal(t, "c", got[2].V)
}

func TestCollect_EmptyIsNonNil(t *testing.T) {
	db := setupDB(t)
	seed(t, db)

	got, err := Collect(Query(context.Background(), db, scanRow, `SELECT id, v FROM t`))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestQuery_EarlyBreakClosesRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, v FROM t`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "v"}).AddRow(1, "a").AddRow(2, "b")).
		RowsWillBeClosed()

	for r, err := range Query(context.Background(), db, scanRow, `SELECT id, v FROM t`) {
		require.NoError(t, err)
		require.Equal(t, int64(1), r.ID)
		break
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery_PropagatesQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("boom"))

	_, err = Collect(Query(context.Background(), db, scanRow, `SELECT id, v FROM t`))
	require.EqualError(t, err, "boom")
}

func TestQuery_PropagatesRowError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "v"}).AddRow(1, "a").AddRow(2, "b").RowError(1, errors.New("row broke")),
	)

	_, err = Collect(Query(context.Background(), db, scanRow, `SELECT id, v FROM t`))
	require.EqualError(t, err, "row broke")
}

func TestQueryOne_NoRowsIsNil(t *testing.T) {
	db := setupDB(t)
	seed(t, db, "only")

	got, err := QueryOne(context.Background(), db, scanRow, `SELECT id, v FROM t WHERE v = ?`, "missing")
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = QueryOne(context.Background(), db, scanRow, `SELECT id, v FROM t WHERE v = ?`, "only")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "only", got.V)
}

func TestTimeCodec(t *testing.T) {
	ts := time.Date(2024, 3, 5, 10, 11, 12, 123000000, time.FixedZone("IST", 5*3600+1800))

	s := FormatTime(ts)
	require.Equal(t, "2024-03-05T04:41:12.123Z", s)

	back, err := ParseTime(s)
	require.NoError(t, err)
	require.True(t, back.Equal(ts))

	legacy, err := ParseTime("2024-03-05 04:41:12")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 5, 4, 41, 12, 0, time.UTC), legacy)

	_, err = ParseTime("yesterday")
	require.Error(t, err)

	none, err := ParseNullTime(sql.NullString{})
	require.NoError(t, err)
	require.Nil(t, none)
}

func TestNullHelpers(t *testing.T) {
	s := "x"
	require.Equal(t, sql.NullString{String: "x", Valid: true}, NullString(&s))
	require.False(t, NullString(nil).Valid)
	require.Nil(t, StringPtr(sql.NullString{}))
	require.Equal(t, "x", *StringPtr(sql.NullString{String: "x", Valid: true}))

	n := int64(4)
	require.Equal(t, sql.NullInt64{Int64: 4, Valid: true}, NullInt64(&n))
	require.Nil(t, Int64Ptr(sql.NullInt64{}))
}

func TestIsUniqueViolation(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS u (name TEXT UNIQUE)`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM u`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO u(name) VALUES ('a')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO u(name) VALUES ('a')`)
	require.Error(t, err)
	require.True(t, IsUniqueViolation(err))

	require.False(t, IsUniqueViolation(errors.New("UNIQUE constraint failed")))
	require.False(t, IsUniqueViolation(nil))
}
