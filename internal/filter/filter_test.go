package filter

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/models"
)

var supplierSchema = NewSchema("supplier").WithKey("key").WithDescriptive("name")

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Supplier{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

// seedSuppliers inserts n suppliers created one day apart from 2024-01-01.
func seedSuppliers(t *testing.T, db *gorm.DB, n int) []models.Supplier {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.Supplier, 0, n)
	for i := 0; i < n; i++ {
		s := models.Supplier{
			Name: fmt.Sprintf("Supplier %d", i+1),
			Key:  fmt.Sprintf("supplier-%d", i+1),
		}
		s.Created = start.AddDate(0, 0, i)
		require.NoError(t, db.Create(&s).Error)
		out = append(out, s)
	}
	return out
}

func mustParse(t *testing.T, raw string) Query {
	t.Helper()
	params, err := url.ParseQuery(raw)
	require.NoError(t, err)
	q, err := Parse(supplierSchema, params)
	require.NoError(t, err)
	return q
}

func run(t *testing.T, db *gorm.DB, raw string) (int64, []models.Supplier) {
	t.Helper()
	var items []models.Supplier
	total, err := Find(db.Model(&models.Supplier{}), mustParse(t, raw), &items)
	require.NoError(t, err)
	return total, items
}

func names(items []models.Supplier) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestParseTerms(t *testing.T) {
	q := mustParse(t, "created=gte__2024-01-01&_key=eq__sk&_descriptive=like__Tran&bogus=eq__1&limit=10&offset=3&order_by=desc__created")

	require.Len(t, q.Terms, 3)
	assert.Equal(t, Term{Field: "_descriptive", Column: "name", Op: OpLike, Value: "Tran"}, q.Terms[0])
	assert.Equal(t, Term{Field: "_key", Column: "key", Op: OpEq, Value: "sk"}, q.Terms[1])
	assert.Equal(t, "created", q.Terms[2].Column)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), q.Terms[2].Value)

	assert.Equal(t, Page{Limit: 10, Offset: 3}, q.Page)
	require.NotNil(t, q.Order)
	assert.Equal(t, Order{Field: "created", Column: "created", Desc: true}, *q.Order)
}

func TestParseSplitsOnFirstSeparator(t *testing.T) {
	q := mustParse(t, "_key=eq__a__b")
	require.Len(t, q.Terms, 1)
	assert.Equal(t, "a__b", q.Terms[0].Value)
}

func TestParseIgnoresUnknownOperatorAndEmptyValue(t *testing.T) {
	q := mustParse(t, "_key=between__a&_descriptive=")
	assert.Empty(t, q.Terms)
}

func TestParseIgnoresLikeOnNonStringField(t *testing.T) {
	q := mustParse(t, "created=like__2024")
	assert.Empty(t, q.Terms)
}

func TestParseMalformedTerm(t *testing.T) {
	params := url.Values{"created": {"2024-01-01"}}
	_, err := Parse(supplierSchema, params)
	require.Error(t, err)

	var fe apperr.FilterTermMalformedError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "created", fe.Field)
}

func TestParseBadLiteral(t *testing.T) {
	_, err := Parse(supplierSchema, url.Values{"created": {"gte__yesterday"}})
	require.True(t, apperr.IsFilterTermMalformed(err))
}

func TestParseBadWindow(t *testing.T) {
	for _, raw := range []string{"limit=abc", "limit=-1", "offset=x", "offset=-5"} {
		params, _ := url.ParseQuery(raw)
		_, err := Parse(supplierSchema, params)
		require.True(t, apperr.IsValidation(err), raw)
	}
}

func TestParseOrderFallbacks(t *testing.T) {
	for _, raw := range []string{"order_by=created", "order_by=up__created", "order_by=desc__password", "order_by="} {
		q := mustParse(t, raw)
		assert.Nil(t, q.Order, raw)
	}
}

func TestFindPageAfterFilterAndOrder(t *testing.T) {
	db := InitTestDB(t)
	seedSuppliers(t, db, 5)

	total, items := run(t, db, "created=gte__2024-01-01&order_by=desc__created&limit=2&offset=1")
	require.EqualValues(t, 5, total)
	require.Equal(t, []string{"Supplier 4", "Supplier 3"}, names(items))
}

func TestFindCountIgnoresWindow(t *testing.T) {
	db := InitTestDB(t)
	seedSuppliers(t, db, 5)

	cases := []struct {
		raw  string
		want []string
	}{
		{"", []string{"Supplier 1", "Supplier 2", "Supplier 3", "Supplier 4", "Supplier 5"}},
		{"limit=0&offset=0", []string{"Supplier 1", "Supplier 2", "Supplier 3", "Supplier 4", "Supplier 5"}},
		{"limit=3", []string{"Supplier 1", "Supplier 2", "Supplier 3"}},
		{"offset=3", []string{"Supplier 4", "Supplier 5"}},
		{"limit=10&offset=4", []string{"Supplier 5"}},
		{"limit=2&offset=9", []string{}},
	}
	for _, tc := range cases {
		total, items := run(t, db, tc.raw)
		require.EqualValues(t, 5, total, tc.raw)
		require.Equal(t, tc.want, names(items), tc.raw)
	}
}

func TestFindUnknownFieldIsNoop(t *testing.T) {
	db := InitTestDB(t)
	seedSuppliers(t, db, 3)

	wantTotal, want := run(t, db, "limit=2")
	gotTotal, got := run(t, db, "limit=2&password=eq__x&nope=gte__1")
	require.Equal(t, wantTotal, gotTotal)
	require.Equal(t, names(want), names(got))
}

func TestFindOperators(t *testing.T) {
	db := InitTestDB(t)
	seedSuppliers(t, db, 5)

	total, items := run(t, db, "created=lte__2024-01-02")
	require.EqualValues(t, 2, total)
	require.Equal(t, []string{"Supplier 1", "Supplier 2"}, names(items))

	total, items = run(t, db, "created=gte__2024-01-02&created=lte__2024-01-03")
	require.EqualValues(t, 2, total)
	require.Equal(t, []string{"Supplier 2", "Supplier 3"}, names(items))

	total, _ = run(t, db, "_key=neq__supplier-1")
	require.EqualValues(t, 4, total)

	total, items = run(t, db, "_key=eq__supplier-5")
	require.EqualValues(t, 1, total)
	require.Equal(t, "Supplier 5", items[0].Name)

	total, items = run(t, db, "_descriptive=like__PLIER+3")
	require.EqualValues(t, 1, total)
	require.Equal(t, "Supplier 3", items[0].Name)
}

func TestFindOrderIsStableOnTies(t *testing.T) {
	db := InitTestDB(t)
	same := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 4; i++ {
		s := models.Supplier{Name: fmt.Sprintf("Tie %d", i), Key: fmt.Sprintf("tie-%d", i)}
		s.Created = same
		require.NoError(t, db.Create(&s).Error)
	}

	_, first := run(t, db, "order_by=desc__created&limit=2")
	_, second := run(t, db, "order_by=desc__created&limit=2&offset=2")
	require.Equal(t, []string{"Tie 1", "Tie 2"}, names(first))
	require.Equal(t, []string{"Tie 3", "Tie 4"}, names(second))
}
