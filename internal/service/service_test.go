package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/filter"
	"github.com/Skotchmaster/travel_compensation/internal/hash"
	"github.com/Skotchmaster/travel_compensation/internal/models"
	"github.com/Skotchmaster/travel_compensation/internal/mykafka"
	"github.com/Skotchmaster/travel_compensation/internal/repo"
	"github.com/Skotchmaster/travel_compensation/internal/service/search"
	"github.com/Skotchmaster/travel_compensation/internal/skanetrafiken"
	"github.com/Skotchmaster/travel_compensation/internal/tokens"
)

type published struct {
	Topic string
	Key   string
	Event any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{Topic: topic, Key: key, Event: event})
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type fixture struct {
	db        *gorm.DB
	pub       *recordingPublisher
	codec     *tokens.Codec
	users     *repo.UserRepo
	suppliers *repo.SupplierRepo
	auth      *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.All()...))

	f := &fixture{
		db:        db,
		pub:       &recordingPublisher{},
		users:     &repo.UserRepo{DB: db},
		suppliers: &repo.SupplierRepo{DB: db},
	}
	f.codec = tokens.NewCodec([]byte("test-secret"), &repo.BlacklistRepo{DB: db})
	f.auth = &AuthService{
		Users:        f.users,
		Codec:        f.codec,
		Hasher:       hash.New(4),
		TokenTTLDays: 1,
		Events:       Events{Publisher: f.pub},
	}
	return f
}

func (f *fixture) register(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), RegisterRequest{
		Name: "Anna", Email: email, Password: "secret1", AgreedTerms: true,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) supplier(t *testing.T, key string) *models.Supplier {
	t.Helper()
	s := &models.Supplier{Name: "Supplier " + key, Key: key}
	require.NoError(t, f.suppliers.Create(context.Background(), s))
	return s
}

func TestRegisterValidates(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Register(context.Background(), RegisterRequest{Name: "Anna", Email: "not-an-email", Password: "secret1"})
	var ve apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "agreed_terms")
	assert.NotContains(t, ve.Fields, "name")
	assert.Empty(t, f.pub.events)
}

func TestRegisterRejectsEmailInAnyCase(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "anna@example.com")
	require.NotZero(t, u.ID)
	require.NotEqual(t, "secret1", u.Password)

	_, err := f.auth.Register(context.Background(), RegisterRequest{
		Name: "Other", Email: "ANNA@Example.com", Password: "secret2", AgreedTerms: true,
	})
	require.True(t, apperr.IsConflict(err))
	require.EqualError(t, err, "User already exists")

	require.Len(t, f.pub.events, 1)
	ev := f.pub.events[0]
	require.Equal(t, mykafka.TopicUserEvents, ev.Topic)
	require.Equal(t, mykafka.EventUserRegistered, ev.Event.(mykafka.UserEvent).Type)
}

func TestLoginAndLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "anna@example.com")

	_, _, err := f.auth.Login(ctx, LoginRequest{Email: "anna@example.com", Password: "wrong"})
	require.ErrorIs(t, err, apperr.ErrInvalidLogin)
	_, _, err = f.auth.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	require.ErrorIs(t, err, apperr.ErrInvalidLogin)

	got, token, err := f.auth.Login(ctx, LoginRequest{Email: "Anna@Example.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	id, err := f.codec.Verify(ctx, token)
	require.NoError(t, err)
	require.Equal(t, u.ID, id.SubjectID)
	require.False(t, id.IsAdmin)

	me, err := f.auth.Status(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "anna@example.com", me.Email)

	require.NoError(t, f.auth.Logout(ctx, id, token))
	require.NoError(t, f.auth.Logout(ctx, id, token))
	_, err = f.codec.Verify(ctx, token)
	require.ErrorIs(t, err, apperr.ErrTokenRevoked)

	last := f.pub.events[len(f.pub.events)-1]
	require.Equal(t, mykafka.EventUserLoggedOut, last.Event.(mykafka.UserEvent).Type)
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.pub.err = errors.New("broker down")

	u := f.register(t, "anna@example.com")
	require.NotZero(t, u.ID)
}

func TestUserUpdatePermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anna := f.register(t, "anna@example.com")
	bob := f.register(t, "bob@example.com")
	svc := &UserService{Users: f.users, Hasher: hash.New(4)}

	name := "Anna B"
	annaID := tokens.Identity{SubjectID: anna.ID}

	_, err := svc.Update(ctx, annaID, bob.ID, UpdateUserRequest{Name: &name})
	require.ErrorIs(t, err, apperr.ErrInsufficientPrivilege)

	admin := true
	_, err = svc.Update(ctx, annaID, anna.ID, UpdateUserRequest{Admin: &admin})
	require.ErrorIs(t, err, apperr.ErrInsufficientPrivilege)

	taken := "BOB@example.com"
	_, err = svc.Update(ctx, annaID, anna.ID, UpdateUserRequest{Email: &taken})
	require.True(t, apperr.IsConflict(err))

	updated, err := svc.Update(ctx, annaID, anna.ID, UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Anna B", updated.Name)
	require.Equal(t, "Anna B", updated.Descriptive)

	promoted, err := svc.Update(ctx, tokens.Identity{SubjectID: 99, IsAdmin: true}, bob.ID, UpdateUserRequest{Admin: &admin})
	require.NoError(t, err)
	require.True(t, promoted.Admin)
}

func TestReclamationLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anna := f.register(t, "anna@example.com")
	bob := f.register(t, "bob@example.com")
	sup := f.supplier(t, "sj")

	svc := &ReclamationService{
		Reclamations: &repo.ReclamationRepo{DB: f.db},
		Suppliers:    f.suppliers,
		Events:       Events{Publisher: f.pub},
	}
	annaID := tokens.Identity{SubjectID: anna.ID}
	bobID := tokens.Identity{SubjectID: bob.ID}
	adminID := tokens.Identity{SubjectID: 1000, IsAdmin: true}

	expected := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	actual := expected.Add(45 * time.Minute)
	req := ReclamationRequest{ExpectedArrival: &expected, ActualArrival: &actual, VehicleNumber: " 1234 "}

	_, err := svc.Create(ctx, annaID, sup.ID, ReclamationRequest{})
	require.True(t, apperr.IsValidation(err))

	_, err = svc.Create(ctx, annaID, 999, req)
	require.EqualError(t, err, "No supplier found with that id")

	rec, err := svc.Create(ctx, annaID, sup.ID, req)
	require.NoError(t, err)
	require.False(t, rec.Approved)
	require.Equal(t, anna.ID, rec.UserID)
	require.Equal(t, "1234", rec.VehicleNumber)
	require.Contains(t, rec.Descriptive, "Supplier sj")

	_, err = svc.Create(ctx, bobID, sup.ID, req)
	require.NoError(t, err)

	_, err = svc.Get(ctx, bobID, rec.ID)
	require.True(t, apperr.IsNotFound(err))
	got, err := svc.Get(ctx, adminID, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.ID, got.ID)

	count, items, err := svc.List(ctx, annaID, 0, filter.Query{})
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	require.Equal(t, rec.ID, items[0].ID)

	count, _, err = svc.List(ctx, adminID, sup.ID, filter.Query{})
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	_, _, err = svc.List(ctx, adminID, 999, filter.Query{})
	require.True(t, apperr.IsNotFound(err))

	_, err = svc.Adjudicate(ctx, rec.ID, AdjudicateRequest{})
	require.True(t, apperr.IsValidation(err))

	approved, refund := true, 49.5
	out, err := svc.Adjudicate(ctx, rec.ID, AdjudicateRequest{Approved: &approved, Refund: &refund})
	require.NoError(t, err)
	require.True(t, out.Approved)
	require.InDelta(t, 49.5, *out.Refund, 0.001)

	last := f.pub.events[len(f.pub.events)-1]
	require.Equal(t, mykafka.TopicReclamationEvents, last.Topic)
	ev := last.Event.(mykafka.ReclamationEvent)
	require.Equal(t, mykafka.EventReclamationAdjudged, ev.Type)
	require.True(t, ev.Approved)
}

func TestCatalogConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewPaymentTypeService(repo.NewPaymentTypeRepo(f.db))

	cash, err := svc.Create(ctx, CatalogRequest{Name: "Cash", Key: "cash"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CatalogRequest{Name: "Cash again", Key: "cash"})
	require.EqualError(t, err, "payment_type already exists")

	card, err := svc.Create(ctx, CatalogRequest{Name: "Card", Key: "card"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, card.ID, CatalogRequest{Name: "Card", Key: "cash"})
	require.True(t, apperr.IsConflict(err))

	same, err := svc.Update(ctx, cash.ID, CatalogRequest{Name: "Coins", Key: "cash"})
	require.NoError(t, err)
	require.Equal(t, "Coins", same.Name)
}

func TestSupplierKeyConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := &SupplierService{Suppliers: f.suppliers}

	s, err := svc.Create(ctx, CatalogRequest{Name: "SJ", Key: "sj"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CatalogRequest{Name: "SJ 2", Key: "sj"})
	require.EqualError(t, err, "supplier already exists")

	err = svc.Connect(ctx, LinkPaymentType, s.ID, LinkRequest{})
	require.True(t, apperr.IsValidation(err))
}

type fakeIndex struct {
	indexed []models.Station
}

func (f *fakeIndex) IndexStations(_ context.Context, stations []models.Station) error {
	f.indexed = stations
	return nil
}

func (f *fakeIndex) SearchStations(_ context.Context, supplierID uint, query string, from, size int) (int64, []search.StationDoc, error) {
	return 1, []search.StationDoc{{ID: 1, Name: query, SupplierID: supplierID}}, nil
}

func TestStationSearchAndLegacyValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sup := f.supplier(t, "sj")
	svc := &StationService{Stations: &repo.StationRepo{DB: f.db}, Suppliers: f.suppliers}

	_, _, err := svc.Search(ctx, sup.ID, "lund", 0, 10)
	require.EqualError(t, err, "station search is not configured")

	_, err = svc.LegacySearch(ctx, "", "l")
	var ve apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "filter")
	require.Contains(t, ve.Fields, "supplier_key")

	svc.Index = &fakeIndex{}
	total, docs, err := svc.Search(ctx, sup.ID, "lund", 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, sup.ID, docs[0].SupplierID)

	_, _, err = svc.Search(ctx, 999, "lund", 0, 10)
	require.True(t, apperr.IsNotFound(err))
}

type stopList []skanetrafiken.Stop

func (s stopList) Stops(context.Context) ([]skanetrafiken.Stop, error) { return s, nil }

func TestSetupIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	idx := &fakeIndex{}
	setup := &SetupService{
		Users:        f.users,
		Suppliers:    f.suppliers,
		PaymentTypes: NewPaymentTypeService(repo.NewPaymentTypeRepo(f.db)),
		Stations:     &StationService{Stations: &repo.StationRepo{DB: f.db}, Suppliers: f.suppliers, Index: idx},
		Hasher:       hash.New(4),
	}

	admin, err := setup.EnsureAdmin(ctx, "admin@example.com", "secret1")
	require.NoError(t, err)
	require.True(t, admin.Admin)
	again, err := setup.EnsureAdmin(ctx, "ADMIN@example.com", "other")
	require.NoError(t, err)
	require.Equal(t, admin.ID, again.ID)

	stops := stopList{{ID: "80000", Name: "Lund Central"}, {ID: "80100", Name: "Malmö C"}}
	res, err := setup.SetupSkanetrafiken(ctx, stops)
	require.NoError(t, err)
	require.Equal(t, ImportResult{Created: 2}, res)
	require.Len(t, idx.indexed, 2)

	res, err = setup.SetupSkanetrafiken(ctx, append(stops, skanetrafiken.Stop{ID: "80200", Name: "Ystad"}))
	require.NoError(t, err)
	require.Equal(t, ImportResult{Created: 1, Skipped: 2}, res)
	require.Len(t, idx.indexed, 3)

	sup, err := f.suppliers.GetByKey(ctx, skanetrafiken.SupplierKey)
	require.NoError(t, err)
	require.Equal(t, "Skånetrafiken", sup.Name)
	types, err := f.suppliers.PaymentTypes(ctx, sup.ID)
	require.NoError(t, err)
	require.Len(t, types, 3)
}
