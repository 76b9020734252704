package httpserver

import (
	"gorm.io/gorm"

	"github.com/Skotchmaster/travel_compensation/internal/handlers"
	"github.com/Skotchmaster/travel_compensation/internal/hash"
	"github.com/Skotchmaster/travel_compensation/internal/metrics"
	"github.com/Skotchmaster/travel_compensation/internal/middleware/auth"
	"github.com/Skotchmaster/travel_compensation/internal/models"
	"github.com/Skotchmaster/travel_compensation/internal/mykafka"
	"github.com/Skotchmaster/travel_compensation/internal/repo"
	"github.com/Skotchmaster/travel_compensation/internal/service"
	"github.com/Skotchmaster/travel_compensation/internal/tokens"
)

// Components are the process level collaborators the HTTP layer is built
// from. Publisher and Index may be nil.
type Components struct {
	DB           *gorm.DB
	APIRoot      string
	Secret       []byte
	BcryptCost   int
	TokenTTLDays int
	Publisher    mykafka.Publisher
	Index        service.StationIndex
	Metrics      *metrics.Metrics
}

func Wire(c Components) *Deps {
	users := &repo.UserRepo{DB: c.DB}
	suppliers := &repo.SupplierRepo{DB: c.DB}
	reclamations := &repo.ReclamationRepo{DB: c.DB}
	stations := &repo.StationRepo{DB: c.DB}
	hasher := hash.New(c.BcryptCost)
	codec := tokens.NewCodec(c.Secret, &repo.BlacklistRepo{DB: c.DB})

	events := service.Events{Publisher: c.Publisher}
	gate := &auth.Gate{Verifier: codec}
	if c.Metrics != nil {
		events.Observer = c.Metrics
		gate.Observer = c.Metrics
	}

	reclamationSvc := &service.ReclamationService{Reclamations: reclamations, Suppliers: suppliers, Events: events}
	stationSvc := &service.StationService{Stations: stations, Suppliers: suppliers, Index: c.Index}

	return &Deps{
		DB:      c.DB,
		APIRoot: c.APIRoot,
		Gate:    gate,
		Metrics: c.Metrics,

		AuthHandler: &handlers.AuthHandler{Svc: &service.AuthService{
			Users:        users,
			Codec:        codec,
			Hasher:       hasher,
			TokenTTLDays: c.TokenTTLDays,
			Events:       events,
		}},
		UserHandler: &handlers.UserHandler{Svc: &service.UserService{Users: users, Hasher: hasher}},
		SupplierHandler: &handlers.SupplierHandler{
			Svc:          &service.SupplierService{Suppliers: suppliers},
			Reclamations: reclamationSvc,
			Stations:     stationSvc,
		},
		ReclamationHandler: &handlers.ReclamationHandler{Svc: reclamationSvc},
		PaymentTypeHandler: &handlers.CatalogHandler[models.PaymentType]{
			Svc:           service.NewPaymentTypeService(repo.NewPaymentTypeRepo(c.DB)),
			Schema:        repo.PaymentTypeSchema,
			BySupplierKey: true,
		},
		ReimbursementTypeHandler: &handlers.CatalogHandler[models.ReimbursementType]{
			Svc:    service.NewReimbursementTypeService(repo.NewReimbursementTypeRepo(c.DB)),
			Schema: repo.ReimbursementTypeSchema,
		},
		StationHandler:          &handlers.StationHandler{Svc: stationSvc},
		SupplierUserInfoHandler: &handlers.SupplierUserInfoHandler{Svc: &service.SupplierUserInfoService{Infos: &repo.SupplierUserInfoRepo{DB: c.DB}, Suppliers: suppliers}},
	}
}
