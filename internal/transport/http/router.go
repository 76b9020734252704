package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/travel_compensation/internal/handlers"
	"github.com/Skotchmaster/travel_compensation/internal/metrics"
	"github.com/Skotchmaster/travel_compensation/internal/middleware/auth"
	"github.com/Skotchmaster/travel_compensation/internal/models"
	"github.com/Skotchmaster/travel_compensation/internal/service"
)

type Deps struct {
	DB      *gorm.DB
	APIRoot string
	Gate    *auth.Gate
	Metrics *metrics.Metrics

	AuthHandler              *handlers.AuthHandler
	UserHandler              *handlers.UserHandler
	SupplierHandler          *handlers.SupplierHandler
	ReclamationHandler       *handlers.ReclamationHandler
	PaymentTypeHandler       *handlers.CatalogHandler[models.PaymentType]
	ReimbursementTypeHandler *handlers.CatalogHandler[models.ReimbursementType]
	StationHandler           *handlers.StationHandler
	SupplierUserInfoHandler  *handlers.SupplierUserInfoHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = handlers.ErrorHandler

	e.GET("/health/live", handlers.Live)
	e.GET("/health/ready", handlers.Ready(d.DB))
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}

	root := d.APIRoot
	if root == "" {
		root = "/api/v1"
	}
	v1 := e.Group(root)
	login := d.Gate.RequireLogin
	admin := d.Gate.RequireAdmin

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", d.AuthHandler.Register)
	authGroup.POST("/login", d.AuthHandler.Login)
	authGroup.POST("/logout", d.AuthHandler.Logout, login)
	authGroup.GET("/status", d.AuthHandler.Status, login)

	users := v1.Group("/user", login)
	users.GET("", d.UserHandler.GetUsers)
	users.GET("/:id", d.UserHandler.GetUser)
	users.PUT("/:id", d.UserHandler.UpdateUser)

	sup := d.SupplierHandler
	suppliers := v1.Group("/supplier")
	suppliers.GET("", sup.GetSuppliers, login)
	suppliers.POST("", sup.CreateSupplier, admin)
	suppliers.GET("/:id", sup.GetSupplier, login)
	suppliers.PUT("/:id", sup.UpdateSupplier, admin)
	suppliers.DELETE("/:id", sup.DeleteSupplier, admin)
	suppliers.GET("/:id/reclamations", sup.GetReclamations, login)
	suppliers.POST("/:id/reclamation", sup.CreateReclamation, login)
	suppliers.GET("/:id/payment_types", sup.GetPaymentTypes, login)
	suppliers.GET("/:id/reimbursement_types", sup.GetReimbursementTypes, login)
	suppliers.PUT("/:id/connect_payment_type", sup.Link(service.LinkPaymentType, true), admin)
	suppliers.PUT("/:id/disconnect_payment_type", sup.Link(service.LinkPaymentType, false), admin)
	suppliers.PUT("/:id/connect_reimbursement_type", sup.Link(service.LinkReimbursementType, true), admin)
	suppliers.PUT("/:id/disconnect_reimbursement_type", sup.Link(service.LinkReimbursementType, false), admin)
	suppliers.GET("/:id/station", sup.GetStations, login)
	suppliers.GET("/:id/station/search", sup.SearchStations, login)

	reclamations := v1.Group("/reclamation")
	reclamations.GET("", d.ReclamationHandler.GetReclamations, login)
	reclamations.GET("/:id", d.ReclamationHandler.GetReclamation, login)
	reclamations.PUT("/:id", d.ReclamationHandler.UpdateReclamation, admin)

	paymentTypes := v1.Group("/payment_type")
	paymentTypes.GET("", d.PaymentTypeHandler.List, login)
	paymentTypes.POST("", d.PaymentTypeHandler.Create, admin)
	paymentTypes.GET("/:id", d.PaymentTypeHandler.Get, login)
	paymentTypes.PUT("/:id", d.PaymentTypeHandler.Update, admin)

	reimbursementTypes := v1.Group("/reimbursement_type")
	reimbursementTypes.GET("", d.ReimbursementTypeHandler.List, login)
	reimbursementTypes.POST("", d.ReimbursementTypeHandler.Create, admin)
	reimbursementTypes.GET("/:id", d.ReimbursementTypeHandler.Get, login)
	reimbursementTypes.PUT("/:id", d.ReimbursementTypeHandler.Update, admin)

	stations := v1.Group("/station", login)
	stations.GET("", d.StationHandler.GetStations)
	stations.GET("/:id", d.StationHandler.GetStation)

	infos := v1.Group("/supplier_user_info", login)
	infos.GET("", d.SupplierUserInfoHandler.GetSupplierUserInfo)
	infos.PUT("", d.SupplierUserInfoHandler.SaveSupplierUserInfo)

	v1.GET("/admin/routes", handlers.ListRoutes, admin)
}
