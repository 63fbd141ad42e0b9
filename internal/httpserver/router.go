package httpserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"frituurgros/internal/cartledger"
	orderrepo "frituurgros/internal/repository/order"
	accountsvc "frituurgros/internal/service/account"
	catalogsvc "frituurgros/internal/service/catalog"
	checkoutsvc "frituurgros/internal/service/checkout"
	sessionsvc "frituurgros/internal/service/session"
	zonesvc "frituurgros/internal/service/zone"
)

// Deps bundles the services the routes need.
type Deps struct {
	Accounts *accountsvc.Service
	Session  *sessionsvc.Service
	Catalog  *catalogsvc.Service
	Zones    *zonesvc.Service
	Checkout *checkoutsvc.Service
	Orders   orderrepo.Repository
	Carts    *cartledger.Manager
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())
	router.Use(cors.New(corsConfig(corsOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}

	router.POST("/signup", h.signup)
	router.POST("/login", h.login)

	// Public catalog reads: the marketing site shows products and zones
	// without a session.
	router.GET("/products", h.listProducts)
	router.GET("/products/:id", h.getProduct)
	router.GET("/categories", h.listCategories)
	router.GET("/zones", h.listZones)

	authed := router.Group("/", h.authRequired)
	authed.POST("/logout", h.logout)
	authed.GET("/session/role", h.sessionRole)

	client := authed.Group("/", h.activeClientRequired)
	client.GET("/cart", h.getCart)
	client.POST("/cart/lines", h.addCartLine)
	client.PATCH("/cart/lines/:index", h.updateCartLine)
	client.DELETE("/cart/lines/:index", h.removeCartLine)
	client.DELETE("/cart", h.clearCart)
	client.GET("/checkout/dates", h.checkoutDates)
	client.POST("/checkout", h.submitOrder)
	client.GET("/orders", h.listOwnOrders)
	client.GET("/orders/:id", h.getOwnOrder)

	admin := authed.Group("/admin", h.adminRequired)
	admin.GET("/clients", h.adminListClients)
	admin.POST("/clients/:id/approve", h.adminApproveClient)
	admin.POST("/clients/:id/suspend", h.adminSuspendClient)
	admin.POST("/clients/:id/refuse", h.adminRefuseClient)
	admin.PATCH("/clients/:id/terms", h.adminUpdateTerms)
	admin.GET("/products", h.adminListProducts)
	admin.POST("/products", h.adminCreateProduct)
	admin.PUT("/products/:id", h.adminUpdateProduct)
	admin.PATCH("/products/:id/active", h.adminSetProductActive)
	admin.GET("/categories", h.listCategories)
	admin.POST("/categories", h.adminCreateCategory)
	admin.GET("/zones", h.listZones)
	admin.POST("/zones", h.adminCreateZone)
	admin.PUT("/zones/:id", h.adminUpdateZone)
	admin.GET("/orders", h.adminListOrders)
	admin.POST("/orders/:id/status", h.adminSetOrderStatus)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cfg
}
