package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
	"github.com/vladislavdragonenkov/shopease/internal/service/account"
	"github.com/vladislavdragonenkov/shopease/internal/service/address"
	"github.com/vladislavdragonenkov/shopease/internal/service/cart"
	"github.com/vladislavdragonenkov/shopease/internal/service/checkout"
	"github.com/vladislavdragonenkov/shopease/internal/service/payment"
	"github.com/vladislavdragonenkov/shopease/internal/service/wishlist"
	"github.com/vladislavdragonenkov/shopease/internal/session"
)

// SessionCookieName — имя cookie с идентификатором сессии.
const SessionCookieName = "shopease_session"

// Server связывает HTTP-маршруты витрины с сервисным слоем.
type Server struct {
	accounts  account.Service
	carts     cart.Service
	checkout  checkout.Service
	payments  payment.Service
	wishlists wishlist.Service
	addresses address.Service
	catalog   domain.CatalogRepository
	sessions  session.Store

	sessionTTL     time.Duration
	allowedOrigins []string
	logger         *log.Entry
}

// NewServer создаёт HTTP-сервер витрины.
func NewServer(
	accounts account.Service,
	carts cart.Service,
	checkoutSvc checkout.Service,
	payments payment.Service,
	wishlists wishlist.Service,
	addresses address.Service,
	catalog domain.CatalogRepository,
	sessions session.Store,
	sessionTTL time.Duration,
	allowedOrigins []string,
	logger *log.Entry,
) *Server {
	if logger == nil {
		logger = log.WithField("component", "http")
	}
	if sessionTTL <= 0 {
		sessionTTL = session.DefaultTTL
	}
	return &Server{
		accounts:       accounts,
		carts:          carts,
		checkout:       checkoutSvc,
		payments:       payments,
		wishlists:      wishlists,
		addresses:      addresses,
		catalog:        catalog,
		sessions:       sessions,
		sessionTTL:     sessionTTL,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// Router собирает gin-движок со всеми маршрутами API.
func (s *Server) Router() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	if len(s.allowedOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     s.allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	api := engine.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", s.register)
			auth.POST("/login", s.login)
			auth.POST("/logout", s.logout)
			auth.GET("/me", s.authRequired(), s.currentUser)
		}

		products := api.Group("/products")
		{
			products.GET("", s.listProducts)
			products.GET("/:productID", s.getProduct)
		}

		cartRoutes := api.Group("/cart", s.authRequired())
		{
			cartRoutes.GET("/:userID", s.getCart)
			cartRoutes.POST("/add", s.addCartItem)
			cartRoutes.POST("/update", s.updateCartItem)
			cartRoutes.DELETE("/remove/:cartItemID", s.removeCartItem)
		}

		wishlistRoutes := api.Group("/wishlist", s.authRequired())
		{
			wishlistRoutes.GET("", s.listWishlist)
			wishlistRoutes.POST("", s.addWishlistItem)
			wishlistRoutes.DELETE("/:itemID", s.removeWishlistItem)
		}

		addressRoutes := api.Group("/addresses", s.authRequired())
		{
			addressRoutes.GET("", s.listAddresses)
			addressRoutes.POST("", s.createAddress)
			addressRoutes.PUT("/:addressID", s.updateAddress)
			addressRoutes.DELETE("/:addressID", s.deleteAddress)
		}

		api.POST("/checkout", s.authRequired(), s.checkoutCart)

		orders := api.Group("/orders", s.authRequired())
		{
			orders.GET("", s.listOrders)
			orders.GET("/:orderID", s.getOrder)
			orders.POST("/:orderID/cancel", s.cancelOrder)
			orders.GET("/:orderID/payment", s.getPayment)
		}

		api.POST("/payment", s.authRequired(), s.settlePayment)

		admin := api.Group("/admin", s.authRequired(), s.adminRequired())
		{
			admin.GET("/orders", s.listAllOrders)
			admin.PUT("/orders/:orderID/status", s.updateOrderStatus)
		}
	}

	return engine
}
