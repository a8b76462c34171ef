package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/bitmark-inc/community-aid/auth"
	"github.com/bitmark-inc/community-aid/external/broker"
	"github.com/bitmark-inc/community-aid/external/imagestore"
	"github.com/bitmark-inc/community-aid/logmodule"
	"github.com/bitmark-inc/community-aid/schema"
	"github.com/bitmark-inc/community-aid/store"
)

const defaultCORSOrigin = "http://localhost:8080"

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Authenticator resolves credentials and account ids to identities
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*schema.Identity, error)
	Lookup(id string) (*schema.Identity, bool)
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	mongoStore store.MongoStore

	// Identity provider and session tokens
	directory Authenticator
	tokens    *auth.TokenIssuer

	// External services
	images    imagestore.ImageStore
	publisher broker.Publisher

	metrics *metrics
}

// NewServer new instance of server. The image store is optional.
func NewServer(
	mongoStore store.MongoStore,
	directory Authenticator,
	tokens *auth.TokenIssuer,
	images imagestore.ImageStore,
	publisher broker.Publisher) *Server {
	if publisher == nil {
		publisher = broker.Noop()
	}

	return &Server{
		mongoStore: mongoStore,
		directory:  directory,
		tokens:     tokens,
		images:     images,
		publisher:  publisher,
		metrics:    newMetrics(),
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

// Handler returns the routes of the server without listening
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

func corsConfig() cors.Config {
	origin := viper.GetString("server.cors.origin")
	if origin == "" {
		origin = defaultCORSOrigin
	}

	return cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))
	r.Use(cors.New(corsConfig()))
	r.Use(s.metrics.middleware())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Community Aid API is running")
	})

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))

	authRoute := apiRoute.Group("/auth")
	{
		authRoute.POST("/login", s.login)
		authRoute.GET("/me", s.authMiddleware(), s.me)
	}

	donationRoute := apiRoute.Group("/donations")
	{
		donationRoute.GET("", s.listDonations)
		donationRoute.POST("", s.createDonation)
		donationRoute.POST("/images", s.uploadDonationImage)
		donationRoute.GET("/:donationID", s.getDonation)
		donationRoute.PUT("/:donationID", s.updateDonation)
		donationRoute.DELETE("/:donationID", s.deleteDonation)
	}

	requestRoute := apiRoute.Group("/requests")
	{
		requestRoute.GET("", s.listRequests)
		requestRoute.POST("", s.createRequest)
		requestRoute.GET("/:requestID", s.getRequest)
		requestRoute.PUT("/:requestID", s.updateRequest)
		requestRoute.DELETE("/:requestID", s.deleteRequest)
	}

	r.GET("/metrics", s.metrics.handler())
	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.mongoStore.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

// announce publishes a listing change. Delivery problems never fail the request.
func (s *Server) announce(ctx context.Context, eventType, collection, id string) {
	err := s.publisher.Publish(ctx, broker.ListingEvent{
		Type:       eventType,
		Collection: collection,
		ID:         id,
		At:         time.Now().UTC(),
	})
	if err != nil {
		log.WithError(err).Warnf("publish %s event of %s/%s", eventType, collection, id)
	}
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
