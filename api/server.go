package api

import (
	"context"
	"crypto/rsa"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"
	"go.mongodb.org/mongo-driver/mongo"
	"googlemaps.github.io/maps"

	"github.com/dumpwatch/dumpwatch-api/consts"
	"github.com/dumpwatch/dumpwatch-api/geo"
	"github.com/dumpwatch/dumpwatch-api/logmodule"
	"github.com/dumpwatch/dumpwatch-api/schema"
	"github.com/dumpwatch/dumpwatch-api/store"
	"github.com/dumpwatch/dumpwatch-api/utils"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store      store.IdentityCore
	mongoStore store.MongoStore

	// JWT private key
	jwtPrivateKey *rsa.PrivateKey
	jwtExpire     time.Duration

	// External services
	locator  geo.Locator
	resolver geo.LocationResolver

	metrics tally.Scope
}

// NewServer new instance of server
func NewServer(
	ormDB *gorm.DB,
	mongoClient *mongo.Client,
	mapClient *maps.Client,
	jwtKey *rsa.PrivateKey,
	metrics tally.Scope) *Server {
	return &Server{
		store:         store.NewIdentityStore(ormDB),
		mongoStore:    store.NewMongoStore(mongoClient, viper.GetString("mongo.database")),
		jwtPrivateKey: jwtKey,
		jwtExpire:     time.Duration(viper.GetInt("jwt.expire")) * time.Hour,
		locator: geo.NewGoogleLocator(mapClient,
			viper.GetFloat64("location.accuracy.high"),
			viper.GetFloat64("location.accuracy.balanced")),
		resolver: geo.NewGeocodingLocationResolver(mapClient),
		metrics:  metrics,
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

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.GET("/information", s.information)

	// api route other than `/information` will apply the following middleware
	apiRoute.Use(s.clientVersionGateway())

	authRoute := apiRoute.Group("/auth")
	{
		authRoute.POST("/signup", s.signUp)
		authRoute.POST("/signin", s.signIn)
	}

	// api route other than sign up and sign in will apply the following middleware
	apiRoute.Use(s.authMiddleware())
	apiRoute.POST("/auth/signout", s.signOut)

	apiRoute.Use(s.recognizeAccountMiddleware())

	accountRoute := apiRoute.Group("/accounts")
	{
		accountRoute.GET("/me", s.accountDetail)
		accountRoute.DELETE("/me", s.accountDelete)
	}

	apiRoute.GET("/profile", s.profileDetail)

	apiRoute.POST("/consent", s.recordConsent)
	apiRoute.POST("/location", s.currentLocation)

	reportRoute := apiRoute.Group("/reports")
	{
		reportRoute.GET("", s.listReports)
		reportRoute.POST("", s.submitReport)
		reportRoute.GET("/:reportID", s.getReport)
		reportRoute.POST("/:reportID/clean", s.cleanReport)
	}

	metricRoute := r.Group("/metrics")
	metricRoute.Use(logmodule.Ginrus("Metric"))
	metricRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))
	metricRoute.Use(s.apikeyAuthentication(viper.GetString("server.apikey.metric")))
	{
		metricRoute.GET("/reports", s.metricOpenReports)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
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
	err := s.store.Ping()
	if shouldInterupt(err, c) {
		return
	}

	err = s.mongoStore.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"android":                 viper.GetStringMap("clients.android"),
			"ios":                     viper.GetStringMap("clients.ios"),
			"accessibility_levels":    schema.AccessibilityLevels,
			"points_per_cleaned_site": consts.PointsPerCleanedSite,
		},
	})
}

// localize translates a message into the language the client accepts
func localize(c *gin.Context, messageID string, data map[string]interface{}) string {
	return utils.Localize(c.GetHeader("Accept-Language"), messageID, data)
}

// localizedError replaces the generic message of an error response with a
// translated status and translates every field error
func localizedError(c *gin.Context, obj ErrorResponse, messageID string, data map[string]interface{}, fields map[string]string) ErrorResponse {
	if messageID != "" {
		obj.Message = localize(c, messageID, data)
	}

	if len(fields) > 0 {
		obj.Fields = make(map[string]string, len(fields))
		for field, id := range fields {
			obj.Fields[field] = localize(c, id, nil)
		}
	}

	return obj
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
