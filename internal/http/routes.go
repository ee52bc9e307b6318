package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

type RouterOptions struct {
	// Limiter guards the write routes; nil disables rate limiting.
	Limiter     Limiter
	CORSOrigins []string
	// TraceService enables Datadog request spans under that service name.
	TraceService string
	AccessLog    bool
}

func NewRouter(h *Handler, opt RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if opt.TraceService != "" {
		r.Use(gintrace.Middleware(opt.TraceService))
	}
	r.Use(RequestID(), Metrics(), CORS(opt.CORSOrigins))
	if opt.AccessLog {
		r.Use(AccessLog(h.Log))
	}

	write := []gin.HandlerFunc{}
	if opt.Limiter != nil {
		write = append(write, RateLimit(opt.Limiter, h.Log))
	}
	with := func(hf gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, write...), hf)
	}

	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/users", with(h.RegisterUser)...)
	r.GET("/findUser/:email", h.FindUser)
	r.GET("/joinedCommunities", h.JoinedCommunities)

	r.POST("/allCommunities", with(h.CreateCommunity)...)
	r.GET("/allCommunities", h.ListCommunities)
	r.GET("/allCommunities/:id", h.GetCommunity)
	r.GET("/userCommunity", h.CommunitiesByAdmin)

	r.PATCH("/joinCommunity/:id", with(h.JoinCommunity)...)
	r.PATCH("/updateUser/:id", with(h.RecordUserCommunity)...)
	r.PATCH("/leaveCommunity/:id", with(h.LeaveCommunity)...)

	r.POST("/post-in-community", with(h.CreatePost)...)
	r.GET("/view-posts/:communityID", h.ViewPosts)
	r.GET("/all-posts", h.AllPosts)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody{Success: false, Message: "route not found"})
	})
	return r
}
