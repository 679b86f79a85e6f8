package hashkache

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// SetupLogging sets the log level to match the gin mode
func SetupLogging(debug bool) {
	if debug {
		gin.SetMode(gin.DebugMode)
		log.SetLevel(log.DebugLevel)
	} else {
		gin.SetMode(gin.ReleaseMode)
		log.SetLevel(log.WarnLevel)
	}
}

var statusPrefixes = []struct {
	prefix string
	status int
}{
	{"Bad Request: ", http.StatusBadRequest},
	{"Not Found: ", http.StatusNotFound},
}

func handleErr(c *gin.Context, err error) {
	errorMsg := err.Error()
	for _, p := range statusPrefixes {
		if strings.HasPrefix(errorMsg, p.prefix) {
			c.JSON(p.status, gin.H{
				"message": strings.TrimPrefix(errorMsg, p.prefix),
			})
			return
		}
	}
	log.WithFields(log.Fields{"error": err}).
		WithContext(c).
		Error("Internal Server Error")
	// Rewrite error message so that we don't expose it to the user
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
}

//go:embed web/index.html api/openapi.yml
var assets embed.FS

// AddGUI adds the GUI endpoints
func AddGUI(r *gin.Engine) {
	// Serve HTML
	r.SetHTMLTemplate(template.Must(template.ParseFS(assets, "web/index.html")))
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", nil)
	})

	// Serve static files (openapi.yml)
	docs, err := fs.Sub(assets, "api")
	if err != nil {
		log.Fatal(err)
	}
	r.StaticFS("/docs", http.FS(docs))
}

// SetupRouter sets up the router. An empty corsOrigins disables CORS and
// "*" allows every origin.
func SetupRouter(conns *Connections, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())

	if len(corsOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowMethods = []string{"GET", "HEAD", "OPTIONS"}
		if contains(corsOrigins, "*") {
			corsConfig.AllowAllOrigins = true
		} else {
			corsConfig.AllowOrigins = corsOrigins
		}
		r.Use(cors.New(corsConfig))
	}

	r.GET("/encode/:id", func(c *gin.Context) {
		codec, err := conns.Get(c.Query("connection"))
		if err != nil {
			handleErr(c, err)
			return
		}

		id, hash, err := idToHash(codec, c.Param("id"))
		if err != nil {
			log.WithFields(log.Fields{"id": c.Param("id")}).Debug("Rejected id")
			handleErr(c, err)
			return
		}

		c.JSON(http.StatusOK, EncodeResponse{OriginalID: id, EncodedHash: hash})
	})

	r.GET("/decode/:hash", func(c *gin.Context) {
		codec, err := conns.Get(c.Query("connection"))
		if err != nil {
			handleErr(c, err)
			return
		}

		hash := c.Param("hash")
		id, err := hashToID(codec, hash)
		if err != nil {
			log.WithFields(log.Fields{"hash": hash}).Debug("Rejected hash")
			handleErr(c, err)
			return
		}

		c.JSON(http.StatusOK, DecodeResponse{Hash: hash, DecodedID: id})
	})

	return r
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
