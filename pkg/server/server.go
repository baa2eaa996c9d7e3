package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/apidashio/apidash/pkg/audit"
	"github.com/apidashio/apidash/pkg/config"
	"github.com/apidashio/apidash/pkg/server/middleware"
	"github.com/apidashio/apidash/pkg/server/store"
)

type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Config *config.DashConfig

	Authenticator *middleware.JWTAuthenticator
	Auditor       audit.Auditor

	EndpointsStore store.EndpointsStore
	KeysStore      store.KeysStore
	CampaignsStore store.CampaignsStore
	HealthStore    store.HealthStore

	srv *http.Server
}

func NewServer(
	authenticator *middleware.JWTAuthenticator,
	db *gorm.DB,
	host string,
	port string,
) *Server {
	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:        router,
		DB:            db,
		Authenticator: authenticator,
		srv:           srv,
	}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}
