package endpoints

import (
	"github.com/apidashio/apidash/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterEndpoints(srv)
	RegisterKeys(srv)
	RegisterCampaigns(srv)
	RegisterStatus(srv)
}
