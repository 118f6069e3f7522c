// Package devapi is an in-memory implementation of the storefront REST API.
// It backs the package tests and `cmd/devapi` for local development.
package devapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-storefront-client/internal/config"
	"github.com/jrsteele09/go-storefront-client/token"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	issuer  *token.Issuer
	users   *UserStore
	catalog *ProductStore
	orders  *OrderStore
}

// New wires the routes over empty stores. Use Seed to load demo data.
func New(cfg config.Config) *Server {
	s := &Server{
		env:     cfg.GetEnv(),
		mux:     http.NewServeMux(),
		config:  cfg,
		issuer:  token.NewIssuer(cfg.GetJWTSecret(), cfg.GetAccessTokenTTL()),
		users:   NewUserStore(),
		catalog: NewProductStore(),
		orders:  NewOrderStore(),
	}

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) Users() *UserStore       { return s.users }
func (s *Server) Products() *ProductStore { return s.catalog }
func (s *Server) Orders() *OrderStore     { return s.orders }
func (s *Server) Issuer() *token.Issuer   { return s.issuer }

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
