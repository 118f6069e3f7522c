package devapi

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteFunc("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteUsersCreate, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))

	// CATALOGUE - public reads, admin writes
	s.RegisterRouteFunc("GET "+RouteProducts, ChainMiddleware(s.ListProductsHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteProduct, ChainMiddleware(s.GetProductHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteProducts, ChainMiddleware(s.CreateProductHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))
	s.RegisterRouteFunc("PUT "+RouteProduct, ChainMiddleware(s.UpdateProductHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))
	s.RegisterRouteFunc("DELETE "+RouteProduct, ChainMiddleware(s.DeleteProductHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))

	// ORDERS - admin only
	s.RegisterRouteFunc("GET "+RouteOrders, ChainMiddleware(s.ListOrdersHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))
}
