package devapi

// Route path constants
const (
	RouteAuthLogin   = "/auth/login"
	RouteUsersCreate = "/users/create"
	RouteProducts    = "/products"
	RouteProduct     = "/products/{id}"
	RouteOrders      = "/orders"
)
