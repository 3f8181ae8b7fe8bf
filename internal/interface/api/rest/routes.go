package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth  = RouteApiV1 + "/auth"
	RouteLogin = RouteAuth + "/login"
	RouteMe    = RouteApiV1 + "/me"

	// client-scoped administration
	RouteUsers      = RouteApiV1 + "/users"
	RouteUser       = RouteUsers + "/:user_id"
	RouteBuckets    = RouteApiV1 + "/buckets"
	RouteBucketSize = RouteBuckets + "/:bucket_name/size"

	// assets
	RouteAssets = RouteApiV1 + "/assets"
	RouteAsset  = RouteAssets + "/:asset_type/*asset_path"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
