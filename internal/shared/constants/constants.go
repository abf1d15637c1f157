package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// Gin context keys set by the auth middleware.
	ContextKeyUsername  = "username"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// AppName prefixes email subjects and the export file name.
	AppName = "TechFlow"
)
