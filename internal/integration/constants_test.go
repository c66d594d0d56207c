package integration_test

const (
	dbName      = "catalog_admin"
	dbUser      = "test_user"
	dbPassword  = "test_password"
	dbImageName = "postgres:17-alpine"
)
