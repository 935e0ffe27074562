package cmd

// Config carries the environment-backed settings for the application.
// StoreDriver selects the step state backend: "memory", "postgres", or
// "redis".
type Config struct {
	HTTPPort    string
	StoreDriver string
	StoreScope  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string

	ControlFilePath string
	OrdersFilePath  string
	AdminKeys       []string
}

// DefaultStoreScope partitions step state records when no explicit scope is
// configured. The value carries over from the legacy browser storage root.
const DefaultStoreScope = "stepper_app_data"
