package types

type Config struct {
	Environment      string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort       uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL      string `envconfig:"DATABASE_URL"`
	DatabaseMaxConns int32  `envconfig:"DATABASE_MAX_CONNS" default:"0"` // 0 leaves the pgxpool default
	ReadTimeoutSec   uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec  uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Session cookie
	CookieName       string `envconfig:"SESSION_COOKIE_NAME" default:"kb_session"`
	SessionMaxAgeSec int    `envconfig:"SESSION_MAX_AGE_SEC" default:"604800"` // 7 days

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	// Photo uploads
	UploadBucket        string   `envconfig:"UPLOAD_BUCKET" default:"kindbridge-photos"`
	UploadPrefix        string   `envconfig:"UPLOAD_PREFIX" default:"listings"`
	UploadMaxBytes      int64    `envconfig:"UPLOAD_MAX_BYTES" default:"5242880"` // 5MB
	UploadAllowedExts   []string `envconfig:"UPLOAD_ALLOWED_EXTS" default:"jpg,jpeg,png,gif,webp"`
	UploadDisabled      bool     `envconfig:"UPLOAD_DISABLED" default:"false"`
	MigrationsTableName string   `envconfig:"MIGRATIONS_TABLE" default:"schema_migrations"`
}
