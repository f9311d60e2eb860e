package archive

// Config holds configuration for the raw payload archive.
// When Endpoint is empty the archive is disabled entirely.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:""`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket raw payloads are archived in.
	Bucket string `mapstructure:"bucket" default:"parkpulse-raw"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// RetentionDays is how long raw snapshots are kept before pruning.
	RetentionDays int `mapstructure:"retention_days" default:"14"`
}

// Enabled reports whether an archive endpoint has been configured.
func (c Config) Enabled() bool {
	return c.Endpoint != ""
}
