package config

// StorageConfig contains S3-compatible object storage configuration for
// product images. Endpoint may point at MinIO for local development.
type StorageConfig struct {
	Bucket        string `env:"BUCKET"          envDefault:"plantflix-images"`
	Endpoint      string `env:"ENDPOINT"        envDefault:""`
	Region        string `env:"REGION"          envDefault:"ap-south-1"`
	AccessKey     string `env:"ACCESS_KEY"`
	SecretKey     string `env:"SECRET_KEY"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:""`
}
