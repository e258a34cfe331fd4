package imghost

// Config represents the configuration for the image host client
type Config struct {
	// APIKey authenticates every upload request
	APIKey string

	// BaseURL is the image host API base URL
	BaseURL string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrInvalidConfig
	}
	if c.BaseURL == "" {
		return ErrInvalidConfig
	}
	return nil
}
