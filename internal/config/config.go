package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Rorical/RoriSteer/internal/models"
)

const (
	DefaultBaseURL  = "https://www.neuronpedia.org"
	DefaultModelID  = "gemma-2-9b-it"
	DefaultStrength = 40

	searchPath = "/api/explanation/search"
	steerPath  = "/api/steer-chat"

	apiKeyEnv = "RORISTEER_API_KEY"
	homeEnv   = "RORISTEER_HOME"
)

// Profile is one named endpoint. Generation and DefaultStrength are optional
// overrides of the config-wide values.
type Profile struct {
	APIKey          string                     `json:"api_key"`
	BaseURL         string                     `json:"base_url,omitempty"`
	ModelID         string                     `json:"model_id"`
	Generation      *models.GenerationSettings `json:"generation,omitempty"`
	DefaultStrength *int                       `json:"default_strength,omitempty"`
}

type Config struct {
	Profiles        map[string]Profile         `json:"profiles"`
	ActiveProfile   string                     `json:"active_profile"`
	Generation      *models.GenerationSettings `json:"generation,omitempty"`
	DefaultStrength *int                       `json:"default_strength,omitempty"`
	currentProfile  *Profile
	envAPIKey       string
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	// A missing .env is the normal case.
	_ = godotenv.Load()
	config.envAPIKey = strings.TrimSpace(os.Getenv(apiKeyEnv))

	return config, nil
}

func (c *Config) IsValid() bool {
	return c.GetAPIKey() != ""
}

func (c *Config) GetAPIKey() string {
	if c.envAPIKey != "" {
		return c.envAPIKey
	}
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.APIKey
}

func (c *Config) GetModelID() string {
	if c.currentProfile == nil || c.currentProfile.ModelID == "" {
		return DefaultModelID
	}
	return c.currentProfile.ModelID
}

func (c *Config) GetBaseURL() string {
	if c.currentProfile == nil || c.currentProfile.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.currentProfile.BaseURL, "/")
}

func (c *Config) SearchURL() string {
	return c.GetBaseURL() + searchPath
}

func (c *Config) SteerURL() string {
	return c.GetBaseURL() + steerPath
}

// GenerationSettings returns the initial settings for a session.
func (c *Config) GenerationSettings() models.GenerationSettings {
	if c.currentProfile == nil {
		return c.GenerationFor(Profile{})
	}
	return c.GenerationFor(*c.currentProfile)
}

// GenerationFor resolves the initial settings for p: the profile override,
// then the config-wide block, then the built-in defaults.
func (c *Config) GenerationFor(p Profile) models.GenerationSettings {
	switch {
	case p.Generation != nil:
		return p.Generation.Normalize()
	case c.Generation != nil:
		return c.Generation.Normalize()
	default:
		return models.DefaultGenerationSettings()
	}
}

func (c *Config) InitialStrength() int {
	if c.currentProfile == nil {
		return c.StrengthFor(Profile{})
	}
	return c.StrengthFor(*c.currentProfile)
}

// StrengthFor resolves the strength newly selected features start at under p.
func (c *Config) StrengthFor(p Profile) int {
	switch {
	case p.DefaultStrength != nil:
		return models.ClampStrength(*p.DefaultStrength)
	case c.DefaultStrength != nil:
		return models.ClampStrength(*c.DefaultStrength)
	default:
		return DefaultStrength
	}
}

// LogPath is where the rotated log file lives, next to config.json.
func LogPath() (string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(configPath), "logs", "roristeer.log"), nil
}

func getConfigPath() (string, error) {
	var configDir string

	// Use RORISTEER_HOME if set, otherwise use user's home directory
	if home := os.Getenv(homeEnv); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".roristeer", "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	generation := models.DefaultGenerationSettings()
	config := &Config{
		Profiles: map[string]Profile{
			"default": {
				BaseURL: DefaultBaseURL,
				ModelID: DefaultModelID,
			},
		},
		ActiveProfile: "default",
		Generation:    &generation,
	}

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return saveConfig(c, configPath)
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// Fall back to any profile so a stale active_profile doesn't lock the user out
		for name, p := range c.Profiles {
			c.ActiveProfile = name
			profile = p
			exists = true
			break
		}
	}

	if !exists {
		return fmt.Errorf("no valid profiles found")
	}

	c.currentProfile = &profile
	return nil
}
