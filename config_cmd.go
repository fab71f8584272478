package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/castkit/castkit/internal/budget"
	"github.com/castkit/castkit/speech"
)

const defaultConfig = `# Log debug output to stderr
debug: false

# Audio cache snapshot location (default ~/.cache/castkit/audio.cache.zst)
cache:
  audio_path: ""

# Speech generation
tts:
  # Synthesis provider: openai, google, elevenlabs, or local
  provider: "openai"
  default_voice: "alloy"
  # Audio format: mp3, wav, flac, or opus
  default_format: "mp3"
  # Quality tier: low, medium, high, or hd
  default_quality: "medium"
  # Playback speed, 0.25 to 4.0
  default_speed: 1.0

  # Reuse previously generated audio for identical content
  enable_caching: true
  cache_expiration_days: 30

  # Spend ceilings in dollars
  cost_limits:
    daily_limit: 5.0
    monthly_limit: 50.0
    per_request_limit: 0.50

  openai:
    # api_key: "sk-..."        # or set OPENAI_API_KEY
    # base_url: ""             # override for compatible endpoints
    timeout: "30s"

# Blob storage for generated audio (S3-compatible).
# Set via environment: CASTKIT_MINIO_ENDPOINT, CASTKIT_MINIO_ACCESS_KEY,
# CASTKIT_MINIO_SECRET_KEY, CASTKIT_MINIO_BUCKET.
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the castkit config file",
	Long:    "\nEdit the castkit config file. We'll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.",
	Example: "castkit config\ncastkit config --config path/to/config.yml",
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("Castkit", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		cfg, err := speech.LoadConfigFromViper()
		if err != nil {
			return err
		}
		limits, err := env.ParseAs[budget.Limits]()
		if err != nil {
			return fmt.Errorf("unable to load budget limits: %w", err)
		}

		// Never print credentials.
		if cfg.OpenAI.APIKey != "" {
			cfg.OpenAI.APIKey = "[set]"
		}

		out := struct {
			Debug  bool          `yaml:"debug"`
			TTS    speech.Config `yaml:"tts"`
			Budget budget.Limits `yaml:"budget"`
		}{
			Debug:  viper.GetBool("debug"),
			TTS:    cfg,
			Budget: limits,
		}

		b, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("unable to render configuration: %w", err)
		}
		fmt.Print(string(b))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil { //nolint:gosec
			return fmt.Errorf("could not write configuration file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil { // some other error occurred
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
