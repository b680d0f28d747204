package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/saathi/internal/audio"
	"codeberg.org/snonux/saathi/internal/llm"
)

// Config is the resolved configuration of a saathi run
type Config struct {
	Host    string
	Port    int
	Breaker bool
	LLM     llm.Config
	TTS     audio.Config
}

// Addr returns the listen address of the server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	setDefaults()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".saathi" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".saathi")
	}

	// Environment variables, e.g. SAATHI_SERVER_PORT
	viper.SetEnvPrefix("SAATHI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setDefaults() {
	defaults := audio.DefaultProviderConfig()

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("translate.breaker", false)
	viper.SetDefault("tts.provider", defaults.Provider)
	viper.SetDefault("tts.openai_model", defaults.OpenAIModel)
	viper.SetDefault("tts.openai_voice", defaults.OpenAIVoice)
	viper.SetDefault("tts.openai_speed", defaults.OpenAISpeed)
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("llm.openai_key")
}

// llmModelFlag is the --llm-model flag once bindFlagsToViper has run.
var llmModelFlag *pflag.Flag

// GetLLMModel returns the chat model: an explicit --llm-model first, then
// OPENAI_MODEL, then the config file.
func GetLLMModel() string {
	if llmModelFlag != nil && llmModelFlag.Changed {
		if model := strings.TrimSpace(llmModelFlag.Value.String()); model != "" {
			return model
		}
	}
	if model := strings.TrimSpace(os.Getenv("OPENAI_MODEL")); model != "" {
		return model
	}
	if model := viper.GetString("llm.model"); model != "" {
		return model
	}
	return llm.DefaultModel
}

// LoadConfig resolves the configuration from viper
func LoadConfig() *Config {
	key := GetOpenAIKey()
	baseURL := viper.GetString("llm.base_url")

	voice := viper.GetString("tts.openai_voice")
	if voice == "" {
		voice = audio.DefaultProviderConfig().OpenAIVoice
	}

	return &Config{
		Host:    viper.GetString("server.host"),
		Port:    viper.GetInt("server.port"),
		Breaker: viper.GetBool("translate.breaker"),
		LLM: llm.Config{
			APIKey:  key,
			Model:   GetLLMModel(),
			BaseURL: baseURL,
		},
		TTS: audio.Config{
			Provider:      viper.GetString("tts.provider"),
			GoogleURL:     audio.GoogleTTSURL,
			OpenAIKey:     key,
			OpenAIBaseURL: baseURL,
			OpenAIModel:   viper.GetString("tts.openai_model"),
			OpenAIVoice:   voice,
			OpenAISpeed:   viper.GetFloat64("tts.openai_speed"),
		},
	}
}
