package cli

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/saathi/internal/testutil"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	llmModelFlag = nil
	t.Cleanup(func() {
		viper.Reset()
		llmModelFlag = nil
	})
}

func TestInitConfig(t *testing.T) {
	resetViper(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_MODEL", "")

	cfgPath := filepath.Join(t.TempDir(), "test-config.yaml")
	content := `server:
  port: 9100
llm:
  model: gpt-4o
  openai_key: config-key
tts:
  provider: openai
  openai_voice: nova
translate:
  breaker: true`
	testutil.CreateTestFile(t, cfgPath, []byte(content))

	InitConfig(cfgPath)
	cfg := LoadConfig()

	if cfg.Addr() != "0.0.0.0:9100" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if !cfg.Breaker {
		t.Error("Breaker = false, want true from config")
	}
	if cfg.LLM.Model != "gpt-4o" || cfg.LLM.APIKey != "config-key" {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	if cfg.TTS.Provider != "openai" || cfg.TTS.OpenAIVoice != "nova" || cfg.TTS.OpenAIKey != "config-key" {
		t.Errorf("TTS = %+v", cfg.TTS)
	}
	if cfg.TTS.OpenAIModel != "gpt-4o-mini-tts" {
		t.Errorf("TTS model = %q, want default", cfg.TTS.OpenAIModel)
	}
}

func TestInitConfigDefaults(t *testing.T) {
	resetViper(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("HOME", t.TempDir())

	InitConfig("")
	cfg := LoadConfig()

	if cfg.Addr() != "0.0.0.0:8000" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8000", cfg.Addr())
	}
	if cfg.Breaker {
		t.Error("Breaker should be off by default")
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("LLM model = %q", cfg.LLM.Model)
	}
	if cfg.TTS.Provider != "google" || cfg.TTS.OpenAIVoice != "alloy" {
		t.Errorf("TTS = %+v", cfg.TTS)
	}
}

func TestInitConfigEnvironment(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SAATHI_SERVER_PORT", "7000")
	t.Setenv("SAATHI_TRANSLATE_BREAKER", "true")

	InitConfig("")
	cfg := LoadConfig()

	if cfg.Port != 7000 {
		t.Errorf("Port = %d, want 7000 from SAATHI_SERVER_PORT", cfg.Port)
	}
	if !cfg.Breaker {
		t.Error("Breaker not enabled from SAATHI_TRANSLATE_BREAKER")
	}
}

func TestGetOpenAIKey(t *testing.T) {
	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{
			name:      "from environment",
			envKey:    "env-test-key",
			configKey: "config-test-key",
			expected:  "env-test-key",
		},
		{
			name:      "from config when no env",
			envKey:    "",
			configKey: "config-test-key",
			expected:  "config-test-key",
		},
		{
			name:      "empty when neither set",
			envKey:    "",
			configKey: "",
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv("OPENAI_API_KEY", tt.envKey)

			if tt.configKey != "" {
				viper.Set("llm.openai_key", tt.configKey)
			}

			got := GetOpenAIKey()
			if got != tt.expected {
				t.Errorf("GetOpenAIKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetLLMModelFlagWins(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		env      string
		expected string
	}{
		{"flag over environment", "gpt-flag", "gpt-env", "gpt-flag"},
		{"flag alone", "gpt-flag", "", "gpt-flag"},
		{"unset flag leaves environment", "", "gpt-env", "gpt-env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv("OPENAI_MODEL", tt.env)
			viper.Set("llm.model", "gpt-config")

			cmd := &cobra.Command{Use: "saathi"}
			cmd.PersistentFlags().String("llm-model", "", "")
			bindFlagsToViper(cmd)
			if tt.flag != "" {
				if err := cmd.PersistentFlags().Set("llm-model", tt.flag); err != nil {
					t.Fatal(err)
				}
			}

			if got := GetLLMModel(); got != tt.expected {
				t.Errorf("GetLLMModel() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGetLLMModel(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		config   string
		expected string
	}{
		{"environment wins", "gpt-env", "gpt-config", "gpt-env"},
		{"config", "", "gpt-config", "gpt-config"},
		{"default", "", "", "gpt-4o-mini"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv("OPENAI_MODEL", tt.env)
			if tt.config != "" {
				viper.Set("llm.model", tt.config)
			}

			if got := GetLLMModel(); got != tt.expected {
				t.Errorf("GetLLMModel() = %q, want %q", got, tt.expected)
			}
		})
	}
}
