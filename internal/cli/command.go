package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/saathi/internal"
)

// RunFunc is the body of a command
type RunFunc func(cmd *cobra.Command, args []string) error

// Actions are the command bodies, supplied by the main package
type Actions struct {
	Serve     RunFunc
	Translate RunFunc
	Models    RunFunc
}

// CreateRootCommand creates and configures the root cobra command. Running
// it without a subcommand starts the server.
func CreateRootCommand(flags *Flags, actions Actions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "saathi",
		Short: "Narration backend for translation, summaries and speech",
		Long: `saathi serves the narration frontend: it translates article text
through a chain of free translation providers, summarizes articles with
OpenAI and synthesizes speech in English, Tamil and Hindi.

Examples:
  saathi                              # Start the HTTP server (default)
  saathi serve --port 9000            # Start the server on another port
  saathi translate -t ta "Hello"      # Translate once through the chain
  saathi translate -t hi --file a.txt # Translate a file
  saathi translate --batch lines.txt  # Translate a file line by line
  saathi models                       # List usable OpenAI models`,
		Args:         cobra.NoArgs,
		Version:      internal.Version,
		SilenceUsage: true,
		RunE:         actions.Serve,
	}

	rootCmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.saathi.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable development logging")
	rootCmd.PersistentFlags().StringVar(&flags.LLMModel, "llm-model", "", "OpenAI chat model for summaries (default gpt-4o-mini)")
	setupServeFlags(rootCmd.Flags(), flags)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  actions.Serve,
	}
	setupServeFlags(serveCmd.Flags(), flags)

	translateCmd := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text once through the provider chain",
		Long: `Translate text through LibreTranslate, Google and MyMemory, in that
order, and print the first accepted translation. When every provider
fails the original text is printed.`,
		Args: cobra.ArbitraryArgs,
		RunE: actions.Translate,
	}
	translateCmd.Flags().StringVar(&flags.InputFile, "file", "", "Read the text from a file")
	translateCmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate every line of a file separately (\"ta = text\" sets the target per line)")
	translateCmd.Flags().StringVarP(&flags.Target, "target", "t", flags.Target, "Target language code")
	translateCmd.Flags().StringVarP(&flags.Source, "source", "s", flags.Source, "Source language code or auto")
	translateCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Print every provider attempt to stderr")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "List available OpenAI models for the current API key",
		Args:  cobra.NoArgs,
		RunE:  actions.Models,
	}

	rootCmd.AddCommand(serveCmd, translateCmd, modelsCmd)

	bindFlagsToViper(rootCmd)

	return rootCmd
}

func setupServeFlags(fs *pflag.FlagSet, flags *Flags) {
	fs.StringVar(&flags.Host, "host", flags.Host, "Listen address")
	fs.IntVarP(&flags.Port, "port", "p", flags.Port, "Listen port")
	fs.BoolVar(&flags.Breaker, "breaker", false, "Skip translation providers that keep failing for a while")
	fs.StringVar(&flags.TTSProvider, "tts-provider", flags.TTSProvider, "Speech provider: google or openai")
	fs.StringVar(&flags.OpenAIVoice, "openai-voice", "", "OpenAI voice: alloy, ash, coral, echo, fable, nova, onyx, sage, shimmer")
}

// bindFlagsToViper binds the root flags. Flags of the serve subcommand are
// bound when it runs, see BindServeFlags.
func bindFlagsToViper(cmd *cobra.Command) {
	llmModelFlag = cmd.PersistentFlags().Lookup("llm-model")
	viper.BindPFlag("llm.model", llmModelFlag)
	BindServeFlags(cmd.Flags())
}

// BindServeFlags binds the server flags of fs, the flag set of either the
// root or the serve command.
func BindServeFlags(fs *pflag.FlagSet) {
	viper.BindPFlag("server.host", fs.Lookup("host"))
	viper.BindPFlag("server.port", fs.Lookup("port"))
	viper.BindPFlag("translate.breaker", fs.Lookup("breaker"))
	viper.BindPFlag("tts.provider", fs.Lookup("tts-provider"))
	viper.BindPFlag("tts.openai_voice", fs.Lookup("openai-voice"))
}
