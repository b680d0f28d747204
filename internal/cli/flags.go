package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile string
	Debug   bool

	// Serve flags
	Host    string
	Port    int
	Breaker bool

	// Translate flags
	InputFile string
	BatchFile string
	Target    string
	Source    string
	Verbose   bool

	// Provider flags
	LLMModel    string
	TTSProvider string
	OpenAIVoice string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Host:        "0.0.0.0",
		Port:        8000,
		Target:      "en",
		Source:      "auto",
		TTSProvider: "google",
	}
}
