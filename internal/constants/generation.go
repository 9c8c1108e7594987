package constants

// Sampling defaults applied when the client omits a field.
const (
	DefaultTemperature = 0.6
	DefaultTopP        = 0.9
	DefaultMaxTokens   = 8000
)

// Model allow-list and substitutions.
const (
	DefaultModel  = "gpt-4o"
	FallbackModel = "claude-3-5-sonnet"
	ImageGenModel = "gpt-4o"
)

// SupportedModels is the upstream allow-list, in listing order.
var SupportedModels = []string{
	"gpt-4o",
	"gpt-4o-mini",
	"claude-3-5-sonnet",
	"claude",
}

// Image generation prompt shaping.
const (
	ImageGenSystemPrompt = "You are a helpful artist, please draw a picture.Based on imagination, draw a picture with user message."
	ImageGenPromptPrefix = "Draw: "
	ImageGenStyle        = "photographic"
	DefaultAspectRatio   = "1:1"
)
