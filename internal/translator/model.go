package translator

import (
	"strings"

	"chaton2api-go/internal/constants"
)

// NormalizeModel maps any requested model onto the upstream allow-list.
// Empty selects the default model, unknown names fall back silently.
func NormalizeModel(model string) string {
	model = strings.TrimSpace(model)
	if model == "" {
		return constants.DefaultModel
	}
	if IsSupportedModel(model) {
		return model
	}
	return constants.FallbackModel
}

// IsSupportedModel reports whether model is on the allow-list.
func IsSupportedModel(model string) bool {
	for _, m := range constants.SupportedModels {
		if m == model {
			return true
		}
	}
	return false
}

// SourceTag returns the upstream source for a chat request.
func SourceTag(hasImage bool) string {
	if hasImage {
		return constants.SourceImageUpload
	}
	return constants.SourceChat
}
