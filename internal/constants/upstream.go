package constants

// ChatOn upstream endpoints.
const (
	UpstreamChatURL         = "https://api.chaton.ai/chats/stream"
	UpstreamStorageTemplate = "https://api.chaton.ai/storage/%s"
	// UpstreamStoragePrefix marks generated image paths that need a storage lookup.
	UpstreamStoragePrefix = "https://spc.unk/"
)

// Fixed request headers expected by the vendor.
const (
	HeaderClientTimeZone = "Client-time-zone"
	HeaderClientOptions  = "X-Cl-Options"

	UpstreamClientTimeZone = "-05:00"
	UpstreamUserAgent      = "ChatOn_Android/1.53.502"
	UpstreamAcceptLanguage = "en-US"
	UpstreamClientOptions  = "hb"
	UpstreamContentType    = "application/json; charset=UTF-8"
)

// Source tags sent as "source" in the upstream body.
const (
	SourceChat        = "chat/pro"
	SourceImageUpload = "chat/image_upload"
	SourceImageGen    = "chat/pro_image"
)
