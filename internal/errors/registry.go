package errors

import "net/http"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	Status   int
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Input Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryInput,
		Message:  "Failed to read document",
		Detail:   "The vnode document could not be read. Check that the path exists and is readable.",
		Status:   http.StatusBadRequest,
	},
	"E101": {
		Category: CategoryInput,
		Message:  "Unsupported document format",
		Detail:   "Documents may be JSON, YAML or MessagePack. The format is taken from the file extension unless given explicitly.",
		Status:   http.StatusUnsupportedMediaType,
	},
	"E102": {
		Category: CategoryDecode,
		Message:  "Failed to decode document",
		Detail:   "The document is not valid for its format.",
		Status:   http.StatusBadRequest,
	},

	// ============================================
	// Config Errors (E120-E149)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Failed to parse configuration",
		Detail:   "The configuration file is not valid YAML or JSON.",
		Status:   http.StatusInternalServerError,
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value is out of range.",
		Status:   http.StatusInternalServerError,
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No configuration file exists at the given path.",
		Status:   http.StatusInternalServerError,
	},

	// ============================================
	// Server Errors (E200-E219)
	// ============================================

	"E200": {
		Category: CategoryServer,
		Message:  "Invalid request body",
		Detail:   "The request body could not be read as a vnode document.",
		Status:   http.StatusBadRequest,
	},
	"E201": {
		Category: CategoryServer,
		Message:  "Request body too large",
		Detail:   "The request body exceeds server.maxBodyBytes.",
		Status:   http.StatusRequestEntityTooLarge,
	},

	// ============================================
	// CLI Errors (E160-E169)
	// ============================================

	"E160": {
		Category: CategoryCLI,
		Message:  "Failed to write output",
		Detail:   "The rendered markup could not be written to the output file.",
		Status:   http.StatusInternalServerError,
	},
}
