package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid sonner.json",
		Detail:   "The sonner.json configuration file is malformed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid environment override",
		Detail:   "An SONNER_* environment variable could not be parsed.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range.",
	},

	// ============================================
	// CLI Errors (E140-E149)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Command failed",
		Detail:   "The command stopped with an error.",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Configuration file not found",
		Detail:   "The configuration file does not exist.",
	},

	// ============================================
	// Script Errors (E150-E159)
	// ============================================

	"E150": {
		Category: CategoryScript,
		Message:  "Invalid replay script",
		Detail:   "The replay script could not be read or parsed.",
	},
	"E151": {
		Category: CategoryScript,
		Message:  "Unknown replay operation",
		Detail:   "A replay step names an operation that does not exist.",
	},

	// ============================================
	// Server Errors (E160-E169)
	// ============================================

	"E160": {
		Category: CategoryServer,
		Message:  "Server failed",
		Detail:   "The feed server stopped with an error.",
	},
}
