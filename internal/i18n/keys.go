// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyWelcome       = "welcome"
	KeyNotFound      = "not_found"
	KeyInternalError = "internal_error"
	KeyRateLimited   = "rate_limited"
	KeyConflict      = "conflict"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthForbidden          = "auth.forbidden"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthUserInactive       = "auth.user_inactive"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthAdminRequired      = "auth.admin_required"
	KeyAuthAnalystRequired    = "auth.analyst_required"
	KeyAuthSupplierRequired   = "auth.supplier_required"
	KeyAuthSignupSuccess      = "auth.signup_success"

	// Resources
	KeyResourceNotFound     = "resource.not_found"
	KeyResourceDeleted      = "resource.deleted"
	KeyResourceInvalidRef   = "resource.invalid_reference"
	KeyResourceInvalidInput = "resource.invalid_input"

	// Survey
	KeySurveySubmitted = "survey.submitted"
	KeyFileUploaded    = "survey.file_uploaded"

	// Supply chain
	KeySupplyChainImported = "supply_chain.imported"

	// Satellite
	KeySatelliteGenerated = "satellite.generated"

	// Admin
	KeyAdminSettingsUpdated = "admin.settings_updated"
	KeyNotificationRead     = "admin.notification_read"

	// Seed
	KeySeedCompleted = "seed.completed"
	KeySeedReset     = "seed.reset"
	KeySeedExists    = "seed.exists"

	// Validation
	KeyValidationInvalid = "validation.invalid"
)
