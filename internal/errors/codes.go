package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The frontend maps these codes to its own display messages.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed payload
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // malformed id
	ValidationRequired     = "VALIDATION_REQUIRED"      // missing required field
	ValidationFailed       = "VALIDATION_FAILED"        // business rule violated

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // record missing
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // duplicate record
	ResourceConflict      = "RESOURCE_CONFLICT"       // conflicting state

	// ==================== Card definitions (CARD_) ====================
	CardNotFound    = "CARD_NOT_FOUND"    // definition missing
	CardInvalidType = "CARD_INVALID_TYPE" // unknown discriminant

	// ==================== Inventory items (ITEM_) ====================
	ItemNotFound      = "ITEM_NOT_FOUND"       // item missing
	ItemInvalidStatus = "ITEM_INVALID_STATUS"  // unknown status value
	ItemNotSold       = "ITEM_NOT_SOLD"        // disposition without sold status

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // not an image
	UploadMissingFile     = "UPLOAD_MISSING_FILE"      // no file in request
	UploadFailed          = "UPLOAD_FAILED"            // image host rejected it

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unexpected failure
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // store failure
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // upstream service failure
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"   // startup configuration
)
