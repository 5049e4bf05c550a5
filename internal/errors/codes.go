package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The admin dashboard and marketing frontend map these codes to messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Franchise (FRANCHISE_) ====================
	FranchiseNotFound      = "FRANCHISE_NOT_FOUND"
	FranchiseZoneTaken     = "FRANCHISE_ZONE_TAKEN"
	FranchiseNotApproved   = "FRANCHISE_NOT_APPROVED"
	FranchiseInvalidPlan   = "FRANCHISE_INVALID_PLAN"
	FranchiseInvalidStatus = "FRANCHISE_INVALID_STATUS"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound      = "ORDER_NOT_FOUND"
	OrderInvalidStatus = "ORDER_INVALID_STATUS"
	OrderZoneRequired  = "ORDER_ZONE_REQUIRED"

	// ==================== Payouts (PAYOUT_) ====================
	PayoutAlreadyProcessed = "PAYOUT_ALREADY_PROCESSED"
	PayoutInvalidFigures   = "PAYOUT_INVALID_FIGURES"
	PayoutNotFound         = "PAYOUT_NOT_FOUND"

	// ==================== Stats (STATS_) ====================
	StatsZoneRequired = "STATS_ZONE_REQUIRED"

	// ==================== Content / Training (CONTENT_) ====================
	ContentNotFound   = "CONTENT_NOT_FOUND"
	ContentSlugExists = "CONTENT_SLUG_EXISTS"
	TrainingNotFound  = "TRAINING_NOT_FOUND"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalCacheError    = "INTERNAL_CACHE_ERROR"
)
