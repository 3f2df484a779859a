package constants

// Context and session keys
const (
	ContextKeyAdmin        = "admin"
	ContextKeyAdminClaims  = "admin_claims"
	SessionKeyAdminToken   = "admin_token"
	SessionCookieName      = "wedding_session"
	AdminTokenSubject      = "admin"
	RevokedTokenKeyPrefix  = "revoked:"
	BlobCleanupFailedEvent = "blob_cleanup_failed"
)

// Invitation defaults
const (
	DefaultMaxGuests              = 1
	MinCodeSuffix                 = 1000
	MaxCodeSuffix                 = 9999
	DefaultCodeGenerationAttempts = 5
	MaxCodePrefixLength           = 40
	FallbackCodePrefix            = "invitado"
)

// Gallery defaults
const (
	DefaultSectionName        = "Ceremonia"
	DefaultSectionDescription = "Fotos de la ceremonia religiosa"
	DefaultMaxUploadBytes     = 10 * 1024 * 1024
)

// Guest removal policies
const (
	GuestRemovalKeep      = "keep"
	GuestRemovalDecrement = "decrement"
)
