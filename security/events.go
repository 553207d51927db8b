package security

// Event type constants for sign-in audit logging.
const (
	// EventProviderCallSucceeded is logged when a provider client operation succeeds
	EventProviderCallSucceeded = "provider_call_succeeded"

	// EventProviderCallFailed is logged when a provider client operation fails
	EventProviderCallFailed = "provider_call_failed"

	// EventSignInStarted is logged when a user is redirected to the provider
	EventSignInStarted = "sign_in_started"

	// EventSignInCompleted is logged when the callback yields a verified identity
	EventSignInCompleted = "sign_in_completed"

	// EventSignInFailed is logged when the callback fails for any reason
	EventSignInFailed = "sign_in_failed"

	// EventStateMismatch is logged when the callback state is unknown or expired (possible CSRF)
	EventStateMismatch = "state_mismatch"
)
