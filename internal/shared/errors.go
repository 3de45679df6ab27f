package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Store errors
	ErrStoreUnavailable = fmt.Errorf("store unavailable")
	ErrProfileNotFound  = fmt.Errorf("profile not found")
	ErrProfileCreation  = fmt.Errorf("profile creation failed")
	ErrArticleNotFound  = fmt.Errorf("article not found")
	ErrArticleSave      = fmt.Errorf("article save failed")
	ErrSettingsUpdate   = fmt.Errorf("settings update failed")
	ErrMigrationFailed  = fmt.Errorf("migration failed")

	// Generation errors
	ErrGenerationFailed  = fmt.Errorf("content generation failed")
	ErrServiceOverloaded = fmt.Errorf("generation service temporarily overloaded")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidIdentity = fmt.Errorf("invalid user identity")
	ErrInvalidLanguage = fmt.Errorf("invalid interface language")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
