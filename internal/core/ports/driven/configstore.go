package driven

import "github.com/Leafra-ai/LeafraSDK/internal/core/domain"

// ConfigStore persists application settings between sessions.
type ConfigStore interface {
	// Load reads the stored settings, falling back to defaults for a
	// missing file.
	Load() (domain.AppSettings, error)

	// Save writes the settings.
	Save(settings domain.AppSettings) error

	// Path returns the location of the backing file.
	Path() string
}
