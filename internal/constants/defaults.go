package constants

const (
	// DefaultConfigPath is the default location of the caretend database
	DefaultConfigPath = "~/.config/caretend/caretend.db"

	// DefaultHydrationTarget is the default daily glasses-of-water goal
	DefaultHydrationTarget = 8

	// KeyringService is the service name used for OS keyring entries
	KeyringService = "caretend"

	// KeyringConnectionKey is the keyring key holding the shared-store connection string
	KeyringConnectionKey = "circle-connection-string"
)

// DefaultVitalTypes is the vital set checked when a vitals item has no explicit filter.
// Systolic stands in for the combined blood pressure check.
var DefaultVitalTypes = []string{"systolic", "glucose", "heartRate", "weight"}

// Medication time slots
const (
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
	SlotEvening   = "evening"
	SlotNight     = "night"
)
