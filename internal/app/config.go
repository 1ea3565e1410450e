package app

import (
	"time"

	"github.com/vk/nerbox/internal/launch"
)

// Config holds everything the CLI layer decides before the App takes over.
// Each binary fills in the fields its flags cover and leaves the rest zero.
type Config struct {
	LogLevel   string
	LogFormat  string
	ConfigFile string

	// Launcher.
	Mode     launch.Mode
	TextFile string

	// Installer. Empty values mean the resolved settings apply.
	ArchiveURL  string
	InstallName string

	// Tagging client.
	Host     string
	Port     int
	Wait     time.Duration
	Entities bool
	Files    []string
}
