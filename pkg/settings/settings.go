// Package settings loads the persisted auto-save options and turns them into
// immutable core.Config snapshots.
package settings

import (
	"github.com/aretw0/autosave/pkg/core"
)

// Default values match the options page shipped with the editor extension.
const (
	DefaultTimeDelay           = 5
	DefaultIgnoredFileTypes    = ""
	DefaultSaveAllOnDeactivate = true
	DefaultUseRegex            = true
)

// Settings is the persisted form of the options.
type Settings struct {
	// TimeDelay in seconds. Reserved: loaded and reported, never enforced.
	TimeDelay int `yaml:"time_delay" toml:"time_delay" json:"time_delay"`
	// IgnoredFileTypes holds suffixes or regular expressions separated by , ; or :
	IgnoredFileTypes    string `yaml:"ignored_file_types" toml:"ignored_file_types" json:"ignored_file_types"`
	SaveAllOnDeactivate bool   `yaml:"save_all_on_deactivate" toml:"save_all_on_deactivate" json:"save_all_on_deactivate"`
	UseRegex            bool   `yaml:"use_regex" toml:"use_regex" json:"use_regex"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		TimeDelay:           DefaultTimeDelay,
		IgnoredFileTypes:    DefaultIgnoredFileTypes,
		SaveAllOnDeactivate: DefaultSaveAllOnDeactivate,
		UseRegex:            DefaultUseRegex,
	}
}

// Policy converts the settings to the engine's raw policy.
func (s Settings) Policy() core.Policy {
	return core.Policy{
		IgnoredFileTypes:    s.IgnoredFileTypes,
		UseRegex:            s.UseRegex,
		SaveOnAppDeactivate: s.SaveAllOnDeactivate,
		TimeDelaySeconds:    s.TimeDelay,
	}
}

// Config compiles the settings into a snapshot.
func (s Settings) Config() core.Config {
	return s.Policy().Compile()
}
