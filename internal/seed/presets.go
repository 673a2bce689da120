package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Preset is a named seeding profile. Presets can be built in or loaded from a
// YAML file so demo environments are reproducible.
type Preset struct {
	Name           string  `yaml:"name"`
	Users          int     `yaml:"users"`
	Logs           int     `yaml:"logs"`
	CommentsPerLog int     `yaml:"comments_per_log"`
	LikeRatio      float64 `yaml:"like_ratio"`
	Clean          bool    `yaml:"clean"`
}

// presetFile is the on-disk shape of a preset collection.
type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

var builtinPresets = []Preset{
	{Name: "Minimal", Users: 3, Logs: 5, CommentsPerLog: 1, LikeRatio: 0.1, Clean: true},
	{Name: "Demo", Users: 25, Logs: 120, CommentsPerLog: 4, LikeRatio: 0.25, Clean: true},
	{Name: "MegaPopulated", Users: 500, Logs: 5000, CommentsPerLog: 8, LikeRatio: 0.15, Clean: true},
}

// LoadPresets parses presets from a YAML file.
func LoadPresets(path string) ([]Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	var file presetFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse preset file: %w", err)
	}

	for i, p := range file.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset #%d has no name", i)
		}
		if p.Users < 0 || p.Logs < 0 || p.LikeRatio < 0 || p.LikeRatio > 1 {
			return nil, fmt.Errorf("preset %q has out-of-range values", p.Name)
		}
	}
	return file.Presets, nil
}

// FindPreset returns the named preset from the given list, falling back to
// built-ins when the list does not contain it.
func FindPreset(name string, presets []Preset) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range builtinPresets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// ApplyPreset runs the seeder configured from the given preset.
func ApplyPreset(db *gorm.DB, p Preset) error {
	s := NewSeeder(db, Options{
		NumUsers:       p.Users,
		NumLogs:        p.Logs,
		CommentsPerLog: p.CommentsPerLog,
		LikeRatio:      p.LikeRatio,
		ShouldClean:    p.Clean,
	})
	return s.Run()
}
