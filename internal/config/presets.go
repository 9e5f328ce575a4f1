package config

// Presets are the scenario shapes used routinely against the CFD baseline
// runs (400 s at 20 Hz). The bundle path always comes from the caller.
var Presets = map[string]*Config{
	"baseline": {
		DataDir:    ".windload",
		SamplingHz: 20.0,
		Decimate:   1,
		Selection:  SelectionAll,
	},
	"asm": {
		DataDir:    ".windload",
		SamplingHz: 20.0,
		Decimate:   1,
		Selection:  SelectionASM,
	},
	// Transient at the start of the CFD run discarded, loads thinned to
	// half rate.
	"settled": {
		DataDir:    ".windload",
		SamplingHz: 20.0,
		TimeWindow: &WindowConfig{Min: 100, Max: 400},
		Decimate:   2,
		Selection:  SelectionAll,
	},
	"mount": {
		DataDir:    ".windload",
		SamplingHz: 20.0,
		Decimate:   1,
		Selection:  SelectionChannels,
		Channels:   []string{"OSS_Truss_6F", "OSS_GIR_6F", "OSS_CRING_6F"},
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not
// exist.
func GetPreset(name string) *Config {
	preset, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *preset
	if preset.TimeWindow != nil {
		window := *preset.TimeWindow
		cfg.TimeWindow = &window
	}
	cfg.Channels = append([]string(nil), preset.Channels...)
	return &cfg
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
