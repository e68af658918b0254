package config

import "flag"

// Flags holds command line overrides. Zero values leave the config unchanged.
type Flags struct {
	Config   string
	Axis     string
	FPS      int
	Scene    int
	LogLevel string
	LogFile  string
	Debug    bool
	// SaveConfig is where the effective config is written, if set.
	SaveConfig string
}

// RegisterFlags defines the override flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.StringVar(&f.Axis, "axis", "", "Axis conversion: yup or zup")
	fs.IntVar(&f.FPS, "fps", 0, "Frame rate of created scenes")
	fs.IntVar(&f.Scene, "scene", -1, "Index of the glTF scene to import")
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level: debug, info, warn, error")
	fs.StringVar(&f.LogFile, "logfile", "", "Log file path")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.SaveConfig, "saveconfig", "", "Write the effective config to this path")
	return f
}

// ApplyFlags applies CLI flag overrides to the config.
func (c *Config) ApplyFlags(f *Flags) {
	if f.Axis != "" {
		c.Axis = f.Axis
	}
	if f.FPS > 0 {
		c.FrameRate = f.FPS
	}
	if f.Scene >= 0 {
		c.Scene = f.Scene
	}
	if f.LogLevel != "" {
		c.Logging.Level = f.LogLevel
	}
	if f.Debug {
		c.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		c.Logging.File = f.LogFile
	}
}
