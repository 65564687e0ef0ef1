package app

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"moviespot/internal/config"
)

// Options holds the command line
type Options struct {
	ConfigPath  string
	EnvFile     string
	APIKey      string
	OMDbURL     string
	Permission  string
	LogPath     string
	Latitude    float64
	Longitude   float64
	Save        bool
	ShowVersion bool

	latSet bool
	lonSet bool
}

// ParseFlags parses args (without the program name)
func ParseFlags(args []string, output io.Writer) (*Options, error) {
	opts := &Options{}
	fs := flag.NewFlagSet("moviespot", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to the config file (default "+config.DefaultPath()+")")
	fs.StringVar(&opts.EnvFile, "env", "", "Path to a .env file (default ./.env when present)")
	fs.StringVar(&opts.APIKey, "api-key", "", "OMDb API key (overrides "+config.EnvAPIKey+")")
	fs.StringVar(&opts.OMDbURL, "omdb-url", "", "OMDb base URL")
	fs.StringVar(&opts.Permission, "permission", "", "Location permission policy: ask, granted or denied")
	fs.StringVar(&opts.LogPath, "log", "", "Path to the log file")
	fs.Float64Var(&opts.Latitude, "lat", 0, "Fixed latitude; implies the static position provider")
	fs.Float64Var(&opts.Longitude, "lon", 0, "Fixed longitude; implies the static position provider")
	fs.BoolVar(&opts.Save, "save", false, "Write the flag overrides back to the config file")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Print the version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lat":
			opts.latSet = true
		case "lon":
			opts.lonSet = true
		}
	})
	if opts.latSet != opts.lonSet {
		return nil, fmt.Errorf("-lat and -lon must be given together")
	}
	return opts, nil
}

// Apply overrides cfg with the flags that were given
func (o *Options) Apply(cfg *config.Config) {
	if o.APIKey != "" {
		cfg.OMDb.APIKey = o.APIKey
	}
	if o.OMDbURL != "" {
		cfg.OMDb.BaseURL = o.OMDbURL
	}
	if o.Permission != "" {
		cfg.Location.Permission = strings.ToLower(o.Permission)
	}
	if o.latSet && o.lonSet {
		cfg.Location.Provider = config.ProviderStatic
		cfg.Location.Latitude = o.Latitude
		cfg.Location.Longitude = o.Longitude
	}
}
