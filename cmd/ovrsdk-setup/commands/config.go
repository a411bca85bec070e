package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aexvir/ovrsdk/provision"
)

const envPrefix = "OVRSDK"

// Config holds everything the setup command can be tuned with.
// Values come from flags, then OVRSDK_* environment variables, then defaults.
type Config struct {
	Version   string
	Page      string
	URL       string
	Archive   string
	Directory string
	Strict    bool
	Timeout   time.Duration
}

func DefaultConfig() Config {
	return Config{
		Version:   "1.32.0",
		Page:      provision.DefaultPage,
		Archive:   provision.DefaultArchive,
		Directory: provision.DefaultDirectory,
	}
}

// registerFlags declares the flags backing every [Config] field.
func registerFlags(flags *pflag.FlagSet) {
	defaults := DefaultConfig()

	flags.String("version", defaults.Version, "sdk version to provision")
	flags.String(
		"page",
		defaults.Page,
		fmt.Sprintf(
			"product page scraped for the download link; {{.Version}} is replaced, e.g. %s",
			provision.Template{Version: defaults.Version}.MustResolve(defaults.Page),
		),
	)
	flags.String("url", defaults.URL, "download the archive from this url instead of scraping the product page")
	flags.String("archive", defaults.Archive, "path the downloaded archive is written to")
	flags.String("directory", defaults.Directory, "directory the sdk is extracted into")
	flags.Bool("strict", defaults.Strict, "fail when a patch doesn't match instead of warning")
	flags.Duration("timeout", defaults.Timeout, "timeout for each http request; 0 disables it")
}

// loadConfig resolves the configuration from the flags and the environment.
func loadConfig(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return Config{}, fmt.Errorf("failed to bind flags: %w", err)
	}

	conf := Config{
		Version:   v.GetString("version"),
		Page:      v.GetString("page"),
		URL:       v.GetString("url"),
		Archive:   v.GetString("archive"),
		Directory: v.GetString("directory"),
		Strict:    v.GetBool("strict"),
		Timeout:   v.GetDuration("timeout"),
	}

	if err := provision.ValidateVersion(conf.Version); err != nil {
		return Config{}, err
	}

	if conf.Archive == "" || conf.Directory == "" {
		return Config{}, fmt.Errorf("archive and directory must be set")
	}

	if conf.Timeout < 0 {
		return Config{}, fmt.Errorf("timeout can't be negative: %s", conf.Timeout)
	}

	return conf, nil
}

// source picks where the archive comes from.
func (c Config) source() provision.Source {
	if c.URL != "" {
		return provision.DirectDownload(c.URL)
	}
	return provision.ScrapedDownload(c.Page)
}
