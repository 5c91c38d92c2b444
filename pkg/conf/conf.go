package conf

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/liucxer/least-squares/pkg/csv"
)

const (
	FormatCsv    = "csv"
	FormatTable  = "table"
	FormatParams = "params"
)

type LogConf struct {
	Name  string `toml:"name"`
	Level string `toml:"level"`
}

// InputConf describes where the x and y series are read from. The defaults
// read fifteen degree days (column 14) against energy use (column 2) for one
// year of daily rows.
type InputConf struct {
	File       string `toml:"file"`
	XIndex     int    `toml:"xIndex"`
	YIndex     int    `toml:"yIndex"`
	MaxRows    int    `toml:"maxRows"`
	Delimiter  string `toml:"delimiter"`
	SkipHeader *bool  `toml:"skipHeader"`
}

type OutputConf struct {
	Format    string `toml:"format"`
	Precision int32  `toml:"precision"`
}

type Config struct {
	Log    LogConf    `toml:"log"`
	Input  InputConf  `toml:"input"`
	Output OutputConf `toml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	conf := newConfig()
	conf.SetDefaults()
	return conf
}

// newConfig marks the numeric input keys unset so an explicit 0 in a file
// survives SetDefaults.
func newConfig() *Config {
	return &Config{
		Input: InputConf{XIndex: -1, YIndex: -1, MaxRows: -1},
	}
}

// Load reads and validates a TOML configuration file.
func Load(path string) (*Config, error) {
	bts, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("os.ReadFile err:%v", err)
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(string(bts))
}

// Parse decodes TOML data, fills defaults for missing keys and validates.
func Parse(data string) (*Config, error) {
	conf := newConfig()
	metaData, err := toml.Decode(data, conf)
	if err != nil {
		logrus.Errorf("toml.Decode, err:%v", err)
		return nil, errors.Wrap(err, "decode config")
	}
	if undecoded := metaData.Undecoded(); len(undecoded) != 0 {
		logrus.Warnf("unknown config keys: %v", undecoded)
	}

	conf.SetDefaults()
	if err = conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (conf *Config) SetDefaults() {
	if conf.Log.Name == "" {
		conf.Log.Name = "least_squares"
	}
	if conf.Log.Level == "" {
		conf.Log.Level = "Info"
	}

	if conf.Input.XIndex < 0 {
		conf.Input.XIndex = 14
	}
	if conf.Input.YIndex < 0 {
		conf.Input.YIndex = 2
	}
	if conf.Input.MaxRows < 0 {
		conf.Input.MaxRows = 365
	}
	if conf.Input.Delimiter == "" {
		conf.Input.Delimiter = ","
	}
	if conf.Input.SkipHeader == nil {
		skipHeader := true
		conf.Input.SkipHeader = &skipHeader
	}

	if conf.Output.Format == "" {
		conf.Output.Format = FormatCsv
	}
	if conf.Output.Precision <= 0 {
		conf.Output.Precision = 2
	}
}

func (conf *Config) Validate() error {
	if conf.Input.XIndex < 0 || conf.Input.YIndex < 0 {
		return errors.Errorf("negative column index x:%d y:%d", conf.Input.XIndex, conf.Input.YIndex)
	}
	if conf.Input.XIndex == conf.Input.YIndex {
		return errors.Errorf("x and y read the same column %d", conf.Input.XIndex)
	}
	if conf.Input.MaxRows < 0 {
		return errors.Errorf("negative maxRows %d", conf.Input.MaxRows)
	}
	if len([]rune(conf.Input.Delimiter)) != 1 {
		return errors.Errorf("delimiter must be a single character, got %q", conf.Input.Delimiter)
	}
	switch conf.Output.Format {
	case FormatCsv, FormatTable, FormatParams:
	default:
		return errors.Errorf("unknown output format %q", conf.Output.Format)
	}
	return nil
}

// ReadOptions converts the input section for the csv reader.
func (conf *Config) ReadOptions() csv.ReadOptions {
	skipHeader := true
	if conf.Input.SkipHeader != nil {
		skipHeader = *conf.Input.SkipHeader
	}
	return csv.ReadOptions{
		XIndex:     conf.Input.XIndex,
		YIndex:     conf.Input.YIndex,
		Delimiter:  []rune(conf.Input.Delimiter + ",")[0],
		SkipHeader: skipHeader,
		MaxRows:    conf.Input.MaxRows,
	}
}
