package configutils

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bbcli/internal/errcodes"
	"bbcli/internal/pkg/fs"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	configDir      = "~/.config/bb"
	envPrefix      = "BB"
	defaultTimeout = 30 * time.Second
	defaultRetries = 2
	fileMode       = 0o600
	dirMode        = 0o700
)

var (
	ErrHomeDirNotFound = errors.New("unable to determine the home directory")
	ErrConfigFileIsDir = errors.New("configuration file is a directory")
)

var filetypes = []string{"yaml", "json", "toml"}

// Credentials are read once per process and never change during a run.
type Credentials struct {
	Host     string `toml:"host" validate:"required,url"`
	Username string `toml:"username" validate:"required"`
	Token    string `toml:"token" validate:"required"`
}

type HTTPSettings struct {
	Timeout time.Duration
	Retries int
}

type Config struct {
	Bitbucket Credentials
	HTTP      HTTPSettings
	// Path is the file the configuration was read from, empty when it came
	// from the environment only.
	Path string
}

type fileConfig struct {
	Bitbucket Credentials `toml:"bitbucket"`
}

type configMerger interface {
	MergeConfig(io.Reader) error
}

var mergeConfig = func(in io.Reader, cm configMerger) error {
	return cm.MergeConfig(in)
}

var fileExists = func(filename string, fs fs.Filesystem) error {
	info, err := fs.Stat(filename)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return ErrConfigFileIsDir
	}

	return nil
}

var loadFile = func(filename string, fs fs.Filesystem) (io.Reader, error) {
	err := fileExists(filename, fs)
	if err != nil {
		return nil, err
	}

	f, err := fs.Open(filename)
	if err != nil {
		return nil, err
	}

	return f, nil
}

var loadConfig = func(filename string, v *viper.Viper) error {
	f, err := loadFile(filename, fs.OS{})
	if err != nil {
		return err
	}
	if c, ok := f.(io.Closer); ok {
		defer c.Close()
	}

	return mergeConfig(f, v)
}

var getConfigDir = func() (string, error) {
	dir, err := homedir.Expand(configDir)
	if err != nil {
		return "", ErrHomeDirNotFound
	}

	return dir, nil
}

var loadDotEnv = func() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "could not load .env")
	}

	return nil
}

// GlobalConfigPath is where the setup flow writes the configuration.
func GlobalConfigPath() (string, error) {
	dir, err := getConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.toml"), nil
}

// FindConfigFile returns the first existing config file in the config
// directory.
func FindConfigFile(filesystem fs.Filesystem) (string, bool) {
	dir, err := getConfigDir()
	if err != nil {
		return "", false
	}

	for _, ft := range filetypes {
		f := filepath.Join(dir, fmt.Sprintf("config.%s", ft))
		if fileExists(f, filesystem) == nil {
			return f, true
		}
	}

	return "", false
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetDefault("http.timeout", defaultTimeout)
	v.SetDefault("http.retries", defaultRetries)
	for _, key := range []string{
		"bitbucket.host",
		"bitbucket.username",
		"bitbucket.token",
		"http.timeout",
		"http.retries",
	} {
		// BindEnv only fails without a key.
		_ = v.BindEnv(key)
	}

	return v
}

func loadExplicit(path string, v *viper.Viper) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return ErrHomeDirNotFound
	}

	ft := strings.TrimPrefix(filepath.Ext(expanded), ".")
	switch ft {
	case "yml":
		ft = "yaml"
	case "":
		ft = "toml"
	}
	v.SetConfigType(ft)

	return loadConfig(expanded, v)
}

func loadDefault(v *viper.Viper) (string, error) {
	dir, err := getConfigDir()
	if err != nil {
		return "", err
	}

	for _, ft := range filetypes {
		f := filepath.Join(dir, fmt.Sprintf("config.%s", ft))
		v.SetConfigType(ft)
		err = loadConfig(f, v)
		if err == nil {
			return f, nil
		}
		log.Debug().
			Msgf("config loading failed for type %s, skipping to next filetype", ft)
	}

	return "", err
}

func hasEnvCredentials(v *viper.Viper) bool {
	return v.GetString("bitbucket.host") != "" &&
		v.GetString("bitbucket.username") != "" &&
		v.GetString("bitbucket.token") != ""
}

// Load reads the configuration from path, or from the default location
// when path is empty. BB_ prefixed environment variables override the file.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := newViper()
	loaded := ""
	if path != "" {
		if err := loadExplicit(path, v); err != nil {
			return nil, errors.Wrapf(err, "could not load config %s", path)
		}
		loaded = path
	} else {
		f, err := loadDefault(v)
		if err != nil && !hasEnvCredentials(v) {
			log.Debug().Err(err).Msg("no configuration file found")
			return nil, errcodes.ErrConfigMissing
		}
		loaded = f
	}

	c := &Config{
		Bitbucket: Credentials{
			Host:     strings.TrimRight(v.GetString("bitbucket.host"), "/"),
			Username: v.GetString("bitbucket.username"),
			Token:    v.GetString("bitbucket.token"),
		},
		HTTP: HTTPSettings{
			Timeout: v.GetDuration("http.timeout"),
			Retries: v.GetInt("http.retries"),
		},
		Path: loaded,
	}

	if err := Validate(&c.Bitbucket); err != nil {
		return nil, err
	}

	return c, nil
}

var validate = validator.New()

// Validate checks that all credentials are present and the host is an
// absolute URL.
func Validate(c *Credentials) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.WithStack(&errcodes.ConfigInvalidError{Reason: err.Error()})
	}

	reasons := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := "bitbucket." + strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			reasons = append(reasons, field+" is required")
		case "url":
			reasons = append(reasons, field+" must be an absolute URL")
		default:
			reasons = append(reasons, field+" is invalid")
		}
	}

	return errors.WithStack(&errcodes.ConfigInvalidError{Reason: strings.Join(reasons, ", ")})
}

// Save writes the credentials as TOML, readable by the owner only.
func Save(filesystem fs.Filesystem, path string, c *Credentials) error {
	if err := Validate(c); err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	if err := toml.NewEncoder(buf).Encode(fileConfig{Bitbucket: *c}); err != nil {
		return errors.Wrap(err, "could not encode config")
	}

	if err := filesystem.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return errors.Wrap(err, "could not create config directory")
	}

	if err := filesystem.WriteFile(path, buf.Bytes(), fileMode); err != nil {
		return errors.Wrapf(err, "could not write %s", path)
	}

	return nil
}
