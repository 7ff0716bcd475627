package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "SHOWCASE"

// Clés de configuration. Variable d'environnement: SHOWCASE_ + clé en majuscules, "." -> "_".
const (
	KeyAddr             = "addr"
	KeyJikanBaseURL     = "jikan.base_url"
	KeyJikanTimeout     = "jikan.timeout"
	KeyRotationInterval = "hero.rotation_interval"
	KeyHeroLimit        = "hero.limit"
	KeySynopsisLimit    = "hero.synopsis_limit"
	KeyEllipsisAlways   = "hero.ellipsis_always"
	KeyCarouselWidth    = "carousel.width"
	KeyAffiliateID      = "catalog.affiliate_id"
	KeyResultLimit      = "catalog.result_limit"
	KeyLogLevel         = "log.level"
	KeyLogFormat        = "log.format"
)

var EnvKeyReplacer = strings.NewReplacer(".", "_")

type Config struct {
	Addr string

	JikanBaseURL string
	// JikanTimeout à 0: pas de timeout client, seul le contexte de la requête compte.
	JikanTimeout time.Duration

	RotationInterval time.Duration
	HeroLimit        int
	SynopsisLimit    int
	EllipsisAlways   bool
	CarouselWidth    float64

	AffiliateID string
	ResultLimit int

	LogLevel  string
	LogFormat string
}

var defaults = map[string]any{
	KeyAddr:             "127.0.0.1:8080",
	KeyJikanBaseURL:     "https://api.jikan.moe/v4/",
	KeyJikanTimeout:     time.Duration(0),
	KeyRotationInterval: 7 * time.Second,
	KeyHeroLimit:        5,
	KeySynopsisLimit:    200,
	KeyEllipsisAlways:   true,
	KeyCarouselWidth:    1200.0,
	KeyAffiliateID:      "",
	KeyResultLimit:      24,
	KeyLogLevel:         "info",
	KeyLogFormat:        "console",
}

func Default() Config {
	c, _ := Load(New(), "")
	return c
}

// New prépare une instance viper: valeurs par défaut et variables SHOWCASE_*.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	v.AutomaticEnv()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	return v
}

// Load lit le fichier optionnel puis décode la configuration.
// Priorité: flags liés > env > fichier > défauts.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	c := Config{
		Addr:             v.GetString(KeyAddr),
		JikanBaseURL:     v.GetString(KeyJikanBaseURL),
		JikanTimeout:     v.GetDuration(KeyJikanTimeout),
		RotationInterval: v.GetDuration(KeyRotationInterval),
		HeroLimit:        v.GetInt(KeyHeroLimit),
		SynopsisLimit:    v.GetInt(KeySynopsisLimit),
		EllipsisAlways:   v.GetBool(KeyEllipsisAlways),
		CarouselWidth:    v.GetFloat64(KeyCarouselWidth),
		AffiliateID:      v.GetString(KeyAffiliateID),
		ResultLimit:      v.GetInt(KeyResultLimit),
		LogLevel:         v.GetString(KeyLogLevel),
		LogFormat:        v.GetString(KeyLogFormat),
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.JikanBaseURL == "" {
		errs = append(errs, errors.New("jikan.base_url is required"))
	}
	if c.RotationInterval <= 0 {
		errs = append(errs, errors.New("hero.rotation_interval must be positive"))
	}
	if c.HeroLimit <= 0 {
		errs = append(errs, errors.New("hero.limit must be positive"))
	}
	if c.SynopsisLimit <= 0 {
		errs = append(errs, errors.New("hero.synopsis_limit must be positive"))
	}
	if c.CarouselWidth <= 0 {
		errs = append(errs, errors.New("carousel.width must be positive"))
	}
	if c.JikanTimeout < 0 {
		errs = append(errs, errors.New("jikan.timeout must not be negative"))
	}
	return errors.Join(errs...)
}
