package internal

import (
	"fmt"
	"nearby-chat/domain"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	DisplayName      string        `env:"DISPLAY_NAME,required=true" validate:"required,max=63"`
	SessionMode      string        `env:"SESSION_MODE,default=1:N" validate:"sessionmode"`
	ServiceTag       string        `env:"SERVICE_TAG,default=mpc-demo" validate:"servicetag"`
	InviteTimeout    time.Duration `env:"INVITE_TIMEOUT,default=10s" validate:"gt=0"`
	InboxSize        int           `env:"INBOX_SIZE,default=256" validate:"gt=0"`
	SubscriberBuffer int           `env:"SUBSCRIBER_BUFFER,default=16" validate:"gt=0"`
	SinkTimeout      time.Duration `env:"SINK_TIMEOUT,default=1s" validate:"gt=0"`
	RestartInterval  time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	MetricInterval   time.Duration `env:"METRIC_INTERVAL,default=10s" validate:"gt=0"`
	LowCapacity      int           `env:"LOW_CAPACITY_THRESHOLD,default=32" validate:"gte=0"`
	LogLevel         string        `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	ListenAddr       string        `env:"LISTEN_ADDR,default=/ip4/0.0.0.0/tcp/0" validate:"required,startswith=/"`
	DiscoveryTTL     time.Duration `env:"DISCOVERY_TTL,default=2m" validate:"gt=0"`
	BridgeAddr       string        `env:"BRIDGE_ADDR" validate:"omitempty,hostname_port"`
	TranscriptPath   string        `env:"TRANSCRIPT_PATH"`
	LimitMessages    *int          `env:"LIMIT_MESSAGES" validate:"omitempty,gt=0"`
	DebugPort        int           `env:"DEBUG_PORT" validate:"omitempty,gt=0,lt=65536"`
	CensoredWords    string        `env:"CENSORED_WORDS"`
	CensoredDir      string        `env:"CENSORED_DIR"`
	CharReplacement  string        `env:"CHARACTER_REPLACEMENT,default=*"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("servicetag", func(fl validator.FieldLevel) bool {
		return domain.ValidateServiceTag(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("sessionmode", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseSessionMode(fl.Field().String())
		return err == nil
	})
	return v
}

// LoadConfig reads the configuration from the environment and validates it.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := CharacterRune(config.CharReplacement); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Mode() domain.SessionMode {
	mode, _ := domain.ParseSessionMode(c.SessionMode)
	return mode
}

// Words splits CENSORED_WORDS on commas, dropping blanks.
func (c Config) Words() []string {
	var words []string
	for _, w := range strings.Split(c.CensoredWords, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
