package internal

import (
	"nearby-chat/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("DISPLAY_NAME", "Alice")

	config, err := LoadConfig()

	req.NoError(err)
	req.Equal("mpc-demo", config.ServiceTag)
	req.Equal(10*time.Second, config.InviteTimeout)
	req.Equal(domain.Group, config.Mode())
	req.Equal("INFO", config.LogLevel)
	req.Nil(config.LimitMessages)
	req.Empty(config.Words())
}

func TestLoadConfig_OneToOne(t *testing.T) {
	req := require.New(t)
	t.Setenv("DISPLAY_NAME", "Alice")
	t.Setenv("SESSION_MODE", "1:1")
	t.Setenv("CENSORED_WORDS", "foo, bar ,,")

	config, err := LoadConfig()

	req.NoError(err)
	req.Equal(domain.OneToOne, config.Mode())
	req.Equal([]string{"foo", "bar"}, config.Words())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"service tag too long", "SERVICE_TAG", "a-very-long-service-tag"},
		{"service tag uppercase", "SERVICE_TAG", "MPC"},
		{"unknown mode", "SESSION_MODE", "broadcast"},
		{"unknown log level", "LOG_LEVEL", "LOUD"},
		{"two replacement chars", "CHARACTER_REPLACEMENT", "**"},
		{"bridge without port", "BRIDGE_ADDR", "localhost"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DISPLAY_NAME", "Alice")
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()

			require.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingDisplayName(t *testing.T) {
	t.Setenv("DISPLAY_NAME", "")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestCharacterRune(t *testing.T) {
	req := require.New(t)
	r, err := CharacterRune("#")
	req.NoError(err)
	req.Equal('#', r)

	_, err = CharacterRune("")
	req.Error(err)
}
