package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

// Config points the suite at two running nearby-chat processes with their
// bridge enabled, both on the same network and service tag.
type Config struct {
	AliceAddr string `envconfig:"ALICE_BRIDGE_ADDR"`
	BobAddr   string `envconfig:"BOB_BRIDGE_ADDR"`
	// E2E_DEBUG_JSON allows dumping full request/response bodies
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool   `envconfig:"E2E_COLOURS" default:"true"`
	Timeout string `envconfig:"E2E_TIMEOUT" default:"20s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
