package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

type BaseBridgeSuite struct {
	suite.Suite
	Config  Config
	Timeout time.Duration
	client  *http.Client
}

// SetupSuite loads the environment configuration and skips when no process is running
func (s *BaseBridgeSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.AliceAddr == "" || s.Config.BobAddr == "" {
		s.T().Skip("ALICE_BRIDGE_ADDR and BOB_BRIDGE_ADDR are required")
	}
	s.Timeout, err = time.ParseDuration(s.Config.Timeout)
	s.Require().NoError(err)
	s.client = &http.Client{Timeout: 5 * time.Second}
}

// Step prints a colorized header for one step of a scenario
func (s *BaseBridgeSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Call sends a request to a bridge and decodes the JSON answer into out when given.
// It returns the HTTP status.
func (s *BaseBridgeSuite) Call(addr, method, path string, body any, out any) int {
	var reader io.Reader
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, method, "http://"+addr+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	s.Require().NoError(err, "Failed to reach bridge at "+addr)
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	logBuilder := strings.Builder{}
	fmt.Fprintf(&logBuilder, "HTTP %s %s [%d] in %v", method, path, resp.StatusCode, time.Since(start))
	// Log full JSON request/response bodies if E2E_DEBUG_JSON is enabled
	if s.Config.DebugJSON {
		if raw != nil {
			fmt.Fprintf(&logBuilder, "\nREQUEST:\n%s", raw)
		}
		fmt.Fprintf(&logBuilder, "\nRESPONSE:\n%s", payload)
	}
	s.T().Log(logBuilder.String())

	if out != nil && len(payload) > 0 {
		s.Require().NoError(json.Unmarshal(payload, out))
	}
	return resp.StatusCode
}
