package domain

import (
	"testing"

	"nearby-chat/errors"

	"github.com/stretchr/testify/require"
)

func TestShouldAutoInvite(t *testing.T) {
	tests := []struct {
		name      string
		mode      SessionMode
		connected int
		expected  bool
	}{
		{name: "one to one never auto-invites", mode: OneToOne, connected: 0, expected: false},
		{name: "empty group", mode: Group, connected: 0, expected: true},
		{name: "group with one seat left", mode: Group, connected: 6, expected: true},
		{name: "full group still auto-invites", mode: Group, connected: 7, expected: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ShouldAutoInvite(tt.mode, tt.connected))
		})
	}
}

func TestShouldAcceptInvitation(t *testing.T) {
	tests := []struct {
		name      string
		mode      SessionMode
		connected int
		expected  bool
	}{
		{name: "free one to one", mode: OneToOne, connected: 0, expected: true},
		{name: "busy one to one", mode: OneToOne, connected: 1, expected: false},
		{name: "group with room", mode: Group, connected: 3, expected: true},
		{name: "full group", mode: Group, connected: 7, expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ShouldAcceptInvitation(tt.mode, tt.connected))
		})
	}
}

func TestDecideOnDiscovery(t *testing.T) {
	require.Equal(t, AutoInvite, DecideOnDiscovery(Group))
	require.Equal(t, ManualListOnly, DecideOnDiscovery(OneToOne))
	require.Equal(t, "auto-invite", AutoInvite.String())
	require.Equal(t, "manual-list-only", ManualListOnly.String())
}

func TestSessionMode(t *testing.T) {
	require.Equal(t, 1, OneToOne.Capacity())
	require.Equal(t, 7, Group.Capacity())
	require.Equal(t, "1:1", OneToOne.String())
	require.Equal(t, "1:N", Group.String())
}

func TestParseSessionMode(t *testing.T) {
	tests := []struct {
		input    string
		expected SessionMode
	}{
		{input: "1:1", expected: OneToOne},
		{input: " one-to-one ", expected: OneToOne},
		{input: "1:N", expected: Group},
		{input: "group", expected: Group},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseSessionMode(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, mode)
		})
	}

	_, err := ParseSessionMode("broadcast")
	require.ErrorIs(t, err, errors.ErrUnknownMode)
}

func TestValidateServiceTag(t *testing.T) {
	require.NoError(t, ValidateServiceTag("mpc-demo"))
	require.NoError(t, ValidateServiceTag("a"))
	for _, tag := range []string{"", "MPC-demo", "with space", "far-too-long-service", "tag_1"} {
		require.ErrorIs(t, ValidateServiceTag(tag), errors.ErrInvalidServiceTag, tag)
	}
}
