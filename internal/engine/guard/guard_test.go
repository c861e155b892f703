package guard_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briantully/acquia-cli/internal/engine/guard"
)

func TestRequireNonProd(t *testing.T) {
	require.NoError(t, guard.RequireNonProd("deploy", "stage"))
	require.NoError(t, guard.RequireNonProd("deploy", "dev"))

	err := guard.RequireNonProd("deploy", "prod")
	var violation *guard.PolicyViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "deploy", violation.Command)
	assert.Equal(t, "prod", violation.Environment)
	assert.Contains(t, err.Error(), "prod variant")
}

func TestTerminalConfirmer(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"", false}, // closed stdin declines
	}
	for _, tc := range cases {
		var out bytes.Buffer
		c := guard.TerminalConfirmer{In: strings.NewReader(tc.input), Out: &out}
		ok, err := c.Confirm("really deploy to prod?")
		require.NoError(t, err)
		assert.Equal(t, tc.want, ok, "input %q", tc.input)
		assert.Contains(t, out.String(), "really deploy to prod?")
	}
}

func TestAlwaysConfirm(t *testing.T) {
	ok, err := guard.AlwaysConfirm{}.Confirm("anything")
	require.NoError(t, err)
	assert.True(t, ok)
}
