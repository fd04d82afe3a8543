package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"analyze", "show", "browse", "tui", "version"}, names)

	for _, flag := range []string{"config", "verbose", "workspace", "llm-provider", "llm-model"} {
		require.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}
