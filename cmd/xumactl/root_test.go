package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestNewRootCommand_RegistersSubcommands(t *testing.T) {
	root := newRootCommand()

	names := make(map[string]bool)
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}

	assert.True(t, names["validate"])
	assert.True(t, names["eval"])
	assert.True(t, names["serve"])
}

func TestRootLogger_DefaultsToInfoLevel(t *testing.T) {
	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	log := rootLogger(v)
	assert.NotNil(t, log)
}
