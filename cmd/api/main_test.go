package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashCmd(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := hashCmd()
	cmd.SetOut(out)
	cmd.SetArgs([]string{" Test@Example.com ", "973dfe463ec85785f5f95af5ba3906eedb2d931c24e69824a89ea65dba4e813b"})

	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "973dfe463ec85785f5f95af5ba3906eedb2d931c24e69824a89ea65dba4e813b", lines[0])
	assert.Equal(t, lines[0], lines[1])
}

func TestHashCmd_HelpMentionsTrim(t *testing.T) {
	assert.Contains(t, hashCmd().Long, "espaços nas pontas são removidos")
}

func TestHashCmd_RequiresValue(t *testing.T) {
	cmd := hashCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	assert.Error(t, cmd.Execute())
}
