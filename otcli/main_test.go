package main

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tinyfont/ot"
	"github.com/npillmayer/tinyfont/otgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.cli")
	defer teardown()
	//
	intp := &Intp{gen: otgen.NewGenerator()}
	cmd, err := intp.parseCommand("char:U+20AC table:cmap:hex bogus")
	require.NoError(t, err)
	assert.Equal(t, 3, cmd.count)
	assert.Equal(t, CHAR, cmd.op[0].code)
	assert.Equal(t, "U+20AC", cmd.op[0].arg)
	assert.Equal(t, TABLE, cmd.op[1].code)
	assert.Equal(t, "cmap", cmd.op[1].arg)
	assert.Equal(t, "hex", cmd.op[1].format)
	assert.Equal(t, HELP, cmd.op[2].code, "unknown commands show help")
	assert.Equal(t, NOOP, cmd.op[3].code)
	//
	cmd, err = intp.parseCommand("uri:application/x-font-ttf")
	require.NoError(t, err)
	assert.Equal(t, "application/x-font-ttf", cmd.op[0].arg)
}

func TestExecuteCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.cli")
	defer teardown()
	//
	intp := &Intp{gen: otgen.NewGenerator()}
	cmd, _ := intp.parseCommand("dir")
	err, _ := intp.execute(cmd)
	assert.ErrorIs(t, err, ERR_NO_FONT)
	//
	cmd, _ = intp.parseCommand("char:A dir table:head lookup:A glyph:1 names")
	err, stop := intp.execute(cmd)
	require.NoError(t, err)
	assert.False(t, stop)
	require.NotNil(t, intp.font)
	assert.Equal(t, "U+0041", intp.font.Source)
	require.NotNil(t, intp.table)
	assert.Equal(t, ot.T("head"), intp.table.Self().NameTag())
	//
	cmd, _ = intp.parseCommand("table:GSUB")
	err, _ = intp.execute(cmd)
	assert.Error(t, err)
	cmd, _ = intp.parseCommand("char:U+1F600")
	err, _ = intp.execute(cmd)
	assert.ErrorIs(t, err, otgen.ErrInvalidCodePoint)
	assert.Equal(t, "U+0041", intp.font.Source, "failed generation keeps the current font")
	//
	cmd, _ = intp.parseCommand("quit dir")
	err, stop = intp.execute(cmd)
	assert.NoError(t, err)
	assert.True(t, stop)
}
