package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runJSON(t *testing.T, args ...string) map[string]any {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), args, &out, io.Discard))

	var m map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &m))
	return m
}

func TestRun_Classify(t *testing.T) {
	m := runJSON(t, "-op", "classify", "ni3", "hao3")
	assert.Equal(t, "ni3 hao3", m["text"])
	assert.Equal(t, "PY", m["classification"])
}

func TestRun_Segment(t *testing.T) {
	m := runJSON(t, "-op", "segment", "我是学生")
	segs, ok := m["segments"].([]any)
	require.True(t, ok)

	var joined string
	for _, s := range segs {
		joined += s.(string)
	}
	assert.Equal(t, "我是学生", joined)
	assert.Contains(t, segs, "学生")
}

func TestRun_Traditionalize(t *testing.T) {
	m := runJSON(t, "-op", "traditionalize", "汉语")
	assert.Equal(t, "漢語", m["result"])
}

func TestRun_QueryUnknownIsNull(t *testing.T) {
	m := runJSON(t, "-op", "query", "!!!")
	assert.Equal(t, "UN", m["classification"])
	assert.Nil(t, m["entries"])
}

func TestRun_English(t *testing.T) {
	m := runJSON(t, "-op", "english", "hello")
	entries, ok := m["entries"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, entries)
	first := entries[0].(map[string]any)
	assert.NotEmpty(t, first["pinyinMarks"])
}

func TestRun_Usage(t *testing.T) {
	err := run(context.Background(), []string{"-op", "query"}, io.Discard, io.Discard)
	assert.ErrorIs(t, err, errUsage)

	err = run(context.Background(), []string{"-bogus"}, io.Discard, io.Discard)
	assert.ErrorIs(t, err, errUsage)
}

func TestRun_UnknownOp(t *testing.T) {
	err := run(context.Background(), []string{"-op", "translate", "hi"}, io.Discard, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "translate")
}
