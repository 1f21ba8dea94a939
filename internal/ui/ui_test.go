package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, []string{"ID", "NAME"}, [][]string{
		{"city", "Köln"},
		{"village_20240101_0930", "x"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "  ID                     NAME", lines[0])
	assert.Equal(t, "  city                   Köln", lines[2])
	assert.Equal(t, "  village_20240101_0930  x", lines[3])
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, []string{"ID"}, nil)
	assert.Empty(t, buf.String())
}

func TestKeyValue(t *testing.T) {
	var buf bytes.Buffer
	KeyValue(&buf, [][2]string{{"nodes", "3"}, {"isolated", "1"}})
	assert.Equal(t, "  nodes:    3\n  isolated: 1\n", buf.String())
}

func TestFail(t *testing.T) {
	var buf bytes.Buffer
	Fail(&buf, errors.New("boom"), "check store.root")
	assert.Equal(t, "✗ boom\n  hint: check store.root\n", buf.String())
}
