package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_Messages(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Success("applied %d migrations", 2)
	p.Warning("nothing to do")
	p.Error("failed: %s", "boom")
	p.Info("version %d", 3)
	p.Muted("details")

	out := buf.String()
	assert.Contains(t, out, "applied 2 migrations")
	assert.Contains(t, out, "nothing to do")
	assert.Contains(t, out, "failed: boom")
	assert.Contains(t, out, "version 3")
	assert.Contains(t, out, "details")
	assert.Equal(t, 5, strings.Count(out, "\n"))
}

func TestPrinter_CountsSortedByName(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Counts(map[string]int{"services": 4, "carousel": 2, "about": 1})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "about")
	assert.Contains(t, lines[1], "carousel")
	assert.Contains(t, lines[2], "services")
	assert.Contains(t, lines[2], "4")
}

func TestPrinter_Section(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Section("Seed")

	assert.Contains(t, buf.String(), "Seed")
	assert.Contains(t, buf.String(), "════")
}
