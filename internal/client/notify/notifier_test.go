package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	n := NewWriter(&buf)

	n.Success("group created")
	n.Error("upload failed")

	out := buf.String()
	assert.Contains(t, out, "✔ group created")
	assert.Contains(t, out, "✘ upload failed")
}

func TestDiscard(t *testing.T) {
	// просто не должен паниковать
	Discard{}.Success("x")
	Discard{}.Error("y")
}
