package cue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	for _, name := range Names {
		assert.True(t, IsValid(name), "cue %q should be valid", name)
	}

	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Boom"))
	assert.False(t, IsValid("pop"))
}

func TestEveryAudibleCueHasAMelody(t *testing.T) {
	for _, name := range Names {
		if name == "None" {
			continue
		}
		melody, ok := melodies[name]
		assert.True(t, ok, "cue %q has no melody", name)
		assert.NotEmpty(t, melody)
	}
}

func TestNoneHasNoMelody(t *testing.T) {
	_, ok := melodies["None"]
	assert.False(t, ok)
}

func TestSilentPlayerIgnoresEverything(t *testing.T) {
	p := &silentPlayer{}
	assert.NoError(t, p.Play("Pop"))
	assert.NoError(t, p.Play("nope"))
}
