package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLanguage(language.AmericanEnglish)

	assert.Equal("offset 3 truncated", From("offset %d %v", 3, "truncated"))
	assert.Equal("plain", From("plain"))
}
