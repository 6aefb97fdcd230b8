package cleaner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/semizhon/hh-kz-cad/internal/cleaner"
)

func TestTextStripsHighlightMarkup(t *testing.T) {
	c := cleaner.New()

	got := c.Text("Знание <highlighttext>AutoCAD</highlighttext> и Revit")
	assert.Equal(t, "Знание AutoCAD и Revit", got)
}

func TestTextTrimsWhitespace(t *testing.T) {
	c := cleaner.New()

	assert.Equal(t, "plain", c.Text("  plain  "))
	assert.Equal(t, "", c.Text(""))
}

func TestTextRemovesAllTags(t *testing.T) {
	c := cleaner.New()

	got := c.Text(`<p>Опыт работы <b>от 3 лет</b></p><script>alert(1)</script>`)
	assert.Equal(t, "Опыт работы от 3 лет", got)
}
