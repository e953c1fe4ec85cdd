package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kapu/wiki-answer-bot-go/internal/lexicon"
)

func newTestExtractor() *Extractor {
	lex := lexicon.Default()
	return NewExtractor(lex.Units, lex.Months)
}

func TestDates(t *testing.T) {
	e := newTestExtractor()

	assert.Equal(t, []string{"1889", "2005"}, e.Dates("Founded in 1889 and renovated in 2005."))
	assert.Equal(t, []string{"29 May", "1953"}, e.Dates("First climbed on 29 May 1953 by Hillary."))
	assert.Equal(t, []string{"1969", "1969"}, e.Dates("In 1969, and again in 1969."))
	assert.Equal(t, []string{"1066", "1850"}, e.Dates("Settled before 1066 and rebuilt in 1850."))
	assert.Equal(t, []string{}, e.Dates("In 2150 nothing happened; 12005 is not a year and neither is 999."))
}

func TestMeasurements(t *testing.T) {
	e := newTestExtractor()

	text := "Its elevation is 8,848.86 metres (29,031.7 ft). The base camp sits at 5364 m; it weighs 12 kg."
	assert.Equal(t, []string{"8,848.86 metres", "29,031.7 ft", "12 kg"}, e.Measurements(text))

	assert.Equal(t, []string{}, e.Measurements("About 510 million people"))
	assert.Equal(t, []string{"17 square miles", "3 square kilometres"},
		e.Measurements("Covers 17 square miles, or 3 square   kilometres."))
	assert.Equal(t, []string{"100 Celsius", "212 fahrenheit"}, e.Measurements("boils at 100 Celsius or 212 fahrenheit"))
}

func TestScanIsBoundedToArticleHead(t *testing.T) {
	e := newTestExtractor()

	// the year straddles the 2000-rune boundary
	text := strings.Repeat("x", 1996) + " 1999 and later 2001"
	assert.Equal(t, []string{}, e.Dates(text))

	// the year ends exactly at rune 2000
	text = strings.Repeat("x", 1995) + " 1999 and later 2001"
	assert.Equal(t, []string{"1999"}, e.Dates(text))

	text = strings.Repeat("é", 1990) + " 1999 "
	assert.Equal(t, []string{"1999"}, e.Dates(text))
}

func TestExtractorWithoutVocabulary(t *testing.T) {
	e := NewExtractor(nil, nil)

	assert.Equal(t, []string{}, e.Measurements("8848 metres"))
	assert.Equal(t, []string{"1953"}, e.Dates("29 May 1953"))
}
