package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="title">  Anchor
		<span>chain</span>   10mm </div>`,
	))
	require.Nil(t, err)

	require.Equal(t, "Anchor chain 10mm", CleanText(doc.Find(".title")))
	require.Equal(t, "", CleanText(doc.Find(".missing")))
}

func TestFirstFromSrcset(t *testing.T) {
	testCases := []struct {
		srcset string
		expect string
	}{
		{srcset: "", expect: ""},
		{srcset: "/img/a.jpg 1x, /img/b.jpg 2x", expect: "/img/a.jpg"},
		{srcset: " https://cdn.example.com/a-300.jpg 300w,https://cdn.example.com/a-600.jpg 600w", expect: "https://cdn.example.com/a-300.jpg"},
		{srcset: "/img/only.jpg", expect: "/img/only.jpg"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expect, FirstFromSrcset(test.srcset))
	}
}
