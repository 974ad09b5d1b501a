package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText returns the text content of the first node in the selection
// with non-printable runes removed and runs of whitespace collapsed to a
// single space.
func CleanText(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	text := GetText(sel.Nodes[0])
	text = removeNonPrintable(text)
	text = innerWhitespace.ReplaceAllString(text, " ")
	return strings.Trim(text, " \t\n")
}

// FirstFromSrcset returns the url of the first candidate in a srcset
// attribute value, dropping its width/density descriptor.
func FirstFromSrcset(srcset string) string {
	if srcset == "" {
		return ""
	}
	first, _, _ := strings.Cut(srcset, ",")
	first = strings.TrimSpace(first)
	url, _, _ := strings.Cut(first, " ")
	return url
}
