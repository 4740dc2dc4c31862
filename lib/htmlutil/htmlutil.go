package htmlutil

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var ErrNoTable = errors.New("no table element found")

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

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func cleanCell(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		b.WriteString(GetText(n))
	}
	s := strings.Trim(b.String(), " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

// FirstTable extracts the first <table> of the document into a header row
// (th cells of the first row that has any) and data rows (td cells, one
// slice per tr). Cell text is trimmed and inner whitespace collapsed.
// Further tables are ignored.
func FirstTable(doc *goquery.Document) (header []string, rows [][]string, err error) {
	t := doc.Find("table").First()
	if t.Length() == 0 {
		return nil, nil, ErrNoTable
	}

	t.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		ths := tr.Find("th")
		if ths.Length() > 0 && header == nil {
			ths.Each(func(_ int, th *goquery.Selection) {
				header = append(header, cleanCell(th))
			})
			return
		}

		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, cleanCell(td))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})

	return header, rows, nil
}
