package render

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"

	"sitebuilder/internal/domain"
)

var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	),
)

// Markdown renders a page outline readable by agents: headings, text,
// links and buttons survive; widgets collapse to their labels.
func Markdown(elems []domain.Element) (string, error) {
	raw, err := RenderElements(elems)
	if err != nil {
		return "", err
	}
	md, err := mdConverter.ConvertString(raw)
	if err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}
