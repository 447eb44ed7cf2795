package xliffai

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ContextFromHTML fills the DOM-derived fields of an ElementContext from
// a captured HTML fragment. Fields already set on base are kept; the
// fragment only supplies what is missing. A fragment that does not parse
// returns base unchanged — context enrichment is best-effort and never
// fails a match request.
func ContextFromHTML(fragment string, base ElementContext) ElementContext {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return base
	}

	sel := doc.Find("body").Children().First()
	if sel.Length() == 0 {
		return base
	}
	node := sel.Get(0)
	if node == nil || node.Type != html.ElementNode {
		return base
	}

	ctx := base
	if ctx.HTMLTag == "" {
		ctx.HTMLTag = strings.ToLower(node.Data)
	}
	setIfEmpty(&ctx.AriaRole, attrOrDescendant(sel, "role"))
	setIfEmpty(&ctx.AriaLabel, attrOrDescendant(sel, "aria-label"))
	setIfEmpty(&ctx.Title, attrOrDescendant(sel, "title"))
	setIfEmpty(&ctx.Placeholder, attrOrDescendant(sel, "placeholder"))
	if ctx.InnerText == "" {
		ctx.InnerText = strings.TrimSpace(sel.Text())
	}

	// Flag bags travel on a data attribute when the capturer supplies
	// them.
	if len(ctx.Flags) == 0 {
		if bag, ok := sel.Attr("data-flags"); ok {
			ctx.Flags = ParseFlagBag(bag)
		}
	}

	// An embedded form control is a stronger tag signal than its
	// wrapper.
	if !inputTag(ctx.HTMLTag) {
		if inner := sel.Find("input, select, textarea").First(); inner.Length() > 0 {
			ctx.HTMLTag = goquery.NodeName(inner)
			setIfEmpty(&ctx.Placeholder, strings.TrimSpace(inner.AttrOr("placeholder", "")))
			setIfEmpty(&ctx.AriaLabel, strings.TrimSpace(inner.AttrOr("aria-label", "")))
		}
	}

	return ctx
}

// attrOrDescendant reads an attribute from the element itself or, when
// absent, from the first descendant that carries it.
func attrOrDescendant(sel *goquery.Selection, name string) string {
	if v, ok := sel.Attr(name); ok {
		return strings.TrimSpace(v)
	}
	if inner := sel.Find("[" + name + "]").First(); inner.Length() > 0 {
		return strings.TrimSpace(inner.AttrOr(name, ""))
	}
	return ""
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
