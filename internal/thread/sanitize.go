package thread

import "regexp"

// Noise constructs stripped before any boundary detection. Vendor
// namespace tags (o:, v:, w:) show up in bodies composed in Outlook and
// Word; paired elements are removed with their content first so no
// dangling close tag survives, then any leftover lone or self-closing
// vendor tag is dropped.
var (
	reXMLProlog    = regexp.MustCompile(`(?is)<\?xml.*?\?>`)
	reHeadBlock    = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	reStyleBlock   = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	reScriptBlock  = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	reVendorPaired = regexp.MustCompile(`(?is)<(?:o|v|w):[a-z0-9]+[^>]*>.*?</(?:o|v|w):[a-z0-9]+\s*>`)
	reVendorLone   = regexp.MustCompile(`(?is)</?(?:o|v|w):[a-z0-9]+[^>]*>`)
)

// Sanitize strips head, style and script blocks, the XML prolog and
// vendor namespace tags from a raw HTML body. Surviving markup and text
// are left untouched. Empty input yields an empty result.
func Sanitize(body string) string {
	if body == "" {
		return ""
	}

	s := reXMLProlog.ReplaceAllString(body, "")
	s = reHeadBlock.ReplaceAllString(s, "")
	s = reStyleBlock.ReplaceAllString(s, "")
	s = reScriptBlock.ReplaceAllString(s, "")
	s = reVendorPaired.ReplaceAllString(s, "")
	s = reVendorLone.ReplaceAllString(s, "")
	return s
}
