package extract

import (
	"strings"

	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/domain/models"

	"golang.org/x/net/html"
)

// DetectChatbot classifies third-party live-chat embeds on structural
// evidence only: script src URLs, inline script bodies, then iframe src
// URLs, in that priority order. The first signature hit wins. Prose
// mentioning a vendor never matches, since visible text is not scanned.
func DetectChatbot(doc *html.Node) models.ChatbotDetectionResult {
	var scriptSrcs, inlineScripts, iframeSrcs []string

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script":
				if src := attrVal(n, "src"); src != "" {
					scriptSrcs = append(scriptSrcs, strings.ToLower(src))
				} else if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					inlineScripts = append(inlineScripts, strings.ToLower(n.FirstChild.Data))
				}
			case "iframe":
				if src := attrVal(n, "src"); src != "" {
					iframeSrcs = append(iframeSrcs, strings.ToLower(src))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	checks := []struct {
		method models.DetectionMethod
		values []string
	}{
		{models.MethodScriptSrc, scriptSrcs},
		{models.MethodInlineScript, inlineScripts},
		{models.MethodIframeSrc, iframeSrcs},
	}

	for _, check := range checks {
		for _, value := range check.values {
			for _, sig := range chatbotSignatures {
				for _, needle := range sig.forMethod(check.method) {
					if strings.Contains(value, needle) {
						return models.ChatbotDetectionResult{
							Detected:  true,
							Vendor:    sig.Vendor,
							Signature: needle,
							Method:    check.method,
						}
					}
				}
			}
		}
	}

	return models.ChatbotDetectionResult{Detected: false}
}

func attrVal(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
