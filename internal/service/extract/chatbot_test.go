package extract

import (
	"strings"
	"testing"

	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/domain/models"

	"golang.org/x/net/html"
)

func parsePage(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("failed to parse test markup: %v", err)
	}
	return doc
}

func TestDetectChatbot(t *testing.T) {
	cases := []struct {
		name       string
		markup     string
		wantFound  bool
		wantVendor string
		wantMethod models.DetectionMethod
	}{
		{
			name:       "zendesk script src",
			markup:     `<html><head><script src="https://static.zdassets.com/ekr/snippet.js?key=abc"></script></head><body></body></html>`,
			wantFound:  true,
			wantVendor: "zendesk",
			wantMethod: models.MethodScriptSrc,
		},
		{
			name:       "tidio script src",
			markup:     `<html><body><script src="//code.tidio.co/xyz.js" async></script></body></html>`,
			wantFound:  true,
			wantVendor: "tidio",
			wantMethod: models.MethodScriptSrc,
		},
		{
			name:       "intercom inline boot call",
			markup:     `<html><body><script>window.Intercom('boot', {app_id: 'abc'});</script></body></html>`,
			wantFound:  true,
			wantVendor: "intercom",
			wantMethod: models.MethodInlineScript,
		},
		{
			name:       "crisp inline global",
			markup:     `<html><body><script>window.$crisp=[];window.CRISP_WEBSITE_ID="id";</script></body></html>`,
			wantFound:  true,
			wantVendor: "crisp",
			wantMethod: models.MethodInlineScript,
		},
		{
			name:       "livechat iframe embed",
			markup:     `<html><body><iframe src="https://secure.livechatinc.com/licence/123/open_chat.cgi"></iframe></body></html>`,
			wantFound:  true,
			wantVendor: "livechat",
			wantMethod: models.MethodIframeSrc,
		},
		{
			name:      "no embeds",
			markup:    `<html><body><p>Welcome to our hotel.</p></body></html>`,
			wantFound: false,
		},
		{
			name:      "prose mention never matches",
			markup:    `<html><body><p>We do not have a chatbot. Competitors use Intercom and Zendesk widgets.</p></body></html>`,
			wantFound: false,
		},
		{
			name:      "vendor name in visible text only",
			markup:    `<html><body><div class="blog">Our review of tidio.co and drift.com live chat tools</div></body></html>`,
			wantFound: false,
		},
		{
			// script-src has priority over both lower methods even when the
			// lower-method signature appears first in the document
			name: "script src beats iframe of another vendor",
			markup: `<html><body>
				<iframe src="https://secure.livechatinc.com/widget"></iframe>
				<script src="https://widget.intercom.io/widget/abc"></script>
			</body></html>`,
			wantFound:  true,
			wantVendor: "intercom",
			wantMethod: models.MethodScriptSrc,
		},
		{
			name: "inline script beats iframe",
			markup: `<html><body>
				<iframe src="https://secure.livechatinc.com/widget"></iframe>
				<script>window.fcWidget.init({token: "abc"});</script>
			</body></html>`,
			wantFound:  true,
			wantVendor: "freshchat",
			wantMethod: models.MethodInlineScript,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := DetectChatbot(parsePage(t, tc.markup))

			if result.Detected != tc.wantFound {
				t.Fatalf("detected = %v; want %v", result.Detected, tc.wantFound)
			}
			if !tc.wantFound {
				return
			}
			if result.Vendor != tc.wantVendor {
				t.Errorf("vendor = %q; want %q", result.Vendor, tc.wantVendor)
			}
			if result.Method != tc.wantMethod {
				t.Errorf("method = %q; want %q", result.Method, tc.wantMethod)
			}
			if result.Signature == "" {
				t.Error("matched signature is empty")
			}
		})
	}
}

func TestDetectChatbotDeterministic(t *testing.T) {
	markup := `<html><body>
		<script src="https://js.driftt.com/include/123/abc.js"></script>
		<iframe src="https://app.hubspot.com/conversations/embed"></iframe>
	</body></html>`

	first := DetectChatbot(parsePage(t, markup))
	for i := 0; i < 10; i++ {
		again := DetectChatbot(parsePage(t, markup))
		if again != first {
			t.Fatalf("run %d: result %+v differs from first %+v", i, again, first)
		}
	}
	if first.Vendor != "drift" || first.Method != models.MethodScriptSrc {
		t.Errorf("got %+v; want drift via script-src", first)
	}
}
