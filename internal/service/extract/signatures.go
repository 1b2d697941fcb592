package extract

import "github.com/rb2763-ux/chatproai-analyzer-v2/internal/domain/models"

// ChatbotSignature holds the literal substrings identifying one live-chat
// vendor, keyed by the structural location they may appear in. All entries
// are lowercase; scanned markup is lowercased before matching.
type ChatbotSignature struct {
	Vendor       string
	ScriptSrc    []string
	InlineScript []string
	IframeSrc    []string
}

// chatbotSignatures is loaded once and never mutated; it is shared
// read-only across concurrent crawls. Slice order is the vendor scan order
// within each detection method.
var chatbotSignatures = []ChatbotSignature{
	{
		Vendor:       "zendesk",
		ScriptSrc:    []string{"zdassets.com", "zendesk.com/embeddable"},
		InlineScript: []string{"$zopim", "zembed", "ze('webwidget'"},
		IframeSrc:    []string{"zendesk.com"},
	},
	{
		Vendor:       "tidio",
		ScriptSrc:    []string{"code.tidio.co", "tidio.co/"},
		InlineScript: []string{"tidiochatapi", "tidiochat"},
		IframeSrc:    []string{"tidio.co"},
	},
	{
		Vendor:       "intercom",
		ScriptSrc:    []string{"widget.intercom.io", "js.intercomcdn.com"},
		InlineScript: []string{"window.intercom", "intercomsettings"},
		IframeSrc:    []string{"intercom.io"},
	},
	{
		Vendor:       "drift",
		ScriptSrc:    []string{"js.driftt.com", "drift.com/include"},
		InlineScript: []string{"window.drift", "drift.load"},
		IframeSrc:    []string{"driftt.com"},
	},
	{
		Vendor:       "livechat",
		ScriptSrc:    []string{"cdn.livechatinc.com", "livechatinc.com/tracking"},
		InlineScript: []string{"lc_api", "__lc.license"},
		IframeSrc:    []string{"livechatinc.com"},
	},
	{
		Vendor:       "freshchat",
		ScriptSrc:    []string{"wchat.freshchat.com", "freshchat.com/js"},
		InlineScript: []string{"fcwidget"},
		IframeSrc:    []string{"freshchat.com"},
	},
	{
		Vendor:       "chatbot.com",
		ScriptSrc:    []string{"cdn.chatbot.com"},
		InlineScript: []string{"window.__be", "chatbotwidget"},
		IframeSrc:    []string{"chatbot.com/widget"},
	},
	{
		Vendor:       "hubspot",
		ScriptSrc:    []string{"js.hs-scripts.com", "js.usemessages.com"},
		InlineScript: []string{"hubspotconversations"},
		IframeSrc:    []string{"app.hubspot.com/conversations"},
	},
	{
		Vendor:       "userlike",
		ScriptSrc:    []string{"userlike-cdn-widgets"},
		InlineScript: []string{"userlikeinit"},
		IframeSrc:    []string{"userlike.com"},
	},
	{
		Vendor:       "crisp",
		ScriptSrc:    []string{"client.crisp.chat"},
		InlineScript: []string{"$crisp", "crisp_website_id"},
		IframeSrc:    []string{"crisp.chat"},
	},
}

func (s ChatbotSignature) forMethod(m models.DetectionMethod) []string {
	switch m {
	case models.MethodScriptSrc:
		return s.ScriptSrc
	case models.MethodInlineScript:
		return s.InlineScript
	case models.MethodIframeSrc:
		return s.IframeSrc
	}
	return nil
}
