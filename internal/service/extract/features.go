// Package extract holds the stateless signal extractors. Every function is
// a pure function over parsed markup (or raw markup for the contact
// regexes); absence of a signal yields an empty value, never an error.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/domain/models"

	"golang.org/x/net/html"
)

const contactCap = 3

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`(?:\+|\(|0)\d[\d\s()/.\-]{5,17}\d`)
)

// languageHints maps a language code to href/anchor-text fragments that mark
// a language switcher without semantic markup.
var languageHints = map[string][]string{
	"de": {"/de/", "/de-", "deutsch"},
	"en": {"/en/", "/en-", "english"},
	"fr": {"/fr/", "/fr-", "français", "francais"},
	"it": {"/it/", "/it-", "italiano"},
	"es": {"/es/", "/es-", "español", "espanol"},
}

var socialDomains = []string{
	"facebook.com",
	"instagram.com",
	"linkedin.com",
	"twitter.com",
	"x.com/",
	"youtube.com",
	"tiktok.com",
}

var emailFieldVocab = []string{"email", "e-mail", "mail"}

var nameFieldVocab = []string{"name", "vorname", "nachname", "firstname", "lastname", "first_name", "last_name"}

// Title returns the first <title> text, trimmed. Empty when absent.
func Title(doc *html.Node) string {
	var title string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return title
}

// MetaDescription returns the first description meta content, falling back
// to og:description.
func MetaDescription(doc *html.Node) string {
	var description, ogDescription string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			name := strings.ToLower(attrVal(n, "name"))
			property := strings.ToLower(attrVal(n, "property"))
			content := strings.TrimSpace(attrVal(n, "content"))
			if name == "description" && description == "" {
				description = content
			}
			if property == "og:description" && ogDescription == "" {
				ogDescription = content
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	if description != "" {
		return description
	}
	return ogDescription
}

// Languages unions the root lang attribute, lang-bearing meta tags, anchor
// hreflang values and language-switcher hints in anchor href/text. When
// nothing resolves it falls back to defaultLang. The result is sorted so
// repeated crawls of an unchanged page are byte-identical.
func Languages(doc *html.Node, defaultLang string) []string {
	found := map[string]bool{}

	add := func(code string) {
		code = strings.ToLower(strings.TrimSpace(code))
		if len(code) >= 2 {
			found[code[:2]] = true
		}
	}

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "html":
				if lang := attrVal(n, "lang"); lang != "" {
					add(lang)
				}
			case "meta":
				if lang := attrVal(n, "lang"); lang != "" {
					add(lang)
				}
			case "a":
				if hreflang := attrVal(n, "hreflang"); hreflang != "" {
					add(hreflang)
				}
				href := strings.ToLower(attrVal(n, "href"))
				text := strings.ToLower(anchorText(n))
				for code, hints := range languageHints {
					for _, hint := range hints {
						if strings.Contains(href, hint) || text == hint {
							found[code] = true
						}
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	if len(found) == 0 {
		return []string{defaultLang}
	}
	languages := make([]string, 0, len(found))
	for code := range found {
		languages = append(languages, code)
	}
	sort.Strings(languages)
	return languages
}

// MobileResponsive reports a viewport meta with width=device-width or a
// stylesheet link whose URL mentions "responsive".
func MobileResponsive(doc *html.Node) bool {
	responsive := false
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if responsive {
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				if strings.EqualFold(attrVal(n, "name"), "viewport") &&
					strings.Contains(strings.ToLower(attrVal(n, "content")), "width=device-width") {
					responsive = true
				}
			case "link":
				if strings.EqualFold(attrVal(n, "rel"), "stylesheet") &&
					strings.Contains(strings.ToLower(attrVal(n, "href")), "responsive") {
					responsive = true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return responsive
}

// LeadForms reports every form carrying at least one named field, flagging
// whether it collects an email and/or a name.
func LeadForms(doc *html.Node) []models.LeadForm {
	var forms []models.LeadForm
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "form" {
			if form, ok := describeForm(n); ok {
				forms = append(forms, form)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return forms
}

func describeForm(formNode *html.Node) (models.LeadForm, bool) {
	form := models.LeadForm{
		Action: attrVal(formNode, "action"),
		Method: strings.ToUpper(attrVal(formNode, "method")),
	}
	if form.Method == "" {
		form.Method = "GET"
	}

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "input", "textarea", "select":
				name := attrVal(n, "name")
				if name == "" {
					break
				}
				fieldType := attrVal(n, "type")
				if fieldType == "" {
					fieldType = n.Data
					if n.Data == "input" {
						fieldType = "text"
					}
				}
				form.Fields = append(form.Fields, models.FormField{Type: fieldType, Name: name})

				ident := strings.ToLower(name + " " + attrVal(n, "id"))
				if fieldType == "email" || matchesVocab(ident, emailFieldVocab) {
					form.CollectsEmail = true
				}
				if matchesVocab(ident, nameFieldVocab) {
					form.CollectsName = true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(formNode)

	return form, len(form.Fields) > 0
}

func matchesVocab(ident string, vocab []string) bool {
	for _, word := range vocab {
		if strings.Contains(ident, word) {
			return true
		}
	}
	return false
}

// Contacts pulls deduplicated emails and phone numbers out of raw markup and
// social profile links out of the parsed anchors. Placeholder addresses are
// filtered and each category is capped to the top 3.
func Contacts(rawHTML string, doc *html.Node) models.ContactInfo {
	info := models.ContactInfo{
		Emails:  []string{},
		Phones:  []string{},
		Socials: []string{},
	}

	seenEmails := map[string]bool{}
	for _, email := range emailRe.FindAllString(rawHTML, -1) {
		email = strings.ToLower(email)
		if seenEmails[email] || isPlaceholderEmail(email) {
			continue
		}
		seenEmails[email] = true
		info.Emails = append(info.Emails, email)
		if len(info.Emails) == contactCap {
			break
		}
	}

	seenPhones := map[string]bool{}
	for _, phone := range phoneRe.FindAllString(rawHTML, -1) {
		phone = strings.TrimSpace(phone)
		if seenPhones[phone] || digitCount(phone) < 7 {
			continue
		}
		seenPhones[phone] = true
		info.Phones = append(info.Phones, phone)
		if len(info.Phones) == contactCap {
			break
		}
	}

	seenSocials := map[string]bool{}
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if len(info.Socials) == contactCap {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attrVal(n, "href")
			lower := strings.ToLower(href)
			for _, domain := range socialDomains {
				if strings.Contains(lower, domain) && !seenSocials[lower] {
					seenSocials[lower] = true
					info.Socials = append(info.Socials, href)
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	return info
}

func isPlaceholderEmail(email string) bool {
	if strings.HasPrefix(email, "test@") || strings.Contains(email, "example.") {
		return true
	}
	// image filenames like logo@2x.png match the email shape
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp"} {
		if strings.HasSuffix(email, ext) {
			return true
		}
	}
	return false
}

func digitCount(s string) int {
	count := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}

// PagesCount estimates site size from unique rooted or absolute hrefs,
// capped at 100.
func PagesCount(doc *html.Node) int {
	unique := map[string]bool{}
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attrVal(n, "href")
			if strings.HasPrefix(href, "/") || strings.HasPrefix(href, "http") {
				unique[href] = true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	if len(unique) > 100 {
		return 100
	}
	return len(unique)
}

// VisibleText flattens the document's text nodes, skipping script and style
// bodies, and lowercases the result for pattern scans.
func VisibleText(doc *html.Node) string {
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				sb.WriteString(text)
				sb.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return strings.ToLower(sb.String())
}

func anchorText(n *html.Node) string {
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return strings.TrimSpace(sb.String())
}
