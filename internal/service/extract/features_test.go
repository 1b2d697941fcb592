package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleAndMetaDescription(t *testing.T) {
	doc := parsePage(t, `<html><head>
		<title> Hotel Seeblick </title>
		<meta name="description" content="Familienhotel am See">
		<meta property="og:description" content="og variant">
	</head><body></body></html>`)

	assert.Equal(t, "Hotel Seeblick", Title(doc))
	assert.Equal(t, "Familienhotel am See", MetaDescription(doc))
}

func TestMetaDescriptionFallsBackToOG(t *testing.T) {
	doc := parsePage(t, `<html><head>
		<meta property="og:description" content="og only">
	</head><body></body></html>`)

	assert.Equal(t, "og only", MetaDescription(doc))
}

func TestTitleAbsent(t *testing.T) {
	doc := parsePage(t, `<html><body><h1>no title tag</h1></body></html>`)
	assert.Equal(t, "", Title(doc))
}

func TestLanguages(t *testing.T) {
	cases := []struct {
		name   string
		markup string
		want   []string
	}{
		{
			name:   "root lang attribute",
			markup: `<html lang="de-AT"><body></body></html>`,
			want:   []string{"de"},
		},
		{
			name: "hreflang union sorted",
			markup: `<html lang="de"><body>
				<a href="/en/home" hreflang="en">English</a>
				<a href="/it/home" hreflang="it">Italiano</a>
			</body></html>`,
			want: []string{"de", "en", "it"},
		},
		{
			name:   "language switcher without semantic markup",
			markup: `<html><body><a href="/en/start">English</a></body></html>`,
			want:   []string{"en"},
		},
		{
			name:   "anchor text hint",
			markup: `<html><body><a href="/start?l=2">english</a></body></html>`,
			want:   []string{"en"},
		},
		{
			name:   "default when nothing resolves",
			markup: `<html><body><p>hello</p></body></html>`,
			want:   []string{"de"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Languages(parsePage(t, tc.markup), "de"))
		})
	}
}

func TestMobileResponsive(t *testing.T) {
	cases := []struct {
		name   string
		markup string
		want   bool
	}{
		{
			name:   "viewport meta",
			markup: `<html><head><meta name="viewport" content="width=device-width, initial-scale=1"></head><body></body></html>`,
			want:   true,
		},
		{
			name:   "responsive stylesheet",
			markup: `<html><head><link rel="stylesheet" href="/css/responsive.min.css"></head><body></body></html>`,
			want:   true,
		},
		{
			name:   "viewport without device width",
			markup: `<html><head><meta name="viewport" content="initial-scale=1"></head><body></body></html>`,
			want:   false,
		},
		{
			name:   "nothing",
			markup: `<html><body></body></html>`,
			want:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MobileResponsive(parsePage(t, tc.markup)))
		})
	}
}

func TestLeadForms(t *testing.T) {
	doc := parsePage(t, `<html><body>
		<form action="/kontakt" method="post">
			<input type="text" name="vorname">
			<input type="email" name="email">
			<textarea name="nachricht"></textarea>
			<input type="submit" value="Senden">
		</form>
		<form action="/search">
			<input type="text" name="q">
		</form>
		<form action="/empty">
			<input type="text">
		</form>
	</body></html>`)

	forms := LeadForms(doc)
	if !assert.Len(t, forms, 2) {
		return
	}

	contact := forms[0]
	assert.Equal(t, "/kontakt", contact.Action)
	assert.Equal(t, "POST", contact.Method)
	assert.Len(t, contact.Fields, 3)
	assert.True(t, contact.CollectsEmail)
	assert.True(t, contact.CollectsName)

	search := forms[1]
	assert.Equal(t, "GET", search.Method)
	assert.False(t, search.CollectsEmail)
	assert.False(t, search.CollectsName)
}

func TestContacts(t *testing.T) {
	markup := `<html><body>
		<a href="mailto:info@hotel-seeblick.de">info@hotel-seeblick.de</a>
		<p>Schreiben Sie an info@hotel-seeblick.de oder buchung@hotel-seeblick.de</p>
		<p>Tel: +49 8821 123456</p>
		<p>test@placeholder.de und mail@example.com werden ignoriert</p>
		<img src="logo@2x.png">
		<a href="https://www.facebook.com/hotelseeblick">Facebook</a>
		<a href="https://www.instagram.com/hotelseeblick">Instagram</a>
		<a href="https://www.facebook.com/hotelseeblick">Facebook again</a>
	</body></html>`
	doc := parsePage(t, markup)

	info := Contacts(markup, doc)

	assert.Equal(t, []string{"info@hotel-seeblick.de", "buchung@hotel-seeblick.de"}, info.Emails)
	assert.Len(t, info.Phones, 1)
	assert.Equal(t, []string{
		"https://www.facebook.com/hotelseeblick",
		"https://www.instagram.com/hotelseeblick",
	}, info.Socials)
}

func TestContactsCap(t *testing.T) {
	markup := `<p>a@hotel.de b@hotel.de c@hotel.de d@hotel.de e@hotel.de</p>`
	doc := parsePage(t, markup)

	info := Contacts(markup, doc)
	assert.Len(t, info.Emails, contactCap)
}

func TestPagesCount(t *testing.T) {
	doc := parsePage(t, `<html><body>
		<a href="/zimmer">Zimmer</a>
		<a href="/zimmer">Zimmer nochmal</a>
		<a href="/preise">Preise</a>
		<a href="https://partner.example.org/">Partner</a>
		<a href="#top">Nach oben</a>
		<a href="mailto:info@hotel.de">Mail</a>
	</body></html>`)

	assert.Equal(t, 3, PagesCount(doc))
}

func TestVisibleTextSkipsScripts(t *testing.T) {
	doc := parsePage(t, `<html><body>
		<p>25 Zimmer</p>
		<script>var rooms = "99 zimmer";</script>
		<style>.rooms { color: red; }</style>
	</body></html>`)

	text := VisibleText(doc)
	assert.Contains(t, text, "25 zimmer")
	assert.NotContains(t, text, "99 zimmer")
}
