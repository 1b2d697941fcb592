package extract

import (
	"regexp"
	"strconv"

	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/domain/models"
)

// Room counts outside this range are treated as misparses (years, street
// numbers, phone fragments) and discarded.
const (
	minRoomCount = 1
	maxRoomCount = 500
)

type roomPattern struct {
	name string
	re   *regexp.Regexp
}

// roomPatterns covers German and English room/unit phrasings. Library order
// matters: it is the tie-break when the frequency vote is drawn. Compiled
// once at process start, read-only afterwards.
var roomPatterns = []roomPattern{
	{"zimmer", regexp.MustCompile(`(\d{1,4})\s*zimmer\b`)},
	{"zimmern", regexp.MustCompile(`(\d{1,4})\s*zimmern\b`)},
	{"verfuegen-ueber-zimmer", regexp.MustCompile(`verfügen über\s*(\d{1,4})\s*zimmer`)},
	{"verfuegt-ueber-zimmer", regexp.MustCompile(`verfügt über\s*(\d{1,4})\s*zimmer`)},
	{"hotel-mit-zimmer", regexp.MustCompile(`hotel mit\s*(\d{1,4})\s*zimmer`)},
	{"haus-mit-zimmer", regexp.MustCompile(`haus mit\s*(\d{1,4})\s*zimmer`)},
	{"bietet-zimmer", regexp.MustCompile(`bietet\s*(\d{1,4})\s*zimmer`)},
	{"umfasst-zimmer", regexp.MustCompile(`umfasst\s*(\d{1,4})\s*zimmer`)},
	{"unsere-zimmer", regexp.MustCompile(`unsere\s*(\d{1,4})\s*zimmer`)},
	{"gaestezimmer", regexp.MustCompile(`(\d{1,4})\s*gästezimmer`)},
	{"hotelzimmer", regexp.MustCompile(`(\d{1,4})\s*hotelzimmer`)},
	{"komfortzimmer", regexp.MustCompile(`(\d{1,4})\s*komfortzimmer`)},
	{"doppelzimmer", regexp.MustCompile(`(\d{1,4})\s*doppelzimmer`)},
	{"einzelzimmer", regexp.MustCompile(`(\d{1,4})\s*einzelzimmer`)},
	{"zimmer-und-suiten", regexp.MustCompile(`(\d{1,4})\s*zimmer und suiten`)},
	{"suiten", regexp.MustCompile(`(\d{1,4})\s*suiten\b`)},
	{"suites", regexp.MustCompile(`(\d{1,4})\s*suites\b`)},
	{"betten", regexp.MustCompile(`(\d{1,4})\s*betten\b`)},
	{"schlafplaetze", regexp.MustCompile(`(\d{1,4})\s*schlafplätze`)},
	{"apartments", regexp.MustCompile(`(\d{1,4})\s*apartments\b`)},
	{"appartements", regexp.MustCompile(`(\d{1,4})\s*appartements\b`)},
	{"ferienwohnungen", regexp.MustCompile(`(\d{1,4})\s*ferienwohnungen`)},
	{"wohnungen", regexp.MustCompile(`(\d{1,4})\s*wohnungen\b`)},
	{"wohneinheiten", regexp.MustCompile(`(\d{1,4})\s*wohneinheiten`)},
	{"einheiten", regexp.MustCompile(`(\d{1,4})\s*einheiten\b`)},
	{"studios", regexp.MustCompile(`(\d{1,4})\s*studios\b`)},
	{"chalets", regexp.MustCompile(`(\d{1,4})\s*chalets\b`)},
	{"bungalows", regexp.MustCompile(`(\d{1,4})\s*bungalows\b`)},
	{"rooms", regexp.MustCompile(`(\d{1,4})\s*rooms\b`)},
	{"room-compound", regexp.MustCompile(`(\d{1,4})[-\s]room\b`)},
	{"guest-rooms", regexp.MustCompile(`(\d{1,4})\s*guest rooms`)},
	{"guestrooms", regexp.MustCompile(`(\d{1,4})\s*guestrooms`)},
	{"bedrooms", regexp.MustCompile(`(\d{1,4})\s*bedrooms\b`)},
	{"hotel-with-rooms", regexp.MustCompile(`hotel with\s*(\d{1,4})\s*rooms`)},
	{"offers-rooms", regexp.MustCompile(`offers\s*(\d{1,4})\s*rooms`)},
	{"features-rooms", regexp.MustCompile(`features\s*(\d{1,4})\s*rooms`)},
	{"boasts-rooms", regexp.MustCompile(`boasts\s*(\d{1,4})\s*rooms`)},
	{"our-rooms", regexp.MustCompile(`our\s*(\d{1,4})\s*rooms`)},
	{"units", regexp.MustCompile(`(\d{1,4})\s*units\b`)},
	{"beds", regexp.MustCompile(`(\d{1,4})\s*beds\b`)},
	{"accommodations", regexp.MustCompile(`(\d{1,4})\s*accommodations`)},
	{"holiday-apartments", regexp.MustCompile(`(\d{1,4})\s*holiday apartments`)},
	{"vacation-rentals", regexp.MustCompile(`(\d{1,4})\s*vacation rentals`)},
}

type roomCandidate struct {
	count        int
	firstPattern int
	firstSeq     int
	patternName  string
}

// ExtractRoomCount scans lowercased page text with the full pattern library,
// keeps hits inside [1, 500], and resolves disagreements by frequency vote.
// Ties go to the value whose first hit came from the earliest pattern in
// library order. The empty result means no pattern matched in range.
func ExtractRoomCount(text string) models.RoomCountResult {
	candidates := map[int]*roomCandidate{}
	seq := 0

	for patternIdx, p := range roomPatterns {
		for _, match := range p.re.FindAllStringSubmatch(text, -1) {
			value, err := strconv.Atoi(match[1])
			if err != nil || value < minRoomCount || value > maxRoomCount {
				continue
			}
			cand, ok := candidates[value]
			if !ok {
				candidates[value] = &roomCandidate{
					firstPattern: patternIdx,
					firstSeq:     seq,
					patternName:  p.name,
				}
				cand = candidates[value]
			}
			cand.count++
			seq++
		}
	}

	if len(candidates) == 0 {
		return models.RoomCountResult{}
	}

	var winner int
	var best *roomCandidate
	for value, cand := range candidates {
		if best == nil || cand.count > best.count ||
			(cand.count == best.count && cand.firstSeq < best.firstSeq) {
			winner = value
			best = cand
		}
	}

	return models.RoomCountResult{Value: &winner, Pattern: best.patternName}
}
