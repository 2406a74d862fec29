package clerk

import (
	"strings"
	"time"

	"github.com/b1tburn3r20/speakup-ingest/internal/domain"
)

// rollCallVote mirrors the clerk's per-roll XML document.
type rollCallVote struct {
	Metadata rollCallMetadata `xml:"vote-metadata"`
	Data     struct {
		RecordedVotes []recordedVote `xml:"recorded-vote"`
	} `xml:"vote-data"`
}

type rollCallMetadata struct {
	Congress     int    `xml:"congress"`
	Session      string `xml:"session"`
	RollcallNum  int    `xml:"rollcall-num"`
	LegisNum     string `xml:"legis-num"`
	VoteQuestion string `xml:"vote-question"`
	VoteResult   string `xml:"vote-result"`
	VoteDesc     string `xml:"vote-desc"`
	ActionDate   string `xml:"action-date"`
	ActionTime   struct {
		TimeETZ string `xml:"time-etz,attr"`
	} `xml:"action-time"`
}

type recordedVote struct {
	Legislator struct {
		NameID string `xml:"name-id,attr"`
		Party  string `xml:"party,attr"`
		State  string `xml:"state,attr"`
	} `xml:"legislator"`
	Vote string `xml:"vote"`
}

// actionDateLayouts covers the clerk's date spellings ("9-Jan-2025",
// optionally with the 24h eastern time attribute appended).
var actionDateLayouts = []string{
	"2-Jan-2006 15:04",
	"2-Jan-2006",
}

func (v *rollCallVote) toRecord() *domain.VoteRecord {
	meta := v.Metadata

	legisType, legisNumber := parseLegisNum(meta.LegisNum)

	record := &domain.VoteRecord{
		Congress:          meta.Congress,
		Session:           parseSession(meta.Session),
		RollNumber:        meta.RollcallNum,
		StartDate:         normalizeActionDate(meta.ActionDate, meta.ActionTime.TimeETZ),
		Question:          meta.VoteQuestion,
		Result:            meta.VoteResult,
		Description:       meta.VoteDesc,
		LegislationType:   legisType,
		LegislationNumber: legisNumber,
	}

	record.Members = make([]domain.MemberVoteRecord, 0, len(v.Data.RecordedVotes))
	for _, rv := range v.Data.RecordedVotes {
		record.Members = append(record.Members, domain.MemberVoteRecord{
			BioguideID: rv.Legislator.NameID,
			Cast:       strings.TrimSpace(rv.Vote),
			Party:      rv.Legislator.Party,
			State:      rv.Legislator.State,
		})
	}

	return record
}

// normalizeActionDate converts the clerk's date spelling into the
// ISO form the date normalizer accepts. Anything unparseable passes
// through raw; the vote reconciler then falls back to the current time.
func normalizeActionDate(date, timeETZ string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}

	raw := date
	if timeETZ != "" {
		raw = date + " " + timeETZ
	}
	for _, layout := range actionDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC().Format(time.RFC3339)
		}
	}
	if parsed, err := time.Parse("2-Jan-2006", date); err == nil {
		return parsed.UTC().Format(time.RFC3339)
	}
	return raw
}

// parseSession maps "1st"/"2nd" to a number; unknown spellings are
// recorded as zero, since session is never hard-required.
func parseSession(session string) int {
	switch strings.TrimSpace(session) {
	case "1st":
		return 1
	case "2nd":
		return 2
	default:
		return 0
	}
}

// parseLegisNum splits the clerk's "H R 1234" / "H J RES 7" spelling
// into a subtype code and number. An empty or single-token value (e.g.
// "QUORUM") yields no link.
func parseLegisNum(legisNum string) (string, string) {
	fields := strings.Fields(legisNum)
	if len(fields) < 2 {
		return "", ""
	}
	number := fields[len(fields)-1]
	billType := strings.Join(fields[:len(fields)-1], "")
	return billType, number
}
