package congress

// Payload shapes for the v3 API. Only the fields the pipeline consumes
// are declared; everything else in the responses is ignored.

type billListPayload struct {
	Bills []billListEntry `json:"bills"`
}

type billListEntry struct {
	Congress int    `json:"congress"`
	Type     string `json:"type"`
	Number   string `json:"number"`
}

type billDetailPayload struct {
	Bill *billDetail `json:"bill"`
}

type billDetail struct {
	Congress       int    `json:"congress"`
	Type           string `json:"type"`
	Number         string `json:"number"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	IntroducedDate string `json:"introducedDate"`
}

type actionsPayload struct {
	Actions []actionEntry `json:"actions"`
}

type actionEntry struct {
	ActionDate string `json:"actionDate"`
	Text       string `json:"text"`
	Type       string `json:"type"`
	ActionCode string `json:"actionCode"`
}

type summariesPayload struct {
	Summaries []summaryEntry `json:"summaries"`
}

type summaryEntry struct {
	ActionDate  string `json:"actionDate"`
	ActionDesc  string `json:"actionDesc"`
	Text        string `json:"text"`
	UpdateDate  string `json:"updateDate"`
	VersionCode string `json:"versionCode"`
}

type relatedBillsPayload struct {
	RelatedBills []struct {
		Congress int    `json:"congress"`
		Type     string `json:"type"`
		Number   int    `json:"number"`
	} `json:"relatedBills"`
}

type cosponsorsPayload struct {
	Cosponsors []struct {
		BioguideID string `json:"bioguideId"`
	} `json:"cosponsors"`
}
