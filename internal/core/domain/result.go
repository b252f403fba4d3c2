package domain

// ResultItem is one matched series as returned by the search backend.
// JSON names follow the backend catalogue.
type ResultItem struct {
	// DocID is the opaque identifier; unique within a set and across pages.
	DocID DocID `json:"docID"`

	// Title is the series title.
	Title string `json:"Series_Title"`

	// Poster is a link to the poster image.
	Poster string `json:"Poster_Link"`

	// Runtime is the running period, e.g. "(2008–2013)".
	Runtime string `json:"Runtime_of_Series"`

	// Certificate is the age rating.
	Certificate string `json:"Certificate"`

	// Genres lists genres in catalogue order.
	Genres []string `json:"Genre"`

	// Actors lists the cast in billing order.
	Actors []string `json:"Actors"`

	// Rating is the base rating from the catalogue.
	Rating float64 `json:"IMDB_Rating"`

	// Votes is the number of votes behind Rating.
	Votes int `json:"No_of_Votes"`

	// Overview is the synopsis.
	Overview string `json:"Overview"`

	// AvgStars is the server-computed mean star rating.
	// It is fetched lazily per item and changes after a rating submission.
	AvgStars float64 `json:"avgStars"`
}

// LeadActor returns the first-billed actor, or "" when the cast is unknown.
func (r ResultItem) LeadActor() string {
	if len(r.Actors) == 0 {
		return ""
	}
	return r.Actors[0]
}

// ResultSet is an ordered list of results tagged with the query that produced it.
// It is replaced wholesale on every search or relevance-feedback response.
type ResultSet struct {
	Query Query        `json:"query"`
	Items []ResultItem `json:"items"`
}

// Len returns the number of items.
func (s ResultSet) Len() int {
	return len(s.Items)
}

// Find returns the item with the given identifier.
func (s ResultSet) Find(id DocID) (ResultItem, bool) {
	for _, item := range s.Items {
		if item.DocID == id {
			return item, true
		}
	}
	return ResultItem{}, false
}

// Partition splits the set into the item with the given identifier and the
// remaining items in their original order.
func (s ResultSet) Partition(id DocID) (ResultItem, []ResultItem, bool) {
	var (
		primary ResultItem
		found   bool
	)
	related := make([]ResultItem, 0, len(s.Items))
	for _, item := range s.Items {
		if !found && item.DocID == id {
			primary = item
			found = true
			continue
		}
		related = append(related, item)
	}
	return primary, related, found
}

// Detail is what the detail view renders: one item and its related items.
type Detail struct {
	Primary ResultItem
	Related []ResultItem
}

// RatingStatusOK is the status the backend reports for an accepted rating.
const RatingStatusOK = "ok"

// RatingReceipt is the backend's answer to a single rating submission.
type RatingReceipt struct {
	Status   string  `json:"status"`
	AvgStars float64 `json:"avgStars"`
}

// Accepted reports whether the backend accepted the rating.
func (r RatingReceipt) Accepted() bool {
	return r.Status == RatingStatusOK
}
