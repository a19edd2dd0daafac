package domain

// TrafficAlert is one item of the public-transport disruption feed.
type TrafficAlert struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PubDate     string `json:"pubDate,omitempty"`
	Link        string `json:"link,omitempty"`
}
