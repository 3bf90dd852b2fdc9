package models

// Post represents one Hacker News front page entry
//
// Author, Score and Comments are nil when the page does not show them,
// e.g. for job postings.
type Post struct {
	Rank     int     `json:"rank"`
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Author   *string `json:"author,omitempty"`
	Score    *int    `json:"score,omitempty"`
	Comments *int    `json:"comments,omitempty"`
}
