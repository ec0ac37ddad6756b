package parse

import "time"

// LineRecord is one row of the lines-of-code log: a single line of a file
// as of the commit that last touched it.
type LineRecord struct {
	File     string
	Line     int    // 1-based line index within File
	Type     string // language tag, e.g. "js", "css"
	Commit   string
	Author   string
	Date     *time.Time // date at local midnight; nil when blank or malformed
	Time     string
	Timezone string
	Datetime *time.Time // nil when blank or malformed
	Depth    int
	Length   int // line count of File
}

// Project is one entry of the project list.
type Project struct {
	Title       string `json:"title"`
	Image       string `json:"image,omitempty"`
	Year        Year   `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Profile is the subset of a GitHub user shown on the home page.
type Profile struct {
	Login       string `json:"login"`
	AvatarURL   string `json:"avatar_url"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
	PublicGists int    `json:"public_gists"`
}
