package content

// PostsData is the paginated posts body.
type PostsData struct {
	Posts      []Post   `json:"posts"      doc:"Posts on this page"`
	Total      int      `json:"total"      doc:"Posts matching the filter" example:"6"`
	Categories []string `json:"categories" doc:"Every category, for filter chips"`
}

// PostsListOutput carries the page plus its Link header.
type PostsListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body PostsData
}

// PositionsData lists open roles and the values the application form accepts.
type PositionsData struct {
	Positions []Position `json:"positions"`
	Options   []string   `json:"options" doc:"Accepted values for the application's puesto field"`
}

// PositionsListOutput for GET /careers/positions.
type PositionsListOutput struct {
	Body PositionsData
}
