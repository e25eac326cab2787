package serpapi

// Response is the subset of the proxy payload the client relies on. Only
// the fields read by the client are declared so that unrelated parts of
// the payload never fail the decoding.
type Response struct {
	OrganicResults []OrganicResult `json:"organic_results"`
}

type OrganicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}
