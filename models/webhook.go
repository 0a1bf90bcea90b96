package models

// CoinbaseWebhookEvent is the envelope Coinbase Commerce posts to the
// webhook endpoint. Only the fields the handler reads are modeled.
type CoinbaseWebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		ID      string `json:"id"`
		Code    string `json:"code"`
		Pricing struct {
			Local struct {
				Amount   string `json:"amount"`
				Currency string `json:"currency"`
			} `json:"local"`
		} `json:"pricing"`
		Metadata struct {
			Items  string `json:"items"`
			Source string `json:"source"`
		} `json:"metadata"`
		Timeline []struct {
			Status string `json:"status"`
			Time   string `json:"time"`
		} `json:"timeline"`
	} `json:"data"`
}
