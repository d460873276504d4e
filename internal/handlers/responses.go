package handlers

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreatedResponse struct {
	ID uint `json:"id"`
}

type IngestResponse struct {
	Status  string `json:"status"`
	Count   int    `json:"count"`
	BatchID string `json:"batch_id"`
}
