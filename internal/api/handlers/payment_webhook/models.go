package payment_webhook

// webhookBody тело уведомления Mercado Pago.
// ID платежа может приходить и в query-параметре data.id, и в теле.
type webhookBody struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// WebhookResponse HTTP response model
type WebhookResponse struct {
	Status string `json:"status"`
}
