package mercadopago

// Статусы платежа Mercado Pago, которые различает reconciliation
const (
	PaymentStatusApproved  = "approved"
	PaymentStatusPending   = "pending"
	PaymentStatusInProcess = "in_process"
	PaymentStatusRejected  = "rejected"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusRefunded  = "refunded"
)

// Preference созданное платежное намерение (checkout preference)
type Preference struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"` // URL для редиректа клиента на оплату
}

// Payment платеж, полученный из API шлюза.
// ExternalReference несет корреляционный идентификатор, который мы передали
// при создании preference: ID брони либо ID группы.
type Payment struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"`
	StatusDetail      string  `json:"status_detail"`
	ExternalReference string  `json:"external_reference"`
	TransactionAmount float64 `json:"transaction_amount"`
}

// preferenceRequest тело запроса создания preference
type preferenceRequest struct {
	Items             []preferenceItem `json:"items"`
	ExternalReference string           `json:"external_reference"`
	NotificationURL   string           `json:"notification_url,omitempty"`
}

type preferenceItem struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
