package process_payment_event

// Request модель webhook-уведомления платежного шлюза
type Request struct {
	XSignature string // Заголовок x-signature
	XRequestID string // Заголовок x-request-id
	DataID     string // ID платежа из query-параметра data.id или тела
}

// Исходы обработки уведомления (метки для метрик)
const (
	OutcomeConfirmed    = "confirmed"    // Платеж применен (или идемпотентный повтор)
	OutcomeIgnored      = "ignored"      // Уведомление не про нас или платеж не найден
	OutcomeNotApproved  = "not_approved" // Платеж не в статусе approved, действий нет
	OutcomeInconsistent = "inconsistent" // Платеж не бьется с состоянием брони
	OutcomeFailed       = "failed"       // Внутренняя ошибка, уведомление подтверждено
)

// Response модель результата обработки уведомления
type Response struct {
	Outcome   string  // Исход обработки
	BookingID *int64  // ID подтвержденной брони (для одиночных)
	GroupID   *string // ID подтвержденной группы (для серий)
}
