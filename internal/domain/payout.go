package domain

// BarberEarnings агрегат заработка барбера за период по подтвержденным броням
type BarberEarnings struct {
	BarberID        int64
	ConfirmedCount  int64
	TotalPrice      float64 // сумма цен услуг
	TotalPaidOnline float64 // сумма оплат через шлюз (полные оплаты и señas)
	TotalCash       float64 // сумма остатков, собранных наличными
}
