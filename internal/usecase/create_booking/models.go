package create_booking

import (
	"time"

	"github.com/turnosapp/booking-service/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	BarberID    int64            // ID барбера
	ServiceID   int64            // ID услуги
	ClientName  string           // Имя клиента
	ClientPhone string           // Телефон клиента
	Date        time.Time        // Дата первого сеанса
	StartTime   types.TimeString // Время начала (например, "10:00")

	// ExtraServices дополнительные услуги свободным текстом (опционально)
	ExtraServices *string

	// WalkIn запись без онлайн-оплаты, создается барбером на месте.
	// Слот удерживается без окна оплаты и не попадает в онлайн-выручку.
	WalkIn bool
}

// Response модель ответа на создание записи
type Response struct {
	Bookings []CreatedBooking // Созданные сеансы (один или серия)
	GroupID  *string          // ID группы для многосеансовых услуг

	PaymentLink   *string    // Ссылка на оплату (nil для walk-in)
	PaymentAmount float64    // Сумма к онлайн-оплате
	IsDeposit     bool       // Онлайн оплачивается только залог (seña), остаток наличными
	HoldExpiresAt *time.Time // Момент истечения окна оплаты (nil для walk-in)
}

// CreatedBooking модель одного созданного сеанса
type CreatedBooking struct {
	ID              int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	ServiceName     string
	ServicePrice    float64
}
