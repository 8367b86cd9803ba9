package manage_blocks

import (
	"github.com/turnosapp/booking-service/internal/domain"
)

// BlockSlotRequest HTTP request model
type BlockSlotRequest struct {
	Date string `json:"date"` // "2026-09-15"
	Time string `json:"time"` // "10:00"
}

// BlockResponse HTTP response model
type BlockResponse struct {
	ID       int64  `json:"id"`
	BarberID int64  `json:"barberId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// FromDomain конвертирует domain модель в HTTP response
func FromDomain(block *domain.Block) *BlockResponse {
	return &BlockResponse{
		ID:       block.ID,
		BarberID: block.BarberID,
		Date:     block.Date.Format(domain.DateFormat),
		Time:     block.Time.String(),
	}
}
