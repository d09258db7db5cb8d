package domain

import "time"

type StockCategory struct {
	ID             int32     `json:"id"`
	Name           string    `json:"name"`
	DailyRatePaise int64     `json:"daily_rate_paise"`
	Size           string    `json:"size,omitempty"`
	WeightKg       string    `json:"weight_kg,omitempty"`
	Material       string    `json:"material,omitempty"`
	CreatedOn      time.Time `json:"created_on"`
}

// StockItem tracks the quantity ledger for one category.
// Invariant at rest: TotalQuantity == Available + Rented + Damaged.
type StockItem struct {
	ID                int32     `json:"id"`
	CategoryID        int32     `json:"category_id"`
	TotalQuantity     int32     `json:"total_quantity"`
	AvailableQuantity int32     `json:"available_quantity"`
	RentedQuantity    int32     `json:"rented_quantity"`
	DamagedQuantity   int32     `json:"damaged_quantity"`
	UpdatedOn         time.Time `json:"updated_on"`
}

// StockMove is one counter mutation derived from a return submission.
// Damaged and lost stock both land in the damaged counter; neither
// returns to available.
type StockMove struct {
	CategoryID int32
	Quantity   int32
	ToDamaged  bool
}
