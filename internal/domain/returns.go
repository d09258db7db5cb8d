package domain

import "time"

type ReturnCondition string

const (
	ReturnConditionGood    ReturnCondition = "GOOD"
	ReturnConditionDamaged ReturnCondition = "DAMAGED"
	ReturnConditionLost    ReturnCondition = "LOST"
)

type Return struct {
	ID               int32        `json:"id"`
	RentalID         int32        `json:"rental_id"`
	ReturnDate       time.Time    `json:"return_date"`
	TotalDamagePaise int64        `json:"total_damage_paise"`
	Notes            string       `json:"notes,omitempty"`
	Items            []ReturnItem `json:"items"`
	CreatedOn        time.Time    `json:"created_on"`
}

type ReturnItem struct {
	ID               int32           `json:"id"`
	ReturnID         int32           `json:"return_id"`
	RentalItemID     int32           `json:"rental_item_id"`
	ReturnedQuantity int32           `json:"returned_quantity"`
	Condition        ReturnCondition `json:"condition"`
	DamagePaise      int64           `json:"damage_paise"` // meaningful only when condition != GOOD
	DamageNote       string          `json:"damage_note,omitempty"`
	PhotoRefs        []string        `json:"photo_refs,omitempty"` // opaque capture-widget references, stored verbatim
}

// ReturnSubmission is one per-line-item entry in a return batch as
// submitted by the caller, before reconciliation.
type ReturnSubmission struct {
	RentalItemID     int32           `json:"rental_item_id"`
	ReturnedQuantity int32           `json:"returned_quantity"`
	Condition        ReturnCondition `json:"condition"`
	DamagePaise      int64           `json:"damage_paise"`
	DamageNote       string          `json:"damage_note,omitempty"`
	PhotoRefs        []string        `json:"photo_refs,omitempty"`
}
