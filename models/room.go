package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PricePair holds the two sale modes of a room for one weekday.
type PricePair struct {
	Stay   int `json:"stay"`
	DayUse int `json:"dayUse"`
}

// WeekPrices maps a lowercase weekday key ("mon".."sun") to its prices.
type WeekPrices map[string]PricePair

var weekdayKeys = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// WeekdayKey returns the price-table key for a time.Weekday.
func WeekdayKey(d time.Weekday) string {
	return weekdayKeys[int(d)]
}

// For returns the price pair for the given weekday (zero pair if missing).
func (w WeekPrices) For(d time.Weekday) PricePair {
	return w[WeekdayKey(d)]
}

// Complete reports whether all 7 weekdays have an entry.
func (w WeekPrices) Complete() bool {
	for _, k := range weekdayKeys {
		if _, ok := w[k]; !ok {
			return false
		}
	}
	return true
}

type Room struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name string `json:"name" gorm:"type:varchar(100)"`

	// Per-weekday {stay, dayUse} price table, kept as one JSON column.
	Prices datatypes.JSONType[WeekPrices] `json:"prices" gorm:"column:prices"`

	// Base count of sellable units, uniform across dates unless adjusted.
	Inventory int `json:"inventory" gorm:"column:inventory"`

	DiscountRate *int   `json:"discountRate,omitempty" gorm:"column:discount_rate"`
	SortOrder    int    `json:"sortOrder" gorm:"column:sort_order;default:0"`
	ImageURL     string `json:"imageUrl" gorm:"column:image_url;type:varchar(500)"`
	CheckInTime  string `json:"checkInTime" gorm:"column:check_in_time;type:varchar(20)"`
	CheckOutTime string `json:"checkOutTime" gorm:"column:check_out_time;type:varchar(20)"`
}
