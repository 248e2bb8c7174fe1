package domain

// AdminStats is the dashboard summary. Revenue is recomputed from each
// rental's duration through the pricing tiers, not from stored amounts.
type AdminStats struct {
	TotalRentals        int32 `json:"total_rentals"`
	ActiveRentals       int32 `json:"active_rentals"`
	TotalUsers          int32 `json:"total_users"`
	TotalKayaks         int32 `json:"total_kayaks"`
	AvailableKayaks     int32 `json:"available_kayaks"`
	TotalRevenueDollars int64 `json:"total_revenue_dollars"`
	RecentRentals       int32 `json:"recent_rentals"`
}
