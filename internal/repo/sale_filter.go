package repo

import "time"

type SaleFilter struct {
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}
