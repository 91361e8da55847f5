package models

// ServiceDetail is one per-service line inside a daily revenue record.
type ServiceDetail struct {
	ServiceID string `json:"serviceId"`
	Count     int    `json:"count"`
	Revenue   int    `json:"revenue"`
}

// Revenue is the per-day aggregate revenue record. Date is the unique key.
// Invariant: TotalRevenue == IVRevenue + EndoscopyRevenue after any merge.
// Merging two records for the same date sums the numeric fields and
// concatenates the detail lines; detail lines are NOT deduplicated by
// service across merges.
type Revenue struct {
	BaseModel
	Date             string          `json:"date"`
	IVRevenue        int             `json:"ivRevenue"`
	EndoscopyRevenue int             `json:"endoscopyRevenue"`
	TotalRevenue     int             `json:"totalRevenue"`
	ServiceDetails   []ServiceDetail `json:"serviceDetails"`
}

// DailyService is a per-day per-service usage tally used by the marketing
// reports. Appended on appointment completion.
type DailyService struct {
	BaseModel
	Date        string `json:"date"`
	ServiceID   string `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Count       int    `json:"count"`
}
