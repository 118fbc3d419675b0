package models

// TypeCount количество абонементов одного типа.
type TypeCount struct {
	Type  string `json:"type" db:"type"`
	Count int    `json:"count" db:"count"`
}

// Period закрытый интервал дат [From, To].
type Period struct {
	From Date
	To   Date
}

// PeriodStatistics статистика за выбранный период.
type PeriodStatistics struct {
	From                         Date        `json:"from"`
	To                           Date        `json:"to"`
	VisitsInPeriod               int         `json:"visits_in_period"`
	SubscriptionsInPeriodPerType []TypeCount `json:"subscriptions_in_period_per_type"`
}

// Statistics агрегированная статистика зала. Period заполняется,
// только если запрошен параметр from.
type Statistics struct {
	TotalClients              int               `json:"total_clients"`
	TotalSubscriptionsPerType []TypeCount       `json:"total_subscriptions_per_type"`
	CurrentVisits             int               `json:"current_visits"`
	Period                    *PeriodStatistics `json:"period,omitempty"`
}
