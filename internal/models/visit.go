package models

// Visit посещение зала по абонементу. ExitTime == nil означает, что клиент
// сейчас в зале.
type Visit struct {
	ID             int    `json:"id" db:"id"`
	SubscriptionID int    `json:"subscription_id" db:"subscription_id"`
	Date           Date   `json:"date" db:"date"`
	EnterTime      Clock  `json:"enter_time" db:"enter_time"`
	ExitTime       *Clock `json:"exit_time" db:"exit_time"`
}

// DummyVisit принимает данные посещения из JSON-запроса.
type DummyVisit struct {
	SubscriptionID int     `json:"subscription_id" validate:"required,gt=0"`
	Date           string  `json:"date" validate:"required,datetime=2006-01-02"`
	EnterTime      string  `json:"enter_time" validate:"required"`
	ExitTime       *string `json:"exit_time,omitempty"`
}

// DummyVisitUpdate частичное обновление посещения. ClearExit сбрасывает время
// выхода, так как null в JSON не отличить от отсутствующего поля.
type DummyVisitUpdate struct {
	SubscriptionID *int    `json:"subscription_id,omitempty" validate:"omitempty,gt=0"`
	Date           *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EnterTime      *string `json:"enter_time,omitempty"`
	ExitTime       *string `json:"exit_time,omitempty"`
	ClearExit      bool    `json:"clear_exit,omitempty"`
}

// VisitFilter фильтры списка посещений.
type VisitFilter struct {
	SubscriptionID *int
	Date           *Date
}
