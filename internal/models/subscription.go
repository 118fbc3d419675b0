package models

// SubscriptionType категория абонемента, например "sport".
type SubscriptionType struct {
	ID    int    `json:"id" db:"id"`
	Title string `json:"title" db:"title"`
}

// DummySubscriptionType принимает название типа из JSON-запроса.
type DummySubscriptionType struct {
	Title string `json:"title" validate:"required,max=250"`
}

// Subscription абонемент клиента на период [StartDate, EndDate].
// Type хранит название типа, в таблице лежит ссылка type_id.
type Subscription struct {
	ID        int    `json:"id" db:"id"`
	UserID    int    `json:"user_id" db:"user_id"`
	TypeID    int    `json:"-" db:"type_id"`
	Type      string `json:"type" db:"type"`
	StartDate Date   `json:"start_date" db:"start_date"`
	EndDate   Date   `json:"end_date" db:"end_date"`
	Price     int    `json:"price" db:"price"`
}

// DummySubscription принимает данные нового абонемента из JSON-запроса.
// Даты приходят строками и разбираются в сервисе.
type DummySubscription struct {
	UserID    int    `json:"user_id" validate:"required,gt=0"`
	Type      string `json:"type" validate:"required,max=250"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Price     *int   `json:"price" validate:"required,gte=0"`
}

// DummySubscriptionUpdate частичное обновление абонемента.
type DummySubscriptionUpdate struct {
	Type      *string `json:"type,omitempty" validate:"omitempty,min=1,max=250"`
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Price     *int    `json:"price,omitempty" validate:"omitempty,gte=0"`
}

// SubscriptionFilter фильтры списка абонементов.
type SubscriptionFilter struct {
	Type   *string
	UserID *int
}
