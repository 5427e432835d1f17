package dto

// SearchClassesQuery carries the raw search filters from the query string.
type SearchClassesQuery struct {
	WeekDay string `form:"week_day"`
	Subject string `form:"subject"`
	Time    string `form:"time"`
}

// ScheduleItem is one weekly availability window in "HH:MM" form.
type ScheduleItem struct {
	WeekDay *int   `json:"week_day" validate:"required,min=0,max=6"`
	From    string `json:"from" validate:"required,hhmm"`
	To      string `json:"to" validate:"required,hhmm"`
}

// RegisterClassRequest registers a tutor, one offering and its availability.
type RegisterClassRequest struct {
	Name     string         `json:"name" validate:"required,max=255"`
	Avatar   string         `json:"avatar" validate:"required,max=255"`
	Whatsapp string         `json:"whatsapp" validate:"required,max=255"`
	Bio      string         `json:"bio" validate:"required"`
	Subject  string         `json:"subject" validate:"required,max=255"`
	Cost     *float64       `json:"cost" validate:"required,gte=0"`
	Schedule []ScheduleItem `json:"schedule" validate:"required,min=1,dive"`
}

// ClassScheduleWindow renders a stored window back into wire form.
type ClassScheduleWindow struct {
	WeekDay    int    `json:"week_day"`
	From       string `json:"from"`
	To         string `json:"to"`
	FromMinute int    `json:"from_minute"`
	ToMinute   int    `json:"to_minute"`
}

// ClassScheduleResponse is an offering with its full weekly availability.
type ClassScheduleResponse struct {
	ID       string                `json:"id"`
	Subject  string                `json:"subject"`
	Cost     float64               `json:"cost"`
	TutorID  string                `json:"tutor_id"`
	Name     string                `json:"name"`
	Avatar   string                `json:"avatar"`
	Whatsapp string                `json:"whatsapp"`
	Bio      string                `json:"bio"`
	Schedule []ClassScheduleWindow `json:"schedule"`
}

// ExportClassesQuery selects the export format on top of the search filters.
type ExportClassesQuery struct {
	SearchClassesQuery
	Format string `form:"format"`
}
