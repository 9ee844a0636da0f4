package models

// ClassStats счетчики каталога для текущего пользователя.
type ClassStats struct {
	TotalClasses    int   `json:"totalClasses" db:"total_classes"`
	LiveClasses     int   `json:"liveClasses" db:"live_classes"`
	RecordedClasses int   `json:"recordedClasses" db:"recorded_classes"`
	EnrolledClasses int   `json:"enrolledClasses" db:"enrolled_classes"`
	TotalViews      int64 `json:"totalViews" db:"total_views"`
}

// DashboardStats агрегаты админ-панели.
type DashboardStats struct {
	TotalUsers   int   `json:"totalUsers" db:"total_users"`
	TotalClasses int   `json:"totalClasses" db:"total_classes"`
	LiveClasses  int   `json:"liveClasses" db:"live_classes"`
	TotalViews   int64 `json:"totalViews" db:"total_views"`
}

// PopularClass краткая карточка класса в топе просмотров.
type PopularClass struct {
	ID               string   `json:"_id" db:"id"`
	Title            string   `json:"title" db:"title"`
	Views            int64    `json:"views" db:"views"`
	EnrolledStudents []string `json:"enrolledStudents" db:"-"`
}

// CategoryCount количество классов в категории.
type CategoryCount struct {
	Category string `json:"_id" db:"category"`
	Count    int    `json:"count" db:"count"`
}

// Dashboard сводка админ-панели.
type Dashboard struct {
	Stats          DashboardStats  `json:"stats"`
	RecentUsers    []*User         `json:"recentUsers"`
	PopularClasses []*PopularClass `json:"popularClasses"`
	CategoryStats  []CategoryCount `json:"categoryStats"`
}
