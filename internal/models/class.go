package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Типы классов.
const (
	ClassTypeLive     = "live"
	ClassTypeRecorded = "recorded"
)

// DefaultThumbnail подставляется, если превью не задано.
const DefaultThumbnail = "https://via.placeholder.com/300x200"

// Class представляет учебный класс: живую трансляцию или запись.
//
// Schedule обязателен только для type = live.
type Class struct {
	ID               string     `json:"_id" db:"id"`
	Title            string     `json:"title" db:"title"`
	Description      string     `json:"description" db:"description"`
	Instructor       string     `json:"instructor" db:"instructor"`
	Type             string     `json:"type" db:"type"`
	VideoURL         string     `json:"videoUrl" db:"video_url"`
	Thumbnail        string     `json:"thumbnail" db:"thumbnail"`
	Duration         string     `json:"duration" db:"duration"`
	Schedule         *time.Time `json:"schedule,omitempty" db:"schedule"`
	EnrolledStudents []string   `json:"enrolledStudents" db:"-"`
	IsActive         bool       `json:"isActive" db:"is_active"`
	Views            int64      `json:"views" db:"views"`
	Category         string     `json:"category" db:"category"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}

// ClassSummary класс в выдаче каталога: без списка записанных студентов.
type ClassSummary struct {
	Class
}

// MarshalJSON сериализует класс, опуская enrolledStudents.
func (c ClassSummary) MarshalJSON() ([]byte, error) {
	type plain Class
	return json.Marshal(struct {
		plain
		EnrolledStudents []string `json:"enrolledStudents,omitempty"`
	}{plain: plain(c.Class)})
}

// Summaries оборачивает классы для выдачи каталога.
func Summaries(classes []*Class) []ClassSummary {
	out := make([]ClassSummary, 0, len(classes))
	for _, c := range classes {
		out = append(out, ClassSummary{Class: *c})
	}
	return out
}

// ClassFilter параметры выборки каталога.
type ClassFilter struct {
	Type     string // live или recorded, пустая строка означает любой
	Category string // точное совпадение, пустая строка означает любую
	Search   string // подстрока в title, description или instructor без учета регистра
	Limit    int
}

// ClassInput используется для приёма данных класса из JSON-запроса
// администратора при создании и обновлении.
type ClassInput struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Instructor  string     `json:"instructor" validate:"required"`
	Type        string     `json:"type" validate:"required,oneof=live recorded"`
	VideoURL    string     `json:"videoUrl" validate:"required"`
	Thumbnail   string     `json:"thumbnail"`
	Duration    string     `json:"duration" validate:"required"`
	Schedule    Schedule   `json:"schedule"`
	IsActive    *bool      `json:"isActive"`
	Category    string     `json:"category" validate:"required"`
}

// ToClass переносит входные данные в модель, применяя значения по умолчанию.
func (in *ClassInput) ToClass() Class {
	c := Class{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Instructor:  in.Instructor,
		Type:        in.Type,
		VideoURL:    in.VideoURL,
		Thumbnail:   in.Thumbnail,
		Duration:    in.Duration,
		Schedule:    in.Schedule.Ptr(),
		IsActive:    true,
		Category:    in.Category,
	}
	if c.Thumbnail == "" {
		c.Thumbnail = DefaultThumbnail
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	return c
}

// scheduleLayouts форматы расписания: RFC3339 и значение поля datetime-local
// с секундами и без.
var scheduleLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Schedule время начала живого класса во входных данных.
// Пустая строка и null означают, что расписание не задано. Время без зоны
// считается UTC.
type Schedule struct {
	time.Time
}

// UnmarshalJSON разбирает расписание в одном из scheduleLayouts.
func (s *Schedule) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		s.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		s.Time = time.Time{}
		return nil
	}

	for _, layout := range scheduleLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			s.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("schedule: unsupported time format %q", raw)
}

// Ptr возвращает время или nil, если расписание не задано.
func (s Schedule) Ptr() *time.Time {
	if s.IsZero() {
		return nil
	}
	t := s.Time
	return &t
}
