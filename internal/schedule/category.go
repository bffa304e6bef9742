package schedule

import "strings"

// Category is the kind of activity a schedule represents.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryExercise Category = "exercise"
	CategoryStudy    Category = "study"
	CategoryMeeting  Category = "meeting"
)

// DefaultColor is used for unknown categories.
const DefaultColor = "#3B82F6"

// CategoryInfo is the display metadata of a category.
type CategoryInfo struct {
	ID     Category
	Color  string // hex "#RRGGBB"
	Icon   string
	NameEN string
	NameKO string
}

var categories = []CategoryInfo{
	{ID: CategoryWork, Color: "#3B82F6", Icon: "💼", NameEN: "Work", NameKO: "업무"},
	{ID: CategoryPersonal, Color: "#10B981", Icon: "🏠", NameEN: "Personal", NameKO: "개인"},
	{ID: CategoryExercise, Color: "#EF4444", Icon: "🏃", NameEN: "Exercise", NameKO: "운동"},
	{ID: CategoryStudy, Color: "#8B5CF6", Icon: "📚", NameEN: "Study", NameKO: "공부"},
	{ID: CategoryMeeting, Color: "#F59E0B", Icon: "🤝", NameEN: "Meeting", NameKO: "미팅"},
}

// Categories returns every category in display order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory accepts a category id, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Valid returns true if the category is a known value.
func (c Category) Valid() bool {
	_, ok := c.lookup()
	return ok
}

func (c Category) lookup() (CategoryInfo, bool) {
	for _, info := range categories {
		if info.ID == c {
			return info, true
		}
	}
	return CategoryInfo{}, false
}

// Info returns the display metadata. Unknown categories fall back to work.
func (c Category) Info() CategoryInfo {
	if info, ok := c.lookup(); ok {
		return info
	}
	return categories[0]
}

// Color returns the category's hex color.
func (c Category) Color() string {
	if info, ok := c.lookup(); ok {
		return info.Color
	}
	return DefaultColor
}

// Icon returns the category's icon.
func (c Category) Icon() string {
	return c.Info().Icon
}

// Name returns the display name in the given language ("en" or "ko").
func (c Category) Name(lang string) string {
	info := c.Info()
	if lang == "ko" {
		return info.NameKO
	}
	return info.NameEN
}

// Next returns the category after c in display order, wrapping around.
func (c Category) Next() Category {
	for i, info := range categories {
		if info.ID == c {
			return categories[(i+1)%len(categories)].ID
		}
	}
	return categories[0].ID
}
