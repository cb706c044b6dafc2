package domain

import "time"

// CategoryType splits categories between the two transaction kinds
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category groups transactions. Global categories (UserID nil) are managed by
// admins and visible to everyone; personal ones belong to a single user.
type Category struct {
	ID        int64        `json:"id"`
	UserID    *int64       `json:"userId,omitempty"`
	Name      string       `json:"name"`
	Icon      string       `json:"icon"`
	Color     string       `json:"color"`
	Type      CategoryType `json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
}

// DefaultCategories are seeded for every new user at registration
var DefaultCategories = []Category{
	{Name: "Salario", Icon: "💰", Color: "#10b981", Type: CategoryTypeIncome},
	{Name: "Freelance", Icon: "💻", Color: "#3b82f6", Type: CategoryTypeIncome},
	{Name: "Comida", Icon: "🍔", Color: "#f59e0b", Type: CategoryTypeExpense},
	{Name: "Transporte", Icon: "🚗", Color: "#8b5cf6", Type: CategoryTypeExpense},
	{Name: "Entretenimiento", Icon: "🎮", Color: "#ec4899", Type: CategoryTypeExpense},
	{Name: "Educación", Icon: "📚", Color: "#06b6d4", Type: CategoryTypeExpense},
	{Name: "Salud", Icon: "⚕️", Color: "#ef4444", Type: CategoryTypeExpense},
	{Name: "Otros", Icon: "📦", Color: "#6b7280", Type: CategoryTypeExpense},
}

// CategoryRepository defines the interface for category persistence operations
type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(id int64) (*Category, error)
	// GetVisible returns the user's own categories plus the global ones
	GetVisible(userID int64) ([]*Category, error)
	GetAll() ([]*Category, error)
	Update(id int64, name, icon, color string, categoryType CategoryType) (*Category, error)
	Delete(id int64) error
}
