package users

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	TelegramID int64
	Role       Role
}

// Stats — сводка по пользователям для экспорта.
type Stats struct {
	Total  int64
	Admins int64
	Users  int64
}
