package appeals

import "time"

type Status string

const (
	StatusUnprocessed Status = "unprocessed"
	StatusProcessed   Status = "processed"
)

func (s Status) Valid() bool {
	return s == StatusUnprocessed || s == StatusProcessed
}

type FileType string

const (
	FilePhoto FileType = "photo"
	FileVideo FileType = "video"
)

func (t FileType) Valid() bool {
	return t == FilePhoto || t == FileVideo
}

type Appeal struct {
	ID        int64
	UserID    int64
	Phone     string
	FullName  string
	Address   string
	Domkom    string
	Text      string
	CreatedAt time.Time
	Status    Status
	Comment   string // пусто = комментария нет
}

type Media struct {
	ID       int64
	AppealID int64
	FilePath string
	FileType FileType
}

// Draft — заполненная форма перед записью. Все поля обязательны,
// проверяются на границе хранилища.
type Draft struct {
	UserID   int64  `validate:"required"`
	Phone    string `validate:"required"`
	FullName string `validate:"required"`
	Address  string `validate:"required"`
	Domkom   string `validate:"required"`
	Text     string `validate:"required"`
}

// ExportRow — строка листа «Murojaatlar» в выгрузке.
type ExportRow struct {
	Appeal
	MediaCount int
	MediaTypes []FileType
}

// Stats — сводка по обращениям и медиа для экспорта.
type Stats struct {
	Total       int64
	Processed   int64
	Unprocessed int64
	TotalMedia  int64
	MediaByType map[FileType]int64
}
