package dialog

import "github.com/davron-dev/murojaat-bot/internal/domain/appeals"

type State string

const (
	StateIdle State = "idle"

	// Мастер подачи обращения
	StatePhone    State = "appeal_phone"
	StateFullName State = "appeal_full_name"
	StateAddress  State = "appeal_address"
	StateDomkom   State = "appeal_domkom"
	StateText     State = "appeal_text"
	StateMedia    State = "appeal_media"
	StatePreview  State = "appeal_preview"

	// Админ
	StateAwaitUserID  State = "adm_await_user_id" // ввод ID для назначения админом
	StateAwaitComment State = "adm_await_comment" // ввод комментария к обращению
)

// formOrder — единственный источник порядка шагов мастера.
// Переходы back/next считаются по нему, а не по условиям в обработчиках.
var formOrder = []State{
	StatePhone,
	StateFullName,
	StateAddress,
	StateDomkom,
	StateText,
	StateMedia,
	StatePreview,
}

func formIndex(s State) int {
	for i, st := range formOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// IsFormState — шаг мастера подачи обращения.
func IsFormState(s State) bool { return formIndex(s) >= 0 }

// Next — следующий шаг мастера; ok=false на последнем шаге и вне мастера.
func Next(s State) (State, bool) {
	i := formIndex(s)
	if i < 0 || i+1 >= len(formOrder) {
		return s, false
	}
	return formOrder[i+1], true
}

// Prev — предыдущий шаг; ok=false на первом шаге (phone) и вне мастера.
func Prev(s State) (State, bool) {
	i := formIndex(s)
	if i <= 0 {
		return s, false
	}
	return formOrder[i-1], true
}

// MediaRef — вложение черновика: путь в media-каталоге и тип.
type MediaRef struct {
	Path string
	Type appeals.FileType
}

// Draft — заполняемая форма. Живёт только в памяти сессии:
// рестарт процесса теряет незавершённые формы, это ожидаемое поведение.
type Draft struct {
	Phone    string
	FullName string
	Address  string
	Domkom   string
	Text     string
	Media    []MediaRef
}

// ClearStep сбрасывает значение шага, на который вернулись кнопкой «Назад».
// Значение вводится заново — так вела себя исходная форма.
func (d *Draft) ClearStep(s State) {
	switch s {
	case StatePhone:
		d.Phone = ""
	case StateFullName:
		d.FullName = ""
	case StateAddress:
		d.Address = ""
	case StateDomkom:
		d.Domkom = ""
	case StateText:
		d.Text = ""
	case StateMedia:
		d.Media = nil
	}
}

// Session — состояние одного диалога: текущий шаг, черновик формы
// и цель незакрытого комментария (для админа).
// ListStatus/ListPage запоминают, какой список админ смотрел последним,
// чтобы кнопка «Ro'yxatga» вернула его на то же место.
type Session struct {
	ChatID          int64
	State           State
	Draft           Draft
	CommentAppealID int64
	ListStatus      appeals.Status
	ListPage        int
}
