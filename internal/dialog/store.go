package dialog

import "sync"

// Store — сессии диалогов в памяти процесса, ключ — chat_id.
// Сессии разных чатов независимы; мьютекс защищает только саму карту,
// внутри одного чата апдейты обрабатываются строго по одному.
type Store struct {
	mu    sync.Mutex
	items map[int64]Session
}

func NewStore() *Store {
	return &Store{items: make(map[int64]Session)}
}

// Get возвращает сессию чата; для нового чата — пустую в StateIdle.
func (s *Store) Get(chatID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.items[chatID]; ok {
		return sess
	}
	return Session{ChatID: chatID, State: StateIdle}
}

func (s *Store) Set(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[sess.ChatID] = sess
}

// Reset сбрасывает сессию: черновик и незакрытый комментарий пропадают.
func (s *Store) Reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, chatID)
}
