package store

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/ytget/otp-grid/internal/model"
)

// Preference keys
const (
	KeyTokenOrder  = "tokenOrder"
	tokenKeyPrefix = "token:"
)

var (
	// ErrIndexOutOfRange is returned for indices outside [0, Count())
	ErrIndexOutOfRange = errors.New("token index out of range")

	// ErrNotFound is returned when an ordered ID has no stored record
	ErrNotFound = errors.New("token record not found")
)

// TokenStore is an ordered, durable collection of tokens
type TokenStore struct {
	prefs fyne.Preferences

	mu    sync.RWMutex
	order []string

	codeSource func(*model.Token) model.CodeSource
}

// NewTokenStore creates a store backed by the given preferences
func NewTokenStore(prefs fyne.Preferences) *TokenStore {
	s := &TokenStore{prefs: prefs}
	s.order = append([]string(nil), prefs.StringList(KeyTokenOrder)...)
	return s
}

// SetCodeSourceFactory attaches a code source to every loaded token
func (s *TokenStore) SetCodeSourceFactory(factory func(*model.Token) model.CodeSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codeSource = factory
}

// Count returns the number of ordered tokens
func (s *TokenStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// IDs returns a copy of the current order
func (s *TokenStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Load returns the token at index. The second value is false when the index
// is out of range or the record is missing or unreadable.
func (s *TokenStore) Load(index int) (*model.Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.order) {
		return nil, false
	}

	id := s.order[index]
	token, err := s.readRecord(id)
	if err != nil {
		log.Printf("Failed to load token %s at index %d: %v", id, index, err)
		return nil, false
	}
	if s.codeSource != nil {
		token.Codes = s.codeSource(token)
	}
	return token, true
}

// Move relocates the token at from to position to. Tokens in between shift
// by one position. Moving an index onto itself is a no-op and writes nothing.
func (s *TokenStore) Move(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.order)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("move %d -> %d with %d tokens: %w", from, to, n, ErrIndexOutOfRange)
	}
	if from == to {
		return nil
	}

	s.order = moveID(s.order, from, to)
	s.prefs.SetStringList(KeyTokenOrder, s.order)
	return nil
}

// Add appends a token, assigning a new ID when it has none
func (s *TokenStore) Add(token *model.Token) (*model.Token, error) {
	if token == nil {
		return nil, errors.New("cannot add nil token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	for _, id := range s.order {
		if id == token.ID {
			return nil, fmt.Errorf("token already exists: %s", token.ID)
		}
	}

	if err := s.writeRecord(token); err != nil {
		return nil, err
	}
	s.order = append(s.order, token.ID)
	s.prefs.SetStringList(KeyTokenOrder, s.order)
	return token, nil
}

// Erase removes the token at index together with its record
func (s *TokenStore) Erase(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.order) {
		return fmt.Errorf("erase %d with %d tokens: %w", index, len(s.order), ErrIndexOutOfRange)
	}

	id := s.order[index]
	s.order = append(s.order[:index], s.order[index+1:]...)
	s.prefs.SetStringList(KeyTokenOrder, s.order)
	s.prefs.RemoveValue(tokenKeyPrefix + id)
	return nil
}

func (s *TokenStore) readRecord(id string) (*model.Token, error) {
	raw := s.prefs.String(tokenKeyPrefix + id)
	if raw == "" {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	var token model.Token
	if err := json.Unmarshal([]byte(raw), &token); err != nil {
		return nil, fmt.Errorf("decode token %s: %w", id, err)
	}
	token.ID = id
	return &token, nil
}

func (s *TokenStore) writeRecord(token *model.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode token %s: %w", token.ID, err)
	}
	s.prefs.SetString(tokenKeyPrefix+token.ID, string(data))
	return nil
}

// moveID returns order with the element at from relocated to to
func moveID(order []string, from, to int) []string {
	id := order[from]
	out := make([]string, 0, len(order))
	out = append(out, order[:from]...)
	out = append(out, order[from+1:]...)

	out = append(out, "")
	copy(out[to+1:], out[to:])
	out[to] = id
	return out
}
