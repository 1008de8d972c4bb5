// Package locale holds the active UI language, its persistence and the
// translation lookup used when rendering pages.
package locale

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Language string

const (
	English Language = "en"
	Hebrew  Language = "he"

	DefaultLanguage = Hebrew

	// StorageKey is where the language preference is persisted.
	StorageKey = "cryptomaster-language"
)

var Supported = []Language{English, Hebrew}

var ErrUnsupportedLanguage = errors.New("unsupported language")

func Parse(s string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	for _, l := range Supported {
		if l == lang {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
}

// Direction is the text direction of lang: "rtl" for Hebrew, "ltr" otherwise.
func Direction(lang Language) string {
	if lang == Hebrew {
		return "rtl"
	}
	return "ltr"
}

// Document carries the root element attributes for a language.
type Document struct {
	Lang string `json:"lang"`
	Dir  string `json:"dir"`
}

func DocumentFor(lang Language) Document {
	return Document{Lang: string(lang), Dir: Direction(lang)}
}

// Storage persists string preferences.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Store owns the current language. Every change is persisted and the
// resulting document attributes are pushed to registered listeners.
type Store struct {
	storage Storage
	logger  zerolog.Logger

	mu        sync.RWMutex
	language  Language
	listeners []func(Document)
}

func NewStore(storage Storage) (*Store, error) {
	s := &Store{
		storage: storage,
		logger:  log.With().Str("component", "locale").Logger(),
	}

	stored, ok, err := storage.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load language preference: %w", err)
	}

	lang := DefaultLanguage
	if ok {
		if parsed, err := Parse(stored); err == nil {
			lang = parsed
		} else {
			s.logger.Warn().Str("stored", stored).Msg("ignoring unsupported stored language")
			ok = false
		}
	}
	if !ok {
		if err := storage.Set(StorageKey, string(lang)); err != nil {
			return nil, fmt.Errorf("persist default language: %w", err)
		}
	}

	s.language = lang
	return s, nil
}

func (s *Store) Language() Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

func (s *Store) Document() Document {
	return DocumentFor(s.Language())
}

// OnChange registers fn to receive the document attributes after each change.
func (s *Store) OnChange(fn func(Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) SetLanguage(lang Language) error {
	if _, err := Parse(string(lang)); err != nil {
		return err
	}
	if err := s.storage.Set(StorageKey, string(lang)); err != nil {
		return fmt.Errorf("persist language: %w", err)
	}

	s.mu.Lock()
	s.language = lang
	listeners := make([]func(Document), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	doc := DocumentFor(lang)
	for _, fn := range listeners {
		fn(doc)
	}
	s.logger.Info().Str("language", doc.Lang).Str("dir", doc.Dir).Msg("language changed")
	return nil
}

// Toggle switches between English and Hebrew and returns the new language.
func (s *Store) Toggle() (Language, error) {
	next := Hebrew
	if s.Language() == Hebrew {
		next = English
	}
	return next, s.SetLanguage(next)
}

func (s *Store) T(key string) string {
	return Lookup(s.Language(), key)
}

func (s *Store) Localizer() Localizer {
	return NewLocalizer(s.Language())
}

// Lookup returns the text for key in lang, or key itself when missing.
func Lookup(lang Language, key string) string {
	if v, ok := tables[lang][key]; ok && v != "" {
		return v
	}
	return key
}

// Localizer is the per-render language context handed to templates.
type Localizer struct {
	Language Language
	Document Document
}

func NewLocalizer(lang Language) Localizer {
	return Localizer{Language: lang, Document: DocumentFor(lang)}
}

func (l Localizer) T(key string) string {
	return Lookup(l.Language, key)
}

// Format looks up key and substitutes {name} placeholders from vars.
func (l Localizer) Format(key string, vars map[string]string) string {
	text := l.T(key)
	for name, value := range vars {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}

func (l Localizer) RTL() bool {
	return l.Document.Dir == "rtl"
}

// MemoryStorage is an in-process Storage.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
