package questions

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/questions.yaml
var defaultBankYAML []byte

// Bank is a question set plus its defaults.
type Bank struct {
	Server    ServerConfig `yaml:"server"`
	Questions []Question   `yaml:"questions"`
}

// ParseBank decodes and validates a YAML bank. Duplicate ids are rejected.
func ParseBank(data []byte) (*Bank, error) {
	var b Bank
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("questions: decode bank: %w", err)
	}
	if b.Server.QuestionTimeLimit < 0 {
		return nil, errors.New("questions: negative question_time_limit")
	}
	seen := make(map[string]bool, len(b.Questions))
	for _, q := range b.Questions {
		if err := q.Validate(); err != nil {
			return nil, err
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("questions: duplicate question id %s", q.ID)
		}
		seen[q.ID] = true
	}
	return &b, nil
}

// DefaultBank returns the embedded bank.
func DefaultBank() *Bank {
	b, err := ParseBank(defaultBankYAML)
	if err != nil {
		return &Bank{}
	}
	return b
}

// Filter keeps questions whose category matches (case-insensitive).
// An empty category keeps everything.
func (b *Bank) Filter(category string) *Bank {
	if category == "" {
		return b
	}
	out := &Bank{Server: b.Server}
	for _, q := range b.Questions {
		if strings.EqualFold(q.Category, category) {
			out.Questions = append(out.Questions, q)
		}
	}
	return out
}

// Categories lists the distinct categories in bank order.
func (b *Bank) Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, q := range b.Questions {
		if q.Category != "" && !seen[q.Category] {
			seen[q.Category] = true
			out = append(out, q.Category)
		}
	}
	return out
}

// Loader fetches the bank a session plays with.
type Loader struct {
	// Path to a YAML bank; empty uses the embedded bank.
	Path string
	// Category restricts the bank; empty keeps every question.
	Category string
	Logger   *log.Logger
}

// Load reads, validates and filters the bank. A bank that ends up empty is
// returned without error; sessions handle it by skipping questions.
func (l Loader) Load(ctx context.Context) (*Bank, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}

	var bank *Bank
	if l.Path == "" {
		bank = DefaultBank()
	} else {
		data, err := os.ReadFile(l.Path)
		if err != nil {
			return nil, fmt.Errorf("questions: read %s: %w", l.Path, err)
		}
		bank, err = ParseBank(data)
		if err != nil {
			return nil, fmt.Errorf("questions: parse %s: %w", l.Path, err)
		}
	}

	bank = bank.Filter(l.Category)
	if len(bank.Questions) == 0 {
		logger.Warn("question bank is empty", "path", l.Path, "category", l.Category)
	} else {
		logger.Debug("question bank loaded", "questions", len(bank.Questions), "category", l.Category)
	}
	return bank, nil
}
