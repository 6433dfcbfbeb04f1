package generator

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

// ticketIDPattern matches public ticket ids embedded anywhere in a query.
var ticketIDPattern = regexp.MustCompile(`\b(APP|COMP|CERT)-\d{6}\b`)

// BillIntent maps a set of trigger keywords to a demo bill record.
type BillIntent struct {
	Title    string          `yaml:"title"`
	Keywords []string        `yaml:"keywords"`
	Bill     domain.BillView `yaml:"bill"`
}

// Spec is the deterministic-intent configuration loaded from YAML. The
// demo billing directory lives here too so showcase deployments can edit
// amounts and due dates without a rebuild.
type Spec struct {
	Bills []BillIntent `yaml:"bills"`
}

// LoadSpec reads and validates the intent spec file.
func LoadSpec(path string) (*Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read intent spec: %w", err)
	}

	var spec Spec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse intent spec: %w", err)
	}

	for i := range spec.Bills {
		if spec.Bills[i].Title == "" || len(spec.Bills[i].Keywords) == 0 {
			return nil, fmt.Errorf("intent spec: bill entry %d needs a title and keywords", i)
		}
	}

	return &spec, nil
}

// Intent is the result of deterministic matching against a user query.
type Intent struct {
	Bill     *domain.BillView
	TicketID string
}

// Matcher resolves queries against the intent spec. Matching is pure string
// work, so this path never involves a language model and cannot hallucinate.
type Matcher struct {
	spec *Spec
}

// NewMatcher wraps a loaded spec.
func NewMatcher(spec *Spec) *Matcher {
	return &Matcher{spec: spec}
}

// Match returns the first intent triggered by the query, or nil. Ticket-id
// lookups win over bill keywords so "status of APP-000123" never turns into
// a bill reply.
func (m *Matcher) Match(query string) *Intent {
	if id := ticketIDPattern.FindString(strings.ToUpper(query)); id != "" {
		return &Intent{TicketID: id}
	}

	if m.spec == nil {
		return nil
	}

	lower := strings.ToLower(query)
	for i := range m.spec.Bills {
		for _, keyword := range m.spec.Bills[i].Keywords {
			if keyword != "" && strings.Contains(lower, strings.ToLower(keyword)) {
				bill := m.spec.Bills[i].Bill
				bill.Title = m.spec.Bills[i].Title
				return &Intent{Bill: &bill}
			}
		}
	}

	return nil
}
