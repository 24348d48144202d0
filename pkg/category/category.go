package category

// Vocabulary holds the fixed, ordered category lists for each transaction
// kind. It is read-only reference data: assembled once at startup and never
// mutated afterwards.
type Vocabulary struct {
	expense []string
	savings []string
}

var defaultExpense = []string{"Groceries", "Transport", "Entertainment", "Utilities", "Clothing", "Health", "Other"}
var defaultSavings = []string{"Car", "Education"}

// NewVocabulary builds a vocabulary from the given lists. An empty list keeps
// the built-in defaults for that kind.
func NewVocabulary(expense, savings []string) Vocabulary {
	v := Vocabulary{
		expense: defaultExpense,
		savings: defaultSavings,
	}
	if len(expense) > 0 {
		v.expense = expense
	}
	if len(savings) > 0 {
		v.savings = savings
	}
	return v
}

// Default returns the built-in vocabulary.
func Default() Vocabulary {
	return NewVocabulary(nil, nil)
}

// ForKind returns the ordered category list for a kind name ("expense" or
// "savings"). The second result is false for an unknown kind.
func (v Vocabulary) ForKind(kind string) ([]string, bool) {
	switch kind {
	case "expense":
		return v.expense, true
	case "savings":
		return v.savings, true
	default:
		return nil, false
	}
}

// Contains reports whether name belongs to the vocabulary list for kind.
func (v Vocabulary) Contains(kind string, name string) bool {
	categories, ok := v.ForKind(kind)
	if !ok {
		return false
	}
	for _, c := range categories {
		if c == name {
			return true
		}
	}
	return false
}
