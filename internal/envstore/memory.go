package envstore

// MemoryStore keeps the value in memory. It backs --dry-run and tests.
type MemoryStore struct {
	name   string
	value  string
	writes int

	// GetErr and SetErr, when set, are returned by Get and Set.
	GetErr error
	SetErr error
}

// NewMemoryStore creates a store holding value.
func NewMemoryStore(name, value string) *MemoryStore {
	return &MemoryStore{name: name, value: value}
}

func (m *MemoryStore) Name() string { return m.name }

func (m *MemoryStore) Get() (string, error) {
	if m.GetErr != nil {
		return "", m.GetErr
	}
	return m.value, nil
}

func (m *MemoryStore) Set(value string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.value = value
	m.writes++
	return nil
}

// Value returns the stored value without going through Get.
func (m *MemoryStore) Value() string { return m.value }

// Writes counts successful Set calls.
func (m *MemoryStore) Writes() int { return m.writes }
