package grievance_test

import (
	"sort"
	"sync"
	"time"

	"gramalert/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface, for tests
// that assert on call counts and error paths.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateGrievance(g *models.Grievance) error {
	args := m.Called(g)
	return args.Error(0)
}

func (m *MockStorage) GetGrievanceByID(id string) (*models.Grievance, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Grievance), args.Error(1)
}

func (m *MockStorage) GetAllGrievances() ([]models.Grievance, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Grievance), args.Error(1)
}

func (m *MockStorage) GetGrievancesByOwner(ownerID string) ([]models.Grievance, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Grievance), args.Error(1)
}

func (m *MockStorage) UpdateGrievanceFields(id string, fields map[string]interface{}) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

func (m *MockStorage) MarkGrievanceOverdue(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUsersByIDs(ids []string) (map[string]models.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.User), args.Error(1)
}

func (m *MockStorage) PublishGrievance(snapshot models.GrievanceSnapshot) error {
	args := m.Called(snapshot)
	return args.Error(0)
}

// MockNotifier is a testify mock of the grievance.Notifier interface.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishGrievance(snapshot models.GrievanceSnapshot) error {
	args := m.Called(snapshot)
	return args.Error(0)
}

// recordingNotifier collects every published snapshot in order, for tests
// that assert exactly-once delivery per mutation.
type recordingNotifier struct {
	mu        sync.Mutex
	snapshots []models.GrievanceSnapshot
}

func (n *recordingNotifier) PublishGrievance(snapshot models.GrievanceSnapshot) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.snapshots = append(n.snapshots, snapshot)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.snapshots)
}

func (n *recordingNotifier) last() models.GrievanceSnapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.snapshots[len(n.snapshots)-1]
}

// memStorage is an in-memory storage.Storage with real read-after-write
// behavior, for scenarios that drive the lifecycle service and the sweeper
// against the same state.
type memStorage struct {
	mu         sync.Mutex
	grievances map[string]*models.Grievance
	order      []string
	users      map[string]*models.User
}

func newMemStorage() *memStorage {
	return &memStorage{
		grievances: make(map[string]*models.Grievance),
		users:      make(map[string]*models.User),
	}
}

func (m *memStorage) addUser(user models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = &user
}

func (m *memStorage) CreateGrievance(g *models.Grievance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	stored := *g
	m.grievances[g.ID] = &stored
	m.order = append(m.order, g.ID)
	return nil
}

func (m *memStorage) GetGrievanceByID(id string) (*models.Grievance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.grievances[id]
	if !ok {
		return nil, nil
	}
	out := *g
	return &out, nil
}

func (m *memStorage) GetAllGrievances() ([]models.Grievance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Grievance, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.grievances[id])
	}
	return out, nil
}

func (m *memStorage) GetGrievancesByOwner(ownerID string) ([]models.Grievance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Grievance
	for _, id := range m.order {
		if m.grievances[id].OwnerID == ownerID {
			out = append(out, *m.grievances[id])
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memStorage) UpdateGrievanceFields(id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.grievances[id]
	if !ok {
		return nil
	}
	for column, value := range fields {
		switch column {
		case "title":
			g.Title = value.(string)
		case "description":
			g.Description = value.(string)
		case "category":
			g.Category = value.(string)
		case "status":
			g.Status = value.(string)
		case "updated_at":
			g.UpdatedAt = value.(time.Time)
		case "resolved_at":
			at := value.(time.Time)
			g.ResolvedAt = &at
		}
	}
	return nil
}

func (m *memStorage) MarkGrievanceOverdue(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.grievances[id]
	if !ok || g.IsOverdue {
		return false, nil
	}
	g.IsOverdue = true
	g.Priority = "High"
	g.EscalationLevel = 1
	return true, nil
}

func (m *memStorage) CreateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *memStorage) SaveUser(user *models.User) error {
	return m.CreateUser(user)
}

func (m *memStorage) GetUserByID(id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	out := *user
	return &out, nil
}

func (m *memStorage) GetUserByUsername(username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username == username {
			out := *user
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memStorage) GetUsersByIDs(ids []string) (map[string]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]models.User, len(ids))
	for _, id := range ids {
		if user, ok := m.users[id]; ok {
			out[id] = *user
		}
	}
	return out, nil
}

func (m *memStorage) PublishGrievance(snapshot models.GrievanceSnapshot) error {
	return nil
}
