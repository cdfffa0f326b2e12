package memory

import (
	"fmt"
	"os"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"spinwin/internal/models"
	"spinwin/internal/utils"
)

// Store holds raw spin documents and login accounts in process. It backs
// local demo mode and tests, and applies the same eligibility rules as the
// MongoDB pipeline.
type Store struct {
	mu     sync.RWMutex
	spins  []map[string]interface{}
	logins []models.Login
}

func NewStore() *Store {
	return &Store{}
}

// AddSpin appends a raw spinResults document.
func (s *Store) AddSpin(doc map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spins = append(s.spins, doc)
}

func (s *Store) AddLogin(login models.Login) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logins = append(s.logins, login)
}

func (s *Store) hasRoute(route string) bool {
	if route == "" {
		return false
	}
	for _, login := range s.logins {
		if utils.CanonicalKey(login.RouteName) == route {
			return true
		}
	}
	return false
}

type seedFile struct {
	Login       []bson.M `bson:"login"`
	SpinResults []bson.M `bson:"spinResults"`
}

// LoadSeedFile reads a MongoDB Extended JSON document of the form
// {"login": [...], "spinResults": [...]} into the store.
func (s *Store) LoadSeedFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	return s.LoadSeed(data)
}

func (s *Store) LoadSeed(data []byte) error {
	var seed seedFile
	if err := bson.UnmarshalExtJSON(data, false, &seed); err != nil {
		return fmt.Errorf("failed to parse seed data: %w", err)
	}

	for _, doc := range seed.Login {
		s.AddLogin(models.Login{
			Username:  utils.AsString(doc["username"]),
			Password:  utils.AsString(doc["password"]),
			RouteName: utils.AsString(doc["routeName"]),
		})
	}
	for _, doc := range seed.SpinResults {
		s.AddSpin(doc)
	}

	return nil
}
