package storefakes

import (
	"sync"

	"github.com/agentdesk/agentdesk-go/credstore"
	"github.com/agentdesk/agentdesk-go/users"
)

var _ credstore.Store = (*FakeStore)(nil)

// FakeStore is an in-memory credential store for tests.
type FakeStore struct {
	token   string
	profile *users.Profile
	lock    sync.RWMutex

	// SaveTokenErr, when set, is returned by SaveToken.
	SaveTokenErr error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (fs *FakeStore) SaveToken(token string) error {
	if fs.SaveTokenErr != nil {
		return fs.SaveTokenErr
	}
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.token = token
	return nil
}

func (fs *FakeStore) Token() (string, bool) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.token, fs.token != ""
}

func (fs *FakeStore) HasToken() bool {
	_, ok := fs.Token()
	return ok
}

func (fs *FakeStore) SaveProfile(profile *users.Profile) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	copied := *profile
	fs.profile = &copied
	return nil
}

func (fs *FakeStore) Profile() (*users.Profile, bool) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	if fs.profile == nil {
		return nil, false
	}
	copied := *fs.profile
	return &copied, true
}

func (fs *FakeStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.token = ""
	fs.profile = nil
	return nil
}
