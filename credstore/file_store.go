package credstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/agentdesk/agentdesk-go/users"
	"github.com/pkg/errors"
)

const storeFileName = "credentials.json"

// persistedState mirrors the browser-storage layout of the original platform
// client: an opaque token under access_token and the serialized profile under
// user_profile.
type persistedState struct {
	AccessToken string `json:"access_token,omitempty"`
	UserProfile string `json:"user_profile,omitempty"`
}

var _ Store = (*FileStore)(nil)

// FileStore keeps the credential state in a single JSON file under the
// client's data folder. Writes go through a temp file and rename so a
// concurrent reader sees either the old state or the new one, never a
// partial write.
type FileStore struct {
	path string
	lock sync.Mutex
}

// NewFileStore creates a store backed by <dataFolder>/credentials.json.
func NewFileStore(dataFolder string) *FileStore {
	return &FileStore{path: filepath.Join(dataFolder, storeFileName)}
}

func (fs *FileStore) SaveToken(token string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	state := fs.read()
	state.AccessToken = token
	return fs.write(state)
}

func (fs *FileStore) Token() (string, bool) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	state := fs.read()
	return state.AccessToken, state.AccessToken != ""
}

func (fs *FileStore) HasToken() bool {
	_, ok := fs.Token()
	return ok
}

func (fs *FileStore) SaveProfile(profile *users.Profile) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	serialized, err := json.Marshal(profile)
	if err != nil {
		return errors.Wrap(err, "[FileStore.SaveProfile] serializing profile")
	}
	state := fs.read()
	state.UserProfile = string(serialized)
	return fs.write(state)
}

func (fs *FileStore) Profile() (*users.Profile, bool) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	state := fs.read()
	if state.UserProfile == "" {
		return nil, false
	}
	var profile users.Profile
	if err := json.Unmarshal([]byte(state.UserProfile), &profile); err != nil {
		return nil, false
	}
	return &profile, true
}

func (fs *FileStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Clear] removing store file")
	}
	return nil
}

// read returns the persisted state, treating a missing or unreadable file as
// empty. Stale or corrupt state is discovered later through failed API calls.
func (fs *FileStore) read() persistedState {
	var state persistedState
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return state
	}
	_ = json.Unmarshal(data, &state)
	return state
}

func (fs *FileStore) write(state persistedState) error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return errors.Wrap(err, "[FileStore.write] creating data folder")
	}
	data, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "[FileStore.write] serializing state")
	}
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.write] writing temp file")
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return errors.Wrap(err, "[FileStore.write] replacing store file")
	}
	return nil
}
