package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

const cachePrefix = "neofin"

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9@._-]`)

// Cache persists the lists of a State as JSON files under a directory. It is
// advisory: reads seed the initial state and every successful fetch
// overwrites it.
type Cache struct {
	dir  string
	user string
}

// NewCache namespaces entries by user. An empty user selects the shared
// unauthenticated namespace.
func NewCache(dir, user string) *Cache {
	return &Cache{dir: dir, user: user}
}

// Key returns the entry name for a list, e.g. neofin_<user>_transactions.
func (c *Cache) Key(list string) string {
	if c.user == "" {
		return cachePrefix + "_" + list
	}
	return cachePrefix + "_" + unsafeKeyChars.ReplaceAllString(c.user, "_") + "_" + list
}

func (c *Cache) path(list string) string {
	return filepath.Join(c.dir, c.Key(list)+".json")
}

// Load returns the cached lists. ok is false when no transactions were cached.
func (c *Cache) Load() (state State, ok bool, err error) {
	found, err := c.read("transactions", &state.Transactions)
	if err != nil {
		return State{}, false, err
	}
	if _, err := c.read("debts", &state.Debts); err != nil {
		return State{}, false, err
	}
	if _, err := c.read("splits", &state.Splits); err != nil {
		return State{}, false, err
	}
	return state, found, nil
}

// Save writes the transactions, debts and splits of state.
func (c *Cache) Save(state State) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := c.write("transactions", state.Transactions); err != nil {
		return err
	}
	if err := c.write("debts", state.Debts); err != nil {
		return err
	}
	return c.write("splits", state.Splits)
}

// Clear removes every entry of this namespace.
func (c *Cache) Clear() error {
	for _, list := range []string{"transactions", "debts", "splits"} {
		if err := os.Remove(c.path(list)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func (c *Cache) read(list string, into any) (bool, error) {
	data, err := os.ReadFile(c.path(list))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, into); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", list, err)
	}
	return true, nil
}

func (c *Cache) write(list string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	tmp := c.path(list) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, c.path(list))
}
