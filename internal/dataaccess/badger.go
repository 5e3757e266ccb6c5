package dataaccess

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/benbeisheim/chess-server/internal/model"
)

// Key prefixes
const (
	prefixUser = "user/"
	prefixAuth = "auth/"
	prefixGame = "game/"
)

// BadgerDataAccess stores records as JSON values in BadgerDB.
type BadgerDataAccess struct {
	db *badger.DB
}

// NewBadgerDataAccess opens (or creates) a database in dir. An empty dir
// opens an in-memory database.
func NewBadgerDataAccess(dir string) (*BadgerDataAccess, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", dir, err)
	}
	return &BadgerDataAccess{db: db}, nil
}

func (b *BadgerDataAccess) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

func (b *BadgerDataAccess) Clear() error {
	return b.db.DropAll()
}

func (b *BadgerDataAccess) CreateUser(user model.UserData) error {
	return b.insert(prefixUser+user.Username, user, "user "+user.Username)
}

func (b *BadgerDataAccess) GetUser(username string) (model.UserData, error) {
	var user model.UserData
	err := b.get(prefixUser+username, &user, "user "+username)
	return user, err
}

func (b *BadgerDataAccess) CreateAuth(auth model.AuthData) error {
	return b.put(prefixAuth+auth.AuthToken, auth)
}

func (b *BadgerDataAccess) GetAuth(token string) (model.AuthData, error) {
	var auth model.AuthData
	err := b.get(prefixAuth+token, &auth, "auth token")
	return auth, err
}

func (b *BadgerDataAccess) DeleteAuth(token string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		key := []byte(prefixAuth + token)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("auth token: %w", ErrNotFound)
			}
			return err
		}
		return txn.Delete(key)
	})
}

func (b *BadgerDataAccess) CreateGame(game model.GameData) error {
	return b.insert(prefixGame+game.GameID, game, "game "+game.GameID)
}

func (b *BadgerDataAccess) GetGame(gameID string) (model.GameData, error) {
	var game model.GameData
	err := b.get(prefixGame+gameID, &game, "game "+gameID)
	return game, err
}

func (b *BadgerDataAccess) ListGames() ([]model.GameData, error) {
	games := []model.GameData{}
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(prefixGame)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var game model.GameData
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &game)
			}); err != nil {
				return err
			}
			games = append(games, game)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortGames(games)
	return games, nil
}

func (b *BadgerDataAccess) UpdateGame(game model.GameData) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		key := []byte(prefixGame + game.GameID)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("game %s: %w", game.GameID, ErrNotFound)
			}
			return err
		}
		return txn.Set(key, data)
	})
}

// insert writes v under key unless the key already exists.
func (b *BadgerDataAccess) insert(key string, v interface{}, what string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		if err == nil {
			return fmt.Errorf("%s: %w", what, ErrAlreadyExists)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set([]byte(key), data)
	})
}

func (b *BadgerDataAccess) put(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (b *BadgerDataAccess) get(key string, v interface{}, what string) error {
	return b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%s: %w", what, ErrNotFound)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}
