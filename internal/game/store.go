package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	bbolt "go.etcd.io/bbolt"
	"golang.org/x/crypto/bcrypt"
)

var (
	bucketPlayers = []byte("players")
	bucketRooms   = []byte("rooms")
	bucketHelp    = []byte("help")
	bucketLost    = []byte("lostandfound")
)

var (
	// ErrRecordNotFound indicates no stored record matched the id.
	ErrRecordNotFound = errors.New("record not found")
	// ErrInvalidCredentials indicates the supplied password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPlayerExists indicates a character name is already taken.
	ErrPlayerExists = errors.New("player already exists")
)

// PlayerRecord is the persisted shape of a player.
type PlayerRecord struct {
	Name     string          `json:"name"`
	Hash     string          `json:"hash"`
	Access   Access          `json:"access"`
	Location RoomID          `json:"location"`
	Channels map[string]bool `json:"channels,omitempty"`
	Items    []Item          `json:"items,omitempty"`
}

// RoomRecord is the persisted shape of a builder-modified room.
type RoomRecord struct {
	ID          RoomID             `json:"id"`
	AreaID      string             `json:"area"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Exits       map[Direction]Exit `json:"exits"`
}

// Store is the opaque persistence collaborator: bucket-per-entity records in
// a single bbolt file. Callers never hold a registry or record guard across a
// Store call; they snapshot first and persist after release.
type Store struct {
	db *bbolt.DB
}

// OpenStore opens or creates the database file and ensures all buckets exist.
func OpenStore(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketPlayers, bucketRooms, bucketHelp, bucketLost} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func playerKey(name string) []byte {
	return []byte(strings.ToLower(name))
}

// CreatePlayer hashes the password and writes a brand-new record. It fails
// when the name is already taken.
func (s *Store) CreatePlayer(rec PlayerRecord, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("store: hash password for %s: %w", rec.Name, err)
	}
	rec.Hash = string(hash)
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: encode player %s: %w", rec.Name, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPlayers)
		if b.Get(playerKey(rec.Name)) != nil {
			return fmt.Errorf("player %s: %w", rec.Name, ErrPlayerExists)
		}
		return b.Put(playerKey(rec.Name), data)
	})
}

// LoadPlayer fetches a record by name and verifies the password against the
// stored hash. The error distinguishes a missing record from a credential
// mismatch so the session state machine can branch into character creation.
func (s *Store) LoadPlayer(name, password string) (PlayerRecord, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketPlayers).Get(playerKey(name))
		if raw == nil {
			return fmt.Errorf("player %s: %w", name, ErrRecordNotFound)
		}
		data = append(data, raw...)
		return nil
	})
	if err != nil {
		return PlayerRecord{}, err
	}
	var rec PlayerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return PlayerRecord{}, fmt.Errorf("store: decode player %s: %w", name, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.Hash), []byte(password)); err != nil {
		return PlayerRecord{}, fmt.Errorf("player %s: %w", name, ErrInvalidCredentials)
	}
	return rec, nil
}

// SavePlayer overwrites a record, preserving the stored credential hash.
func (s *Store) SavePlayer(rec PlayerRecord) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPlayers)
		if rec.Hash == "" {
			var prev PlayerRecord
			if raw := b.Get(playerKey(rec.Name)); raw != nil {
				if err := json.Unmarshal(raw, &prev); err == nil {
					rec.Hash = prev.Hash
				}
			}
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("store: encode player %s: %w", rec.Name, err)
		}
		return b.Put(playerKey(rec.Name), data)
	})
}

// PlayerExists reports whether a record is stored under the name.
func (s *Store) PlayerExists(name string) (bool, error) {
	var exists bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		exists = tx.Bucket(bucketPlayers).Get(playerKey(name)) != nil
		return nil
	})
	return exists, err
}

// SaveRoom persists a builder-modified room.
func (s *Store) SaveRoom(rec RoomRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: encode room %s: %w", rec.ID, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRooms).Put([]byte(rec.ID), data)
	})
}

// LoadRooms returns every persisted builder room.
func (s *Store) LoadRooms() ([]RoomRecord, error) {
	var out []RoomRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRooms).ForEach(func(_, raw []byte) error {
			var rec RoomRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return fmt.Errorf("store: decode room: %w", err)
			}
			out = append(out, rec)
			return nil
		})
	})
	return out, err
}

// SaveHelp persists a help entry.
func (s *Store) SaveHelp(entry HelpEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("store: encode help %s: %w", entry.Topic, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketHelp).Put([]byte(NormalizeTopic(entry.Topic)), data)
	})
}

// LoadHelp fetches a help entry by topic.
func (s *Store) LoadHelp(topic string) (HelpEntry, error) {
	var entry HelpEntry
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketHelp).Get([]byte(NormalizeTopic(topic)))
		if raw == nil {
			return fmt.Errorf("help %s: %w", topic, ErrRecordNotFound)
		}
		return json.Unmarshal(raw, &entry)
	})
	return entry, err
}

// StoreLostItems appends swept lost-and-found items to long-term holding.
func (s *Store) StoreLostItems(items []LostItem) error {
	if len(items) == 0 {
		return nil
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketLost)
		for _, lost := range items {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			reason := ""
			if lost.Reason != nil {
				reason = lost.Reason.Error()
			}
			data, err := json.Marshal(struct {
				Item   Item   `json:"item"`
				Owner  string `json:"owner"`
				Reason string `json:"reason"`
			}{lost.Item, lost.Owner, reason})
			if err != nil {
				return err
			}
			if err := b.Put([]byte(fmt.Sprintf("%016d", seq)), data); err != nil {
				return err
			}
		}
		return nil
	})
}
