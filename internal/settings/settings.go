// Package settings keeps the storefront's business settings on a single
// backing record and serialises get/set access to it.
package settings

import (
	"errors"
	"time"
)

type Key string

const (
	WhatsAppNumber Key = "whatsapp_number"
	BusinessName   Key = "business_name"
	BusinessEmail  Key = "business_email"
)

// SingletonID is the well-known id of the settings record. Inserting under a
// fixed id lets concurrent first writers converge on one row.
const SingletonID = "singleton"

var keys = []Key{WhatsAppNumber, BusinessName, BusinessEmail}

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrStoreRead       = errors.New("settings read failed")
	ErrStoreWrite      = errors.New("settings write failed")

	// ErrRecordGone is returned by Store.Update when the id no longer exists.
	ErrRecordGone = errors.New("settings record gone")
)

// Keys returns the known keys in display order.
func Keys() []Key {
	out := make([]Key, len(keys))
	copy(out, keys)
	return out
}

func (k Key) Valid() bool {
	for _, known := range keys {
		if k == known {
			return true
		}
	}
	return false
}

func ParseKey(s string) (Key, bool) {
	k := Key(s)
	return k, k.Valid()
}

// Values maps every known key to its value; unset keys hold "".
type Values map[Key]string

func Defaults() Values {
	v := make(Values, len(keys))
	for _, k := range keys {
		v[k] = ""
	}
	return v
}

type Pair struct {
	Key   Key    `json:"key"`
	Value string `json:"value"`
}

// Pairs returns v as an ordered key/value list.
func (v Values) Pairs() []Pair {
	out := make([]Pair, 0, len(keys))
	for _, k := range keys {
		out = append(out, Pair{Key: k, Value: v[k]})
	}
	return out
}

// Record is one row of the backing table.
type Record struct {
	ID        string
	Values    Values
	CreatedAt time.Time
	UpdatedAt time.Time
}
