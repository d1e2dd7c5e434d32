// Copyright 2020 the great-expectations authors.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

// Package boltstore keeps validation records in a single-file bolt
// database.
package boltstore

import (
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"

	"github.com/kokes/great-expectations/store"
)

var bucketValidations = []byte("validations")

// Store implements store.Store on top of bolt.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the bolt database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening bolt db at %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketValidations)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating validations bucket")
	}
	return &Store{db: db}, nil
}

// Put writes the record under its Key.
func (s *Store) Put(rec store.Record) error {
	val, err := rec.Encode()
	if err != nil {
		return err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketValidations).Put([]byte(rec.Key()), val)
	})
	return errors.Wrap(err, "storing validation record")
}

// Get returns the record stored under key, or store.ErrNotFound.
func (s *Store) Get(key string) (store.Record, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		val := tx.Bucket(bucketValidations).Get([]byte(key))
		if val == nil {
			return store.ErrNotFound
		}
		raw = append(raw, val...) // val is only valid inside the tx
		return nil
	})
	if err != nil {
		return store.Record{}, err
	}
	return store.Decode(raw)
}

// List returns all record keys in key order.
func (s *Store) List() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketValidations).ForEach(func(k, v []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, errors.Wrap(err, "listing validation records")
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
