package boltstore_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/kokes/great-expectations/store"
	"github.com/kokes/great-expectations/store/boltstore"
)

func TestRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "boltstore")
	if err != nil {
		t.Fatalf("getting temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	st, err := boltstore.Open(filepath.Join(dir, "validations.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer st.Close()

	if _, err := st.Get("nope"); err != store.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}

	recs := []store.Record{
		{RunID: "20200102T030405.000000Z", Suite: "users.basic", Success: true},
		{RunID: "20200102T030405.000000Z", Suite: "users.strict", Success: false},
	}
	for _, rec := range recs {
		if err := st.Put(rec); err != nil {
			t.Fatalf("putting record: %v", err)
		}
	}

	got, err := st.Get(recs[1].Key())
	if err != nil {
		t.Fatalf("getting record: %v", err)
	}
	if got.Suite != "users.strict" || got.Success {
		t.Fatalf("unexpected record: %+v", got)
	}

	keys, err := st.List()
	if err != nil {
		t.Fatalf("listing records: %v", err)
	}
	if len(keys) != 2 || keys[0] != recs[0].Key() {
		t.Fatalf("unexpected keys: %v", keys)
	}
}
