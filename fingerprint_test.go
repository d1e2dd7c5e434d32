package ge_test

import (
	"testing"

	ge "github.com/kokes/great-expectations"
)

func mustFrame(t *testing.T, cols ...ge.Column) *ge.DataFrame {
	t.Helper()
	df, err := ge.NewDataFrame(cols...)
	if err != nil {
		t.Fatalf("building frame: %v", err)
	}
	return df
}

func TestFingerprintStable(t *testing.T) {
	a := mustFrame(t, ge.Column{Name: "x", Values: []ge.Value{ge.Int(1), ge.Int(2)}})
	b := mustFrame(t, ge.Column{Name: "x", Values: []ge.Value{ge.Int(1), ge.Int(2)}})
	if ge.Fingerprint(a) != ge.Fingerprint(b) {
		t.Fatal("equal frames should fingerprint identically")
	}
}

func TestFingerprintDiffers(t *testing.T) {
	base := mustFrame(t, ge.Column{Name: "x", Values: []ge.Value{ge.Int(1)}})
	cases := []*ge.DataFrame{
		mustFrame(t, ge.Column{Name: "y", Values: []ge.Value{ge.Int(1)}}),
		mustFrame(t, ge.Column{Name: "x", Values: []ge.Value{ge.Int(2)}}),
		mustFrame(t, ge.Column{Name: "x", Values: []ge.Value{ge.String("1")}}),
		mustFrame(t, ge.Column{Name: "x", Values: []ge.Value{ge.Int(1), ge.Int(1)}}),
	}
	for i, other := range cases {
		if ge.Fingerprint(base) == ge.Fingerprint(other) {
			t.Fatalf("case %d: fingerprints should differ", i)
		}
	}
}

func TestFingerprintColumnOrderMatters(t *testing.T) {
	a := mustFrame(t,
		ge.Column{Name: "x", Values: []ge.Value{ge.Int(1)}},
		ge.Column{Name: "y", Values: []ge.Value{ge.Int(2)}},
	)
	b := mustFrame(t,
		ge.Column{Name: "y", Values: []ge.Value{ge.Int(2)}},
		ge.Column{Name: "x", Values: []ge.Value{ge.Int(1)}},
	)
	if ge.Fingerprint(a) == ge.Fingerprint(b) {
		t.Fatal("column order should affect the fingerprint")
	}
}
