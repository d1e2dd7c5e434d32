package s3_test

import (
	"testing"

	s3 "github.com/kokes/great-expectations/aws/s3"
)

func TestParseURL(t *testing.T) {
	url, err := s3.ParseURL("s3://mybucket/data/2020/users.csv")
	if err != nil {
		t.Fatalf("parsing url: %v", err)
	}
	if url.Bucket != "mybucket" {
		t.Fatalf("bucket: %s", url.Bucket)
	}
	if url.Key != "data/2020/users.csv" {
		t.Fatalf("key: %s", url.Key)
	}
}

func TestParseURLErrors(t *testing.T) {
	bad := []string{
		"http://mybucket/key",
		"s3://justbucket",
		"s3://bucket/",
		"s3:///key",
		"",
	}
	for _, raw := range bad {
		if _, err := s3.ParseURL(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
