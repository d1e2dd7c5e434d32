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

// Package s3 fetches batch data from S3 for the datasource layer.
package s3

import (
	"io/ioutil"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
)

// URL is a parsed s3://bucket/key location.
type URL struct {
	Bucket string
	Key    string
}

// ParseURL splits an s3://bucket/key URL.
func ParseURL(raw string) (URL, error) {
	const scheme = "s3://"
	if !strings.HasPrefix(raw, scheme) {
		return URL{}, errors.Errorf("'%s' is not an s3:// URL", raw)
	}
	rest := raw[len(scheme):]
	slash := strings.IndexByte(rest, '/')
	if slash <= 0 || slash == len(rest)-1 {
		return URL{}, errors.Errorf("'%s' has no bucket or key", raw)
	}
	return URL{Bucket: rest[:slash], Key: rest[slash+1:]}, nil
}

// ClientOption is a functional option type for Client.
type ClientOption func(c *Client)

// OptRegion is a ClientOption which sets the AWS region for a Client.
func OptRegion(region string) ClientOption {
	return func(c *Client) {
		c.region = region
	}
}

// Client reads objects from S3. It satisfies the datasource's ObjectFetcher
// interface.
type Client struct {
	region string

	s3   *awss3.S3
	sess *session.Session
}

// NewClient returns a new Client with the options applied.
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	cfg := &aws.Config{}
	if c.region != "" {
		cfg.Region = aws.String(c.region)
	}
	var err error
	c.sess, err = session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "getting aws session")
	}
	c.s3 = awss3.New(c.sess)
	return c, nil
}

// Fetch downloads the object at an s3://bucket/key URL and returns its
// contents.
func (c *Client) Fetch(raw string) ([]byte, error) {
	url, err := ParseURL(raw)
	if err != nil {
		return nil, err
	}
	log.Printf("fetching s3 object, bucket: %s key: %s", url.Bucket, url.Key)
	result, err := c.s3.GetObject(&awss3.GetObjectInput{
		Bucket: aws.String(url.Bucket),
		Key:    aws.String(url.Key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %v", url.Key)
	}
	defer result.Body.Close()
	body, err := ioutil.ReadAll(result.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %v", url.Key)
	}
	return body, nil
}

// List returns the keys of the objects in the bucket that match the
// specified prefix.
func (c *Client) List(bucket, prefix string) ([]string, error) {
	resp, err := c.s3.ListObjects(&awss3.ListObjectsInput{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, errors.Wrap(err, "listing objects")
	}
	keys := make([]string, 0, len(resp.Contents))
	for _, obj := range resp.Contents {
		keys = append(keys, *obj.Key)
	}
	return keys, nil
}
